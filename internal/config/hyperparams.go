package config

import (
	"fmt"
	"os"

	"git.appkode.ru/pub/go/failure"
	"gopkg.in/yaml.v2"

	"flat_price/pkg/errcodes"
)

// Hyperparams: содержимое файла MODEL_PARAMS_PATH.
type Hyperparams struct {
	TestSize     float64 `yaml:"test_size"`
	RandomState  int64   `yaml:"random_state"`
	Alpha        float64 `yaml:"alpha"`
	FitIntercept bool    `yaml:"fit_intercept"`
}

func DefaultHyperparams() Hyperparams {
	return Hyperparams{
		TestSize:     0.2,
		RandomState:  42,
		Alpha:        1,
		FitIntercept: true,
	}
}

// LoadHyperparams читает YAML поверх значений по умолчанию. Неизвестные ключи
// считаются ошибкой, чтобы опечатка не превращалась в молчаливый дефолт.
func LoadHyperparams(path string) (Hyperparams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Hyperparams{}, fmt.Errorf("os.ReadFile: %w", err)
	}

	params := DefaultHyperparams()

	if err := yaml.UnmarshalStrict(data, &params); err != nil {
		return Hyperparams{}, invalidHyperparams("params", err.Error())
	}

	if err := params.Validate(); err != nil {
		return Hyperparams{}, err
	}

	return params, nil
}

func (h Hyperparams) Validate() error {
	if !(h.TestSize >= 0 && h.TestSize < 1) {
		return invalidHyperparams("test_size", "must be in [0, 1)")
	}

	if !(h.Alpha > 0) {
		return invalidHyperparams("alpha", "must be positive")
	}

	return nil
}

func invalidHyperparams(field, reason string) error {
	return failure.NewInvalidArgumentError(
		fmt.Sprintf("%s: %s %s", errcodes.InvalidHyperparams, field, reason),
		failure.WithCode(errcodes.InvalidHyperparams),
		failure.WithDescription(field+" "+reason),
	)
}
