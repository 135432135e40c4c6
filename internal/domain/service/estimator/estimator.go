// Package estimator держит обученную модель и считает по ней цену квартиры.
package estimator

import (
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"

	"flat_price/internal/domain"
	"flat_price/internal/domain/entity"
)

// Regressor: обученная модель. Реализация не должна меняться после публикации
// в Estimator.
type Regressor interface {
	Predict(v entity.FeatureVector) float64
}

// RegressorFunc позволяет использовать функцию как Regressor.
type RegressorFunc func(v entity.FeatureVector) float64

func (f RegressorFunc) Predict(v entity.FeatureVector) float64 {
	return f(v)
}

var ErrNilRegressor = errors.New("nil regressor")

type loadedModel struct {
	regressor Regressor
	version   string
}

// Estimator безопасен для конкурентного использования. Модель заменяется
// целиком атомарной публикацией указателя, частично загруженную модель
// увидеть нельзя.
type Estimator struct {
	model atomic.Pointer[loadedModel]
}

func New() *Estimator {
	return &Estimator{}
}

// Load публикует полностью готовую модель. Предыдущая модель продолжает
// обслуживать уже начатые вызовы Predict. Пустая модель не публикуется, текущая
// остаётся на месте.
func (e *Estimator) Load(r Regressor, version string) error {
	if isNil(r) {
		return fmt.Errorf("estimator.Load %q: %w", version, ErrNilRegressor)
	}

	e.model.Store(&loadedModel{regressor: r, version: version})

	return nil
}

// isNil ловит и nil-интерфейс, и типизированный nil внутри него, например
// (*regression.Model)(nil).
func isNil(r Regressor) bool {
	if r == nil {
		return true
	}

	v := reflect.ValueOf(r)
	switch v.Kind() { //nolint:exhaustive
	case reflect.Pointer, reflect.Func, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// Version возвращает версию опубликованной модели.
func (e *Estimator) Version() (string, bool) {
	m := e.model.Load()
	if m == nil {
		return "", false
	}
	return m.version, true
}

// Predict кодирует параметры в FeatureVector и возвращает ответ модели без
// какой-либо постобработки.
func (e *Estimator) Predict(a entity.Apartment) (float64, error) {
	m := e.model.Load()
	if m == nil {
		return 0, domain.ErrModelNotLoaded
	}

	v, err := entity.Encode(a)
	if err != nil {
		return 0, fmt.Errorf("entity.Encode: %w", err)
	}

	return m.regressor.Predict(v), nil
}
