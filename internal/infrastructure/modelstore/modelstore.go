// Package modelstore хранит обученную модель в JSON-файле.
package modelstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"flat_price/internal/domain"
	"flat_price/internal/domain/entity"
	"flat_price/internal/domain/service/regression"
	"flat_price/pkg/errcodes"
)

const filePerm = 0o644

type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

// Load читает модель и проверяет, что её признаки совпадают с
// entity.FeatureNames. Отсутствие файла возвращается как
// domain.ErrModelNotLoaded.
func (s *FileStore) Load(_ context.Context) (*regression.Model, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, domain.WrapError(err, errcodes.ModelNotLoaded, "model file not found")
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	var m regression.Model
	if err := jsoniter.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("jsoniter.Unmarshal: %w", err)
	}

	if !entity.SameFeatureNames(m.Features) || len(m.Coefficients) != entity.FeatureCount {
		return nil, domain.NewError(
			errcodes.ModelSchemaMismatch,
			fmt.Sprintf("model features %v do not match %v", m.Features, entity.FeatureNames),
		)
	}

	return &m, nil
}

// Save пишет модель во временный файл рядом и переименовывает его, чтобы
// читатели не увидели половину файла.
func (s *FileStore) Save(_ context.Context, m *regression.Model) error {
	data, err := jsoniter.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("jsoniter.MarshalIndent: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("os.MkdirAll: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tmp.Write: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close: %w", err)
	}

	if err := os.Chmod(tmp.Name(), filePerm); err != nil {
		return fmt.Errorf("os.Chmod: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	return nil
}
