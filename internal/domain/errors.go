package domain

import (
	"errors"
	"fmt"

	"git.appkode.ru/pub/go/failure"

	"flat_price/pkg/errcodes"
)

var (
	// ErrModelNotLoaded возвращается оценщиком, пока модель не опубликована.
	ErrModelNotLoaded = NewError(errcodes.ModelNotLoaded, "price model is not loaded")
	// ErrEmptyDataset прерывает сборку датасета без записи результата.
	ErrEmptyDataset = NewError(errcodes.EmptyDataset, "dataset is empty")
)

// AppError представляет доменную ошибку приложения.
type AppError struct {
	Code    failure.ErrorCode
	Message string
	cause   error
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap возвращает обёрнутую ошибку для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.cause
}

// Is сравнивает доменные ошибки по коду.
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if !errors.As(target, &appErr) {
		return false
	}
	return e.Code == appErr.Code
}

// ErrorCode отдаёт код для слоя транспорта.
func (e *AppError) ErrorCode() failure.ErrorCode {
	return e.Code
}

// NewError создаёт новую доменную ошибку.
func NewError(code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WrapError оборачивает существующую ошибку с доменным контекстом.
func WrapError(err error, code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   err,
	}
}

// GetCode извлекает код ошибки, если это AppError.
func GetCode(err error) (failure.ErrorCode, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}
	return "", false
}
