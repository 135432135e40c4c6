// Package validator проверяет параметры квартиры перед оценкой стоимости.
// Проверка только отсекает заведомо неверный ввод и не гарантирует, что такая
// квартира физически возможна.
package validator

import (
	"fmt"

	"git.appkode.ru/pub/go/failure"

	"flat_price/internal/domain/entity"
	"flat_price/pkg/errcodes"
)

// Validate возвращает invalid argument ошибку с кодом первого нарушенного
// правила. Положительность всех полей проверяется раньше остальных правил.
func Validate(a entity.Apartment) error {
	positive := []struct {
		field string
		value float64
	}{
		{"room_count", float64(a.RoomCount)},
		{"floor", float64(a.Floor)},
		{"total_floors", float64(a.TotalFloors)},
		{"total_area", a.TotalArea},
		{"live_area", a.LiveArea},
		{"kitchen_area", a.KitchenArea},
		{"district", float64(a.District)},
	}

	for _, p := range positive {
		if !(p.value > 0) {
			return invalid(errcodes.NonPositiveField, fmt.Sprintf("%s must be positive, got %v", p.field, p.value))
		}
	}

	if !a.District.Valid() {
		return invalid(errcodes.DistrictOutOfRange, fmt.Sprintf("district must be one of 1, 2, 3, got %d", a.District))
	}

	if a.LiveArea > a.TotalArea {
		return invalid(errcodes.LiveAreaExceedsTotal,
			fmt.Sprintf("live_area %v exceeds total_area %v", a.LiveArea, a.TotalArea))
	}

	if a.KitchenArea > a.TotalArea {
		return invalid(errcodes.KitchenAreaExceedsTotal,
			fmt.Sprintf("kitchen_area %v exceeds total_area %v", a.KitchenArea, a.TotalArea))
	}

	if a.Floor > a.TotalFloors {
		return invalid(errcodes.FloorExceedsTotal,
			fmt.Sprintf("floor %d exceeds total_floors %d", a.Floor, a.TotalFloors))
	}

	return nil
}

func invalid(code failure.ErrorCode, description string) error {
	return failure.NewInvalidArgumentError(
		code.String()+": "+description,
		failure.WithCode(code),
		failure.WithDescription(description),
	)
}
