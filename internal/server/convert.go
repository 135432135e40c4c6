package server

import (
	"flat_price/internal/domain/entity"
	"flat_price/pkg/rest"
)

// Вызывать после req.Read: validate:"required" гарантирует, что указатели
// не nil.
func newDomainApartment(p rest.ApartmentParams) entity.Apartment {
	return entity.Apartment{
		RoomCount:   *p.RoomCount,
		Floor:       *p.Floor,
		TotalFloors: *p.TotalFloor,
		TotalArea:   *p.TotalArea,
		LiveArea:    *p.LiveArea,
		KitchenArea: *p.KitchenArea,
		District:    entity.District(*p.District),
	}
}
