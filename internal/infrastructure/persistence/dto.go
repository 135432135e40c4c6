package persistence

import (
	"github.com/samber/lo"

	"flat_price/internal/domain/entity"
)

// listingSchema — строка таблицы listings. Драйверы отдают целые как int64,
// поэтому ширина полей отличается от entity.RawListing.
type listingSchema struct {
	ID          int64    `db:"id"`
	RoomCount   *int64   `db:"room_count"`
	Floor       *int64   `db:"floor"`
	TotalFloors *int64   `db:"total_floors"`
	Price       *int64   `db:"price"`
	TotalArea   *float64 `db:"total_area"`
	LiveArea    *float64 `db:"live_area"`
	KitchenArea *float64 `db:"kitchen_area"`
	District    *int64   `db:"district"`
	Description string   `db:"description"`
}

func fromListing(l *entity.RawListing) *listingSchema {
	return &listingSchema{
		ID:          l.ID,
		RoomCount:   widen(l.RoomCount),
		Floor:       widen(l.Floor),
		TotalFloors: widen(l.TotalFloors),
		Price:       l.Price,
		TotalArea:   l.TotalArea,
		LiveArea:    l.LiveArea,
		KitchenArea: l.KitchenArea,
		District:    widen(l.District),
		Description: l.Description,
	}
}

func (s *listingSchema) toDomain() entity.RawListing {
	return entity.RawListing{
		ID:          s.ID,
		Description: s.Description,
		RoomCount:   narrow(s.RoomCount),
		District:    narrow(s.District),
		Floor:       narrow(s.Floor),
		TotalFloors: narrow(s.TotalFloors),
		TotalArea:   s.TotalArea,
		LiveArea:    s.LiveArea,
		KitchenArea: s.KitchenArea,
		Price:       s.Price,
	}
}

func widen(v *int) *int64 {
	if v == nil {
		return nil
	}
	return lo.ToPtr(int64(*v))
}

func narrow(v *int64) *int {
	if v == nil {
		return nil
	}
	return lo.ToPtr(int(*v))
}
