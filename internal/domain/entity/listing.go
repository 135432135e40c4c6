package entity

// RawListing: одно объявление после разбора текста. Любое поле, которое не
// удалось извлечь, остаётся nil.
type RawListing struct {
	ID          int64    `json:"id" db:"id"`
	Description string   `json:"description" db:"description"`
	RoomCount   *int     `json:"room_count" db:"room_count"`
	District    *int     `json:"district" db:"district"`
	Floor       *int     `json:"floor" db:"floor"`
	TotalFloors *int     `json:"total_floors" db:"total_floors"`
	TotalArea   *float64 `json:"total_area" db:"total_area"`
	LiveArea    *float64 `json:"live_area" db:"live_area"`
	KitchenArea *float64 `json:"kitchen_area" db:"kitchen_area"`
	Price       *int64   `json:"price" db:"price"`
}

// Complete сообщает, заполнены ли все поля, нужные для обучения.
func (l RawListing) Complete() bool {
	return l.Description != "" &&
		l.RoomCount != nil &&
		l.District != nil &&
		l.Floor != nil &&
		l.TotalFloors != nil &&
		l.TotalArea != nil &&
		l.LiveArea != nil &&
		l.KitchenArea != nil &&
		l.Price != nil
}

// Apartment собирает структурные поля полного объявления. Вызывать только
// после Complete.
func (l RawListing) Apartment() Apartment {
	return Apartment{
		RoomCount:   *l.RoomCount,
		Floor:       *l.Floor,
		TotalFloors: *l.TotalFloors,
		TotalArea:   *l.TotalArea,
		LiveArea:    *l.LiveArea,
		KitchenArea: *l.KitchenArea,
		District:    District(*l.District),
	}
}
