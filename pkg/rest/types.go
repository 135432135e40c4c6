// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

// Index Ответ корневого эндпоинта
type Index struct {
	Text string `json:"text"`
}

// ApartmentParams Параметры квартиры для оценки
type ApartmentParams struct {
	RoomCount   *int     `json:"room_count" validate:"required"`
	Floor       *int     `json:"floor" validate:"required"`
	TotalFloor  *int     `json:"total_floor" validate:"required"`
	TotalArea   *float64 `json:"total_area" validate:"required"`
	LiveArea    *float64 `json:"live_area" validate:"required"`
	KitchenArea *float64 `json:"kitchen_area" validate:"required"`
	District    *int     `json:"district" validate:"required"`
}

// PriceResponse Оценка стоимости квартиры
type PriceResponse struct {
	ApartmentParams ApartmentParams `json:"apartment_params"`
	Price           float64         `json:"price"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`

	// SupportID Идентификатор запроса для обращения в поддержку
	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string
