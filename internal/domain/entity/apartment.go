package entity

// District: код района города.
type District int

const (
	DistrictLeninsky          District = 1
	DistrictOrdzhonikidzevsky District = 2
	DistrictPravoberezhny     District = 3
)

// Districts перечисляет коды в порядке индикаторных признаков.
var Districts = [...]District{ //nolint:gochecknoglobals
	DistrictLeninsky,
	DistrictOrdzhonikidzevsky,
	DistrictPravoberezhny,
}

func (d District) Valid() bool {
	return d >= DistrictLeninsky && d <= DistrictPravoberezhny
}

// Apartment: параметры квартиры после очистки или из запроса на оценку.
type Apartment struct {
	RoomCount   int
	Floor       int
	TotalFloors int
	TotalArea   float64
	LiveArea    float64
	KitchenArea float64
	District    District
}
