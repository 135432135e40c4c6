package entity

import "fmt"

// Индексы признаков. Порядок общий для сборки датасета, инференса и файла
// модели; менять его можно только вместе с переобучением.
const (
	FeatureRoomCount = iota
	FeatureFloor
	FeatureTotalFloors
	FeatureTotalArea
	FeatureLiveArea
	FeatureKitchenArea
	FeatureDistrict1
	FeatureDistrict2
	FeatureDistrict3

	FeatureCount
)

// FeatureNames: имена колонок обучающей таблицы в порядке FeatureVector.
var FeatureNames = [FeatureCount]string{ //nolint:gochecknoglobals
	FeatureRoomCount:   "room_count",
	FeatureFloor:       "floor",
	FeatureTotalFloors: "total_floors",
	FeatureTotalArea:   "total_area",
	FeatureLiveArea:    "live_area",
	FeatureKitchenArea: "kitchen_area",
	FeatureDistrict1:   "district_1",
	FeatureDistrict2:   "district_2",
	FeatureDistrict3:   "district_3",
}

// FeatureVector: вход регрессионной модели.
type FeatureVector [FeatureCount]float64

// Encode строит вектор признаков. Район раскладывается в три индикатора, из
// которых ровно один равен 1.
func Encode(a Apartment) (FeatureVector, error) {
	if !a.District.Valid() {
		return FeatureVector{}, fmt.Errorf("district %d: out of range", a.District)
	}

	var v FeatureVector

	v[FeatureRoomCount] = float64(a.RoomCount)
	v[FeatureFloor] = float64(a.Floor)
	v[FeatureTotalFloors] = float64(a.TotalFloors)
	v[FeatureTotalArea] = a.TotalArea
	v[FeatureLiveArea] = a.LiveArea
	v[FeatureKitchenArea] = a.KitchenArea
	v[FeatureDistrict1+int(a.District)-1] = 1

	return v, nil
}

// SameFeatureNames проверяет, что набор колонок совпадает с FeatureNames
// поэлементно.
func SameFeatureNames(names []string) bool {
	if len(names) != FeatureCount {
		return false
	}

	for i, name := range names {
		if FeatureNames[i] != name {
			return false
		}
	}

	return true
}
