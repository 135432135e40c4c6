package entity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"flat_price/internal/domain/entity"
)

func TestEncodeDistrictIndicators(t *testing.T) {
	rq := require.New(t)

	for _, d := range entity.Districts {
		v, err := entity.Encode(entity.Apartment{
			RoomCount:   2,
			Floor:       3,
			TotalFloors: 9,
			TotalArea:   54.3,
			LiveArea:    30.1,
			KitchenArea: 8.5,
			District:    d,
		})
		rq.NoError(err)

		indicators := v[entity.FeatureDistrict1:]
		rq.Len(indicators, 3)

		for i, x := range indicators {
			if i == int(d)-1 {
				rq.Equal(1.0, x, "district %d", d)
			} else {
				rq.Equal(0.0, x, "district %d", d)
			}
		}
	}
}

func TestEncodeOrder(t *testing.T) {
	rq := require.New(t)

	v, err := entity.Encode(entity.Apartment{
		RoomCount:   5,
		Floor:       1,
		TotalFloors: 5,
		TotalArea:   100,
		LiveArea:    80,
		KitchenArea: 10,
		District:    entity.DistrictPravoberezhny,
	})
	rq.NoError(err)
	rq.Equal(entity.FeatureVector{5, 1, 5, 100, 80, 10, 0, 0, 1}, v)
}

func TestEncodeRejectsUnknownDistrict(t *testing.T) {
	rq := require.New(t)

	_, err := entity.Encode(entity.Apartment{District: 4})
	rq.Error(err)

	_, err = entity.Encode(entity.Apartment{District: 0})
	rq.Error(err)
}

func TestSameFeatureNames(t *testing.T) {
	rq := require.New(t)

	rq.True(entity.SameFeatureNames(entity.FeatureNames[:]))
	rq.True(entity.SameFeatureNames(entity.NewTrainingTable().Columns))

	swapped := append([]string(nil), entity.FeatureNames[:]...)
	swapped[0], swapped[1] = swapped[1], swapped[0]
	rq.False(entity.SameFeatureNames(swapped))
	rq.False(entity.SameFeatureNames(entity.FeatureNames[:8]))
}
