package validator_test

import (
	"math"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"flat_price/internal/domain/entity"
	"flat_price/internal/domain/service/validator"
	"flat_price/pkg/errcodes"
)

func validApartment() entity.Apartment {
	return entity.Apartment{
		RoomCount:   5,
		Floor:       1,
		TotalFloors: 5,
		TotalArea:   100,
		LiveArea:    80,
		KitchenArea: 10,
		District:    1,
	}
}

func TestValidate(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name   string
		modify func(a *entity.Apartment)
		code   failure.ErrorCode
	}{
		{
			name:   "Valid",
			modify: func(*entity.Apartment) {},
		},
		{
			name:   "Edge equalities are valid",
			modify: func(a *entity.Apartment) { a.Floor, a.LiveArea, a.KitchenArea = 5, 100, 100 },
		},
		{
			name:   "District 4",
			modify: func(a *entity.Apartment) { a.District = 4 },
			code:   errcodes.DistrictOutOfRange,
		},
		{
			name:   "District 0 fails positivity first",
			modify: func(a *entity.Apartment) { a.District = 0 },
			code:   errcodes.NonPositiveField,
		},
		{
			name:   "Floor above total floors",
			modify: func(a *entity.Apartment) { a.Floor, a.TotalFloors = 6, 5 },
			code:   errcodes.FloorExceedsTotal,
		},
		{
			name:   "Zero live and total area",
			modify: func(a *entity.Apartment) { a.LiveArea, a.TotalArea = 0, 0 },
			code:   errcodes.NonPositiveField,
		},
		{
			name:   "Negative kitchen area",
			modify: func(a *entity.Apartment) { a.KitchenArea = -1 },
			code:   errcodes.NonPositiveField,
		},
		{
			name:   "NaN total area",
			modify: func(a *entity.Apartment) { a.TotalArea = math.NaN() },
			code:   errcodes.NonPositiveField,
		},
		{
			name:   "Zero rooms",
			modify: func(a *entity.Apartment) { a.RoomCount = 0 },
			code:   errcodes.NonPositiveField,
		},
		{
			name:   "Live area above total",
			modify: func(a *entity.Apartment) { a.LiveArea = 101 },
			code:   errcodes.LiveAreaExceedsTotal,
		},
		{
			name:   "Kitchen area above total",
			modify: func(a *entity.Apartment) { a.KitchenArea = 100.5 },
			code:   errcodes.KitchenAreaExceedsTotal,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			a := validApartment()
			tc.modify(&a)

			err := validator.Validate(a)

			if tc.code == "" {
				rq.NoError(err)
				return
			}

			rq.Error(err)
			rq.True(failure.IsInvalidArgumentError(err))
			rq.Equal(tc.code, failure.Code(err))
			rq.NotEmpty(failure.Description(err))
		})
	}
}
