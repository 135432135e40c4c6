package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"flat_price/internal/domain/entity"
	"flat_price/internal/domain/service/estimator"
	"flat_price/internal/domain/service/price"
	"flat_price/internal/server"
	"flat_price/pkg/errcodes"
	"flat_price/pkg/logx"
	"flat_price/pkg/rest"
	"flat_price/pkg/tests"
)

func sumModel(v entity.FeatureVector) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}

func newTestServer(t *testing.T, e *estimator.Estimator) tests.APIClient {
	t.Helper()

	s := server.NewServer(server.NewPriceServer(price.NewService(e)))
	srv := httptest.NewServer(server.NewHandler(s, logx.NewSensitiveDataMasker(), 1024))
	t.Cleanup(srv.Close)

	return tests.NewAPIClient(srv.URL, srv.Client())
}

func loadedEstimator() *estimator.Estimator {
	e := estimator.New()
	e.Load(estimator.RegressorFunc(sumModel), "stub")
	return e
}

func validParams() rest.ApartmentParams {
	return rest.ApartmentParams{
		RoomCount:   lo.ToPtr(5),
		Floor:       lo.ToPtr(1),
		TotalFloor:  lo.ToPtr(5),
		TotalArea:   lo.ToPtr(100.0),
		LiveArea:    lo.ToPtr(80.0),
		KitchenArea: lo.ToPtr(10.0),
		District:    lo.ToPtr(1),
	}
}

func TestIndex(t *testing.T) {
	rq := require.New(t)

	client := newTestServer(t, loadedEstimator())

	var index rest.Index

	resp, err := client.Get(context.Background(), "/", nil, &index, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("Price Prediction", index.Text)
	rq.NotEmpty(resp.Header.Get("X-Trace-Id"))
}

func TestPredictPrice(t *testing.T) {
	for _, endpoint := range []string{"/predict_price", "/v1/predict_price"} {
		t.Run(endpoint, func(t *testing.T) {
			rq := require.New(t)

			client := newTestServer(t, loadedEstimator())

			var response rest.PriceResponse

			resp, err := client.Post(context.Background(), endpoint, http.Header{}, validParams(), &response, nil)
			rq.NoError(err)
			rq.Equal(http.StatusOK, resp.StatusCode)
			rq.Equal(202.0, response.Price)
			rq.Equal(validParams(), response.ApartmentParams)
		})
	}
}

func TestPredictPriceErrors(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		estimator *estimator.Estimator
		status    int
		code      string
	}{
		{
			name:      "floor above total",
			body:      `{"room_count":2,"floor":6,"total_floor":5,"total_area":50,"live_area":30,"kitchen_area":8,"district":1}`,
			estimator: loadedEstimator(),
			status:    http.StatusBadRequest,
			code:      errcodes.FloorExceedsTotal.String(),
		},
		{
			name:      "district out of range",
			body:      `{"room_count":2,"floor":1,"total_floor":5,"total_area":50,"live_area":30,"kitchen_area":8,"district":4}`,
			estimator: loadedEstimator(),
			status:    http.StatusBadRequest,
			code:      errcodes.DistrictOutOfRange.String(),
		},
		{
			name:      "zero area",
			body:      `{"room_count":2,"floor":1,"total_floor":5,"total_area":0,"live_area":0,"kitchen_area":8,"district":1}`,
			estimator: loadedEstimator(),
			status:    http.StatusBadRequest,
			code:      errcodes.NonPositiveField.String(),
		},
		{
			name:      "missing field",
			body:      `{"room_count":2,"floor":1,"total_area":50,"live_area":30,"kitchen_area":8,"district":1}`,
			estimator: loadedEstimator(),
			status:    http.StatusBadRequest,
			code:      errcodes.ValidationError.String(),
		},
		{
			name:      "broken json",
			body:      `{"room_count":`,
			estimator: loadedEstimator(),
			status:    http.StatusBadRequest,
			code:      errcodes.ValidationError.String(),
		},
		{
			name:      "model not loaded",
			body:      `{"room_count":2,"floor":1,"total_floor":5,"total_area":50,"live_area":30,"kitchen_area":8,"district":1}`,
			estimator: estimator.New(),
			status:    http.StatusInternalServerError,
			code:      errcodes.ModelNotLoaded.String(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			client := newTestServer(t, tc.estimator)

			var response rest.Error

			resp, err := client.PostJSON(context.Background(), "/predict_price", http.Header{}, tc.body, nil, &response)
			rq.NoError(err)
			rq.Equal(tc.status, resp.StatusCode)
			rq.Equal(tc.code, string(response.Code))
			rq.NotEmpty(response.SupportID)
		})
	}
}
