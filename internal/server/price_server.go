package server

import (
	"context"
	"fmt"
	"net/http"

	"flat_price/internal/domain/entity"
	"flat_price/pkg/httpx/reply"
	"flat_price/pkg/httpx/req"
	"flat_price/pkg/rest"
)

const indexText = "Price Prediction"

type priceService interface {
	Estimate(ctx context.Context, a entity.Apartment) (float64, error)
}

type PriceServer struct {
	priceService priceService
}

func NewPriceServer(priceService priceService) PriceServer {
	return PriceServer{
		priceService: priceService,
	}
}

func (s PriceServer) getIndex(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, rest.Index{Text: indexText})

	return nil
}

func (s PriceServer) postPredictPrice(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.ApartmentParams

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	price, err := s.priceService.Estimate(ctx, newDomainApartment(request))
	if err != nil {
		return fmt.Errorf("priceService.Estimate: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.PriceResponse{
		ApartmentParams: request,
		Price:           price,
	})

	return nil
}
