package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"flat_price/pkg/httpx/reply"
	"flat_price/pkg/logx"
	"flat_price/pkg/middlewarex"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Get("/", handler(s.getIndex))
	// путь без версии оставлен для старых клиентов
	r.Post("/predict_price", handler(s.postPredictPrice))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/predict_price", handler(s.postPredictPrice))
	})
}

// NewHandler собирает роутер со стандартной цепочкой middleware.
func NewHandler(
	s Server,
	sensitiveDataMasker logx.SensitiveDataMaskerInterface,
	logFieldMaxLen int,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.RequestLogging(sensitiveDataMasker, logFieldMaxLen),
		middlewarex.ResponseLogging(sensitiveDataMasker, logFieldMaxLen),
		middlewarex.Recovery,
	)

	s.RegisterRoutes(r)

	return r
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
