// Package price обслуживает запросы на оценку стоимости квартиры.
package price

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"flat_price/internal/domain"
	"flat_price/internal/domain/entity"
	"flat_price/internal/domain/service/validator"
	"flat_price/pkg/contextx"
	"flat_price/pkg/logx"
)

const (
	defaultCacheTTL      = 10 * time.Minute
	cacheCleanupInterval = time.Hour
)

const (
	resultOK       = "ok"
	resultCached   = "cached"
	resultInvalid  = "invalid"
	resultNotReady = "not_ready"
	resultError    = "error"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var estimations = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "flat_price_estimations_total",
		Help: "Number of price estimation requests by result.",
	},
	[]string{"result"},
)

type Estimator interface {
	Predict(a entity.Apartment) (float64, error)
	Version() (string, bool)
}

type Service struct {
	estimator Estimator
	cache     *cache.Cache
}

func NewService(estimator Estimator) *Service {
	return &Service{
		estimator: estimator,
		cache:     cache.New(defaultCacheTTL, cacheCleanupInterval),
	}
}

func (s *Service) WithCacheTTL(ttl time.Duration) *Service {
	s.cache = cache.New(ttl, cacheCleanupInterval)
	return s
}

// Estimate проверяет параметры и считает цену. Результат кэшируется по версии
// модели, поэтому после перезагрузки модели старые ответы не используются.
func (s *Service) Estimate(ctx context.Context, a entity.Apartment) (float64, error) {
	if err := validator.Validate(a); err != nil {
		estimations.WithLabelValues(resultInvalid).Inc()
		return 0, err //nolint:wrapcheck
	}

	version, ok := s.estimator.Version()
	if !ok {
		estimations.WithLabelValues(resultNotReady).Inc()
		return 0, domain.ErrModelNotLoaded
	}

	key := cacheKey(version, a)

	if cached, found := s.cache.Get(key); found {
		if price, ok := cached.(float64); ok {
			estimations.WithLabelValues(resultCached).Inc()
			return price, nil
		}
	}

	price, err := s.estimator.Predict(a)
	if err != nil {
		estimations.WithLabelValues(resultError).Inc()
		return 0, fmt.Errorf("estimator.Predict: %w", err)
	}

	s.cache.SetDefault(key, price)
	estimations.WithLabelValues(resultOK).Inc()

	logger(ctx).Debug(
		"price estimated",
		slog.String(logx.FieldModelVersion, version),
		slog.Float64("price", price),
	)

	return price, nil
}

func cacheKey(version string, a entity.Apartment) string {
	return fmt.Sprintf(
		"%s:%d:%d:%d:%g:%g:%g:%d",
		version, a.RoomCount, a.Floor, a.TotalFloors, a.TotalArea, a.LiveArea, a.KitchenArea, a.District,
	)
}
