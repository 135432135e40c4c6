// Package dedup находит квартиры, выставленные несколько раз, и оставляет по
// одному объявлению на каждую.
package dedup

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"flat_price/internal/domain/entity"
	"flat_price/pkg/contextx"
	"flat_price/pkg/lox"
)

// DefaultThreshold: порог близости текстов, выше которого объявления
// считаются дублями.
const DefaultThreshold = 0.8

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var removedTotal = promauto.NewCounter( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "flat_price_dedup_removed_total",
		Help: "Number of listings dropped as duplicates.",
	},
)

// Stats описывает результат одного прогона.
type Stats struct {
	Input       int
	Groups      int
	Comparisons int
	Removed     int
}

type Deduplicator struct {
	threshold float64
}

func New() *Deduplicator {
	return &Deduplicator{threshold: DefaultThreshold}
}

func (d *Deduplicator) WithThreshold(threshold float64) *Deduplicator {
	d.threshold = threshold
	return d
}

// Deduplicate возвращает подпоследовательность listings без подтверждённых
// дублей.
func (d *Deduplicator) Deduplicate(ctx context.Context, listings []entity.RawListing) []entity.RawListing {
	result, _ := d.DeduplicateWithStats(ctx, listings)
	return result
}

// DeduplicateWithStats группирует объявления по совпадению всех структурных
// полей и внутри группы сравнивает текст каждого объявления с текстом первого.
// Совпадение по структуре без похожего текста дублем не считается: разные цены
// и описания обычно означают разные квартиры.
func (d *Deduplicator) DeduplicateWithStats(
	ctx context.Context,
	listings []entity.RawListing,
) ([]entity.RawListing, Stats) {
	stats := Stats{Input: len(listings)}

	indexes := make([]int, len(listings))
	for i := range listings {
		indexes[i] = i
	}

	groups := lox.GroupByOrdered(indexes, func(i int) structuralKey {
		return newStructuralKey(listings[i])
	})

	drop := make([]bool, len(listings))

	for _, group := range groups {
		if len(group) < 2 {
			continue
		}

		stats.Groups++
		first := listings[group[0]].Description

		for _, i := range group[1:] {
			stats.Comparisons++

			sim := Similarity(first, listings[i].Description)
			if sim > d.threshold {
				drop[i] = true
				stats.Removed++

				logger(ctx).Debug(
					"duplicate listing dropped",
					slog.Int64("kept-id", listings[group[0]].ID),
					slog.Int64("dropped-id", listings[i].ID),
					slog.Float64("similarity", sim),
				)
			}
		}
	}

	result := make([]entity.RawListing, 0, len(listings)-stats.Removed)
	for i, l := range listings {
		if !drop[i] {
			result = append(result, l)
		}
	}

	removedTotal.Add(float64(stats.Removed))

	logger(ctx).Info(
		"deduplication completed",
		slog.Int("input", stats.Input),
		slog.Int("groups", stats.Groups),
		slog.Int("comparisons", stats.Comparisons),
		slog.Int("removed", stats.Removed),
	)

	return result, stats
}

// nullable: значение поля с признаком присутствия; два nil равны.
type nullable[T comparable] struct {
	value T
	valid bool
}

func of[T comparable](p *T) nullable[T] {
	if p == nil {
		return nullable[T]{}
	}
	return nullable[T]{value: *p, valid: true}
}

type structuralKey struct {
	roomCount   nullable[int]
	floor       nullable[int]
	totalFloors nullable[int]
	totalArea   nullable[float64]
	liveArea    nullable[float64]
	kitchenArea nullable[float64]
	district    nullable[int]
}

func newStructuralKey(l entity.RawListing) structuralKey {
	return structuralKey{
		roomCount:   of(l.RoomCount),
		floor:       of(l.Floor),
		totalFloors: of(l.TotalFloors),
		totalArea:   of(l.TotalArea),
		liveArea:    of(l.LiveArea),
		kitchenArea: of(l.KitchenArea),
		district:    of(l.District),
	}
}
