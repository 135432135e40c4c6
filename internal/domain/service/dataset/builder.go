// Package dataset превращает разобранные объявления в обучающую таблицу.
package dataset

import (
	"context"
	"log/slog"

	"flat_price/internal/domain"
	"flat_price/internal/domain/entity"
	"flat_price/internal/domain/service/dedup"
	"flat_price/internal/domain/service/validator"
	"flat_price/pkg/contextx"
	"flat_price/pkg/errcodes"
	"flat_price/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type deduplicator interface {
	DeduplicateWithStats(ctx context.Context, listings []entity.RawListing) ([]entity.RawListing, dedup.Stats)
}

// Stats: сколько строк отсеяно на каждом шаге.
type Stats struct {
	Input      int
	Incomplete int
	Duplicates int
	Imputed    int
	Rejected   int
	Rows       int
}

type Builder struct {
	dedup deduplicator
}

func NewBuilder(d deduplicator) *Builder {
	return &Builder{dedup: d}
}

func (b *Builder) Build(ctx context.Context, listings []entity.RawListing) (entity.TrainingTable, error) {
	table, _, err := b.BuildWithStats(ctx, listings)
	return table, err
}

// BuildWithStats:
//  1. отбрасывает объявления с пустыми полями или без описания;
//  2. удаляет дубли;
//  3. восстанавливает жилую площадь как total-kitchen, если она нулевая, а
//     площадь кухни нет;
//  4. отбрасывает строки, нарушающие ограничения Apartment;
//  5. кодирует район индикаторами, цена уходит в Labels.
func (b *Builder) BuildWithStats(
	ctx context.Context,
	listings []entity.RawListing,
) (entity.TrainingTable, Stats, error) {
	stats := Stats{Input: len(listings)}

	complete := make([]entity.RawListing, 0, len(listings))
	for _, l := range listings {
		if l.Complete() {
			complete = append(complete, l)
		}
	}
	stats.Incomplete = len(listings) - len(complete)

	if len(complete) == 0 {
		return entity.TrainingTable{}, stats, domain.WrapError(
			domain.ErrEmptyDataset, errcodes.EmptyDataset, "no complete listings",
		)
	}

	unique, dedupStats := b.dedup.DeduplicateWithStats(ctx, complete)
	stats.Duplicates = dedupStats.Removed

	table := entity.NewTrainingTable()

	for _, l := range unique {
		a := l.Apartment()

		if a.LiveArea == 0 && a.KitchenArea != 0 {
			a.LiveArea = a.TotalArea - a.KitchenArea
			stats.Imputed++
		}

		if err := validator.Validate(a); err != nil {
			stats.Rejected++
			logger(ctx).Debug(
				"listing rejected",
				slog.Int64(logx.FieldListingID, l.ID),
				logx.Error(err),
			)
			continue
		}

		v, err := entity.Encode(a)
		if err != nil {
			stats.Rejected++
			continue
		}

		table.Append(v, float64(*l.Price))
	}

	stats.Rows = table.Len()

	logger(ctx).Info(
		"dataset built",
		slog.Int("input", stats.Input),
		slog.Int("incomplete", stats.Incomplete),
		slog.Int("duplicates", stats.Duplicates),
		slog.Int("imputed", stats.Imputed),
		slog.Int("rejected", stats.Rejected),
		slog.Int("rows", stats.Rows),
	)

	if table.Len() == 0 {
		return entity.TrainingTable{}, stats, domain.WrapError(
			domain.ErrEmptyDataset, errcodes.EmptyDataset, "no listings survived cleaning",
		)
	}

	return table, stats, nil
}
