// Package worker содержит обработчики фоновых задач: сбор объявлений и
// переобучение модели.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"git.appkode.ru/pub/go/failure"
	"github.com/hibiken/asynq"

	"flat_price/internal/domain"
	"flat_price/internal/domain/service/estimator"
	"flat_price/internal/domain/service/regression"
	"flat_price/internal/domain/service/training"
	"flat_price/internal/infrastructure/scraper"
	"flat_price/pkg/contextx"
	"flat_price/pkg/errcodes"
	"flat_price/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type trainer interface {
	Retrain(ctx context.Context) (*regression.Model, training.Report, error)
}

type modelLoader interface {
	Load(r estimator.Regressor, version string) error
}

type reloadPublisher interface {
	Publish(ctx context.Context, version string) error
}

type listingScraper interface {
	Run(ctx context.Context, repo scraper.ListingRepository) (scraper.Stats, error)
}

type Handlers struct {
	trainer   trainer
	estimator modelLoader
	publisher reloadPublisher
	scraper   listingScraper
	listings  scraper.ListingRepository
}

func NewHandlers(
	trainer trainer,
	estimator modelLoader,
	publisher reloadPublisher,
) *Handlers {
	return &Handlers{
		trainer:   trainer,
		estimator: estimator,
		publisher: publisher,
	}
}

func (h *Handlers) WithScraper(s listingScraper, listings scraper.ListingRepository) *Handlers {
	h.scraper = s
	h.listings = listings
	return h
}

// Retrain обучает модель, подменяет её в оценщике этого процесса и сообщает
// остальным репликам. Пустой датасет повторять бессмысленно.
func (h *Handlers) Retrain(ctx context.Context, t *asynq.Task) error {
	ctx = withJobLogger(ctx)

	var payload RetrainPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("%w: %w", invalidPayload(err), asynq.SkipRetry)
		}
	}

	logger(ctx).Info("retrain started", slog.String("reason", payload.Reason))

	model, report, err := h.trainer.Retrain(ctx)
	if errors.Is(err, domain.ErrEmptyDataset) {
		return fmt.Errorf("trainer.Retrain: %w: %w", err, asynq.SkipRetry)
	}
	if err != nil {
		return fmt.Errorf("trainer.Retrain: %w", err)
	}

	if err := h.estimator.Load(model, report.Version); err != nil {
		return fmt.Errorf("estimator.Load: %w", err)
	}

	if h.publisher != nil {
		// модель уже сохранена и загружена здесь, остальные реплики подхватят
		// её при следующем уведомлении или рестарте
		if err := h.publisher.Publish(ctx, report.Version); err != nil {
			logger(ctx).Error("publisher.Publish", logx.Error(err))
		}
	}

	logger(ctx).Info(
		"retrain completed",
		slog.String(logx.FieldModelVersion, report.Version),
		slog.Float64("r2", report.R2),
		slog.Float64("rmse", report.RMSE),
	)

	return nil
}

func (h *Handlers) Scrape(ctx context.Context, _ *asynq.Task) error {
	ctx = withJobLogger(ctx)

	if h.scraper == nil {
		return fmt.Errorf("scraper is not configured: %w", asynq.SkipRetry)
	}

	stats, err := h.scraper.Run(ctx, h.listings)
	if err != nil {
		return fmt.Errorf("scraper.Run: %w", err)
	}

	logger(ctx).Info(
		"scrape completed",
		slog.Int("pages", stats.Pages),
		slog.Int("failed", stats.Failed),
		slog.Int("listings", stats.Listings),
	)

	return nil
}

func withJobLogger(ctx context.Context) context.Context {
	id, ok := asynq.GetTaskID(ctx)
	if !ok {
		return ctx
	}

	ctx = contextx.WithJobID(ctx, contextx.JobID(id))

	return contextx.WithLogger(ctx, logger(ctx).With(slog.String(logx.FieldJobID, id)))
}

func invalidPayload(err error) error {
	return failure.NewInvalidArgumentError(
		fmt.Sprintf("%s: %v", errcodes.InvalidTaskPayload, err),
		failure.WithCode(errcodes.InvalidTaskPayload),
		failure.WithDescription(err.Error()),
	)
}
