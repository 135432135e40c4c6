package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"flat_price/internal/domain/entity"
	"flat_price/internal/domain/service/dataset"
	"flat_price/internal/domain/service/dedup"
	"flat_price/internal/domain/service/training"
	"flat_price/internal/infrastructure/modelstore"
	"flat_price/internal/infrastructure/scraper"
	"flat_price/pkg/httpx"
	"flat_price/pkg/logx"
)

func (a *Application) newScraper() *scraper.Scraper {
	client := &http.Client{
		Transport: httpx.NewUserAgentRoundTripper(
			httpx.NewLoggingRoundTripper(
				http.DefaultTransport,
				httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
				httpx.WithLogFieldMaxLen(a.cfg.Log.FieldMaxLen),
				httpx.WithoutResponseBody(),
			),
			a.cfg.Scraper.UserAgent,
		),
	}

	return scraper.New(client, a.cfg.Scraper.PageURLs()).WithTimeout(a.cfg.Scraper.Timeout)
}

// Scrape один раз обходит все страницы и дописывает объявления в хранилище.
func (a *Application) Scrape(ctx context.Context) error {
	listings, err := a.Listings(ctx)
	if err != nil {
		return err
	}

	stats, err := a.newScraper().Run(ctx, listings)
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

// Prepare строит датасет по хранилищу и пишет его в DATASET_PATH. При пустом
// датасете файл не создаётся.
func (a *Application) Prepare(ctx context.Context) error {
	table, err := a.buildTable(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(a.cfg.Model.DatasetPath)
	if err != nil {
		return fmt.Errorf("os.Create: %w", err)
	}

	if err := dataset.WriteCSV(f, table); err != nil {
		_ = f.Close()
		return fmt.Errorf("dataset.WriteCSV: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("f.Close: %w", err)
	}

	logger(ctx).Info("dataset written", slog.String("path", a.cfg.Model.DatasetPath), slog.Int("rows", table.Len()))

	return nil
}

// Train обучает модель на CSV из DATASET_PATH или, если fromStorage, на
// датасете, собранном из хранилища, и сохраняет её в MODEL_PATH.
func (a *Application) Train(ctx context.Context, fromStorage bool) (training.Report, error) {
	params, err := a.TrainingParams(ctx)
	if err != nil {
		return training.Report{}, err
	}

	var table entity.TrainingTable

	if fromStorage {
		table, err = a.buildTable(ctx)
	} else {
		table, err = readTable(a.cfg.Model.DatasetPath)
	}
	if err != nil {
		return training.Report{}, err
	}

	store := modelstore.NewFileStore(a.cfg.Model.Path)

	model, report, err := training.NewService(nil, nil, store, params).Train(ctx, table)
	if err != nil {
		return training.Report{}, fmt.Errorf("training.Train: %w", err)
	}

	if err := store.Save(ctx, model); err != nil {
		return training.Report{}, fmt.Errorf("store.Save: %w", err)
	}

	logger(ctx).Info("model saved", slog.String("path", store.Path()), slog.String(logx.FieldModelVersion, model.Version))

	return report, nil
}

func (a *Application) buildTable(ctx context.Context) (entity.TrainingTable, error) {
	repo, err := a.Listings(ctx)
	if err != nil {
		return entity.TrainingTable{}, err
	}

	listings, err := repo.FetchAll(ctx)
	if err != nil {
		return entity.TrainingTable{}, fmt.Errorf("repo.FetchAll: %w", err)
	}

	table, err := dataset.NewBuilder(dedup.New()).Build(ctx, listings)
	if err != nil {
		return entity.TrainingTable{}, fmt.Errorf("dataset.Build: %w", err)
	}

	return table, nil
}

func readTable(path string) (entity.TrainingTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return entity.TrainingTable{}, fmt.Errorf("os.Open: %w", err)
	}
	defer f.Close()

	table, err := dataset.ReadCSV(f)
	if err != nil {
		return entity.TrainingTable{}, fmt.Errorf("dataset.ReadCSV: %w", err)
	}

	return table, nil
}
