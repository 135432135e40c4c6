// Package application собирает зависимости и запускает режимы работы:
// HTTP-сервис, сбор объявлений, выгрузку датасета и обучение.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"

	"flat_price/internal/config"
	"flat_price/internal/domain/service/regression"
	"flat_price/internal/domain/service/training"
	"flat_price/internal/infrastructure/persistence"
	"flat_price/pkg/application/connectors"
	"flat_price/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Application struct {
	cfg      config.Config
	postgres *connectors.Postgres
	sqlite   *connectors.SQLite
	redis    *connectors.Redis
}

func New(cfg config.Config) *Application {
	return &Application{
		cfg: cfg,
		postgres: &connectors.Postgres{
			DSN:             cfg.Postgres.DSN,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		},
		sqlite: &connectors.SQLite{
			Path: cfg.Storage.SQLitePath,
		},
		redis: &connectors.Redis{
			Address:        cfg.Redis.Address,
			Username:       cfg.Redis.Username,
			Password:       cfg.Redis.Password,
			DatabaseNumber: cfg.Redis.DatabaseNumber,
			PoolSize:       cfg.Redis.PoolSize,
		},
	}
}

// Close закрывает только те соединения, которые успели открыться.
func (a *Application) Close(ctx context.Context) {
	a.postgres.Close(ctx)
	a.sqlite.Close(ctx)
	a.redis.Close(ctx)
}

func (a *Application) db(ctx context.Context) *sqlx.DB {
	if a.cfg.Storage.Driver == config.StorageDriverSQLite {
		return a.sqlite.Client(ctx)
	}
	return a.postgres.Client(ctx)
}

// Listings открывает хранилище объявлений и создаёт таблицу при первом
// запуске.
func (a *Application) Listings(ctx context.Context) (*persistence.ListingRepository, error) {
	db := a.db(ctx)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db.PingContext: %w", err)
	}

	if err := persistence.Migrate(ctx, db); err != nil {
		return nil, fmt.Errorf("persistence.Migrate: %w", err)
	}

	logger(ctx).Info("listing storage ready", slog.String("driver", a.cfg.Storage.Driver))

	return persistence.NewListingRepository(db), nil
}

// TrainingParams читает файл гиперпараметров. Если файла нет, используются
// значения по умолчанию.
func (a *Application) TrainingParams(ctx context.Context) (training.Params, error) {
	h, err := config.LoadHyperparams(a.cfg.Model.ParamsPath)
	if errors.Is(err, os.ErrNotExist) {
		logger(ctx).Warn("hyperparameters file not found, using defaults", slog.String("path", a.cfg.Model.ParamsPath))
		h = config.DefaultHyperparams()
	} else if err != nil {
		return training.Params{}, fmt.Errorf("config.LoadHyperparams: %w", err)
	}

	return training.Params{
		TestSize:    h.TestSize,
		RandomState: h.RandomState,
		Regression: regression.Params{
			Alpha:        h.Alpha,
			FitIntercept: h.FitIntercept,
		},
	}, nil
}
