package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"flat_price/internal/application"
	"flat_price/internal/config"
	"flat_price/pkg/contextx"
	"flat_price/pkg/logx"
)

func main() {
	fromStorage := flag.Bool("from-storage", false, "build the dataset from the listing storage instead of DATASET_PATH")
	enqueue := flag.Bool("enqueue", false, "ask the running service to retrain instead of training locally")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config.Load", logx.Error(err))
		os.Exit(1)
	}

	log := logx.NewLogger(os.Stdout, cfg.Log.Level, false)
	ctx = contextx.WithLogger(ctx, log)

	app := application.New(cfg)
	defer app.Close(ctx)

	if *enqueue {
		if err := app.EnqueueRetrain(ctx, "cli"); err != nil {
			log.Error("enqueue failed", logx.Error(err))
			app.Close(ctx)
			cancel()
			os.Exit(1) //nolint:gocritic
		}
		return
	}

	report, err := app.Train(ctx, *fromStorage)
	if err != nil {
		log.Error("train failed", logx.Error(err))
		app.Close(ctx)
		cancel()
		os.Exit(1)
	}

	log.Info(
		"training report",
		slog.String(logx.FieldModelVersion, report.Version),
		slog.Int("train-rows", report.TrainRows),
		slog.Int("test-rows", report.TestRows),
		slog.Float64("r2", report.R2),
		slog.Float64("rmse", report.RMSE),
	)
}
