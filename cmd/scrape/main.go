package main

import (
	"context"
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

	if err := app.Scrape(ctx); err != nil {
		log.Error("scrape failed", logx.Error(err))
		app.Close(ctx)
		cancel()
		os.Exit(1) //nolint:gocritic
	}
}
