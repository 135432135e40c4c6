package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	Log      Log
	Storage  Storage
	Postgres Postgres
	Redis    Redis
	HTTP     HTTP
	Model    Model
	Scraper  Scraper
	Worker   Worker
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"flat-price"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

type Log struct {
	Level       slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	FieldMaxLen int        `env:"LOG_FIELD_MAX_LEN" envDefault:"2048"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := config.Storage.validate(config.Postgres); err != nil {
		return Config{}, err
	}

	return config, nil
}
