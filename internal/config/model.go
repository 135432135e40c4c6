package config

import "time"

type Model struct {
	Path          string        `env:"MODEL_PATH" envDefault:"model.json"`
	ParamsPath    string        `env:"MODEL_PARAMS_PATH" envDefault:"params.yaml"`
	DatasetPath   string        `env:"DATASET_PATH" envDefault:"dataset.csv"`
	ReloadChannel string        `env:"MODEL_RELOAD_CHANNEL" envDefault:"flat_price:model:reload"`
	CacheTTL      time.Duration `env:"MODEL_CACHE_TTL" envDefault:"10m"`
}

type Worker struct {
	Concurrency int `env:"WORKER_CONCURRENCY" envDefault:"1"`
	// Пустое расписание отключает периодическую задачу.
	RetrainCron string `env:"WORKER_RETRAIN_CRON"`
	ScrapeCron  string `env:"WORKER_SCRAPE_CRON"`
}
