package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	StorageDriverPostgres = "pgx"
	StorageDriverSQLite   = "sqlite"
)

type Postgres struct {
	DSN             string        `env:"PG_DSN" json:"-"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME" envDefault:"5m"`
}

// Storage выбирает, где лежат объявления: postgres для сервиса или файл
// sqlite для локальных прогонов.
type Storage struct {
	Driver     string `env:"STORAGE_DRIVER" envDefault:"pgx"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"listings.db"`
}

func (s Storage) validate(pg Postgres) error {
	switch s.Driver {
	case StorageDriverPostgres:
		if pg.DSN == "" {
			return errors.New("PG_DSN is required for STORAGE_DRIVER=pgx")
		}
	case StorageDriverSQLite:
		if s.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for STORAGE_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", s.Driver)
	}

	return nil
}
