package connectors

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"flat_price/pkg/logx"
)

const sqliteDriverName = "sqlite"

// SQLite is a single-file listing store for local runs of the scraper and the
// offline training jobs.
type SQLite struct {
	value *sqlx.DB
	Path  string
	init  sync.Once
}

func (s *SQLite) Client(ctx context.Context) *sqlx.DB {
	s.init.Do(func() {
		sqlx.BindDriver(sqliteDriverName, sqlx.QUESTION)

		s.value = lo.Must(sqlx.ConnectContext(ctx, sqliteDriverName, s.Path))

		// modernc sqlite serialises writers anyway
		s.value.SetMaxOpenConns(1)

		logger(ctx).Info("sqlite opened", slog.String("path", s.Path))
	})

	return s.value
}

func (s *SQLite) Close(ctx context.Context) {
	if s.value == nil {
		return
	}

	if err := s.value.Close(); err != nil {
		logger(ctx).Error("sqliteClient.Close", logx.Error(err))
	}

	logger(ctx).Info("sqlite closed", slog.String("path", s.Path))
}
