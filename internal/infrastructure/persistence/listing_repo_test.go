package persistence_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"flat_price/internal/domain/entity"
	"flat_price/internal/infrastructure/persistence"
	"flat_price/pkg/application/connectors"
	"flat_price/pkg/dbtest"
)

func sqliteDB(t *testing.T) *sqlx.DB {
	t.Helper()

	ctx := context.Background()
	s := &connectors.SQLite{Path: filepath.Join(t.TempDir(), "listings.db")}
	t.Cleanup(func() { s.Close(ctx) })

	db := s.Client(ctx)
	require.NoError(t, persistence.Migrate(ctx, db))

	return db
}

func postgresDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("PG_TEST_DSN")
	if dsn == "" {
		t.Skip("PG_TEST_DSN is not set")
	}

	ctx := context.Background()
	p := &connectors.Postgres{DSN: dsn, MaxOpenConns: 4, MaxIdleConns: 4}
	t.Cleanup(func() { p.Close(ctx) })

	db := p.Client(ctx)

	_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS listings`)
	require.NoError(t, err)
	require.NoError(t, dbtest.MigrateFromFile(db, "migrations/listings.sql"))

	return db
}

func testRepository(t *testing.T, db *sqlx.DB) {
	t.Helper()

	rq := require.New(t)
	ctx := context.Background()

	repo := persistence.NewListingRepository(db)

	empty, err := repo.FetchAll(ctx)
	rq.NoError(err)
	rq.Empty(empty)

	full := entity.RawListing{
		Description: "Продается двухкомнатная квартира",
		RoomCount:   lo.ToPtr(2),
		District:    lo.ToPtr(1),
		Floor:       lo.ToPtr(3),
		TotalFloors: lo.ToPtr(9),
		TotalArea:   lo.ToPtr(54.3),
		LiveArea:    lo.ToPtr(30.1),
		KitchenArea: lo.ToPtr(8.5),
		Price:       lo.ToPtr(int64(3500000)),
	}
	partial := entity.RawListing{
		Description: "Сдается комната",
		Price:       lo.ToPtr(int64(12000)),
	}

	rq.NoError(repo.Append(ctx, &full))
	rq.NoError(repo.Append(ctx, &partial))
	rq.Equal(int64(1), full.ID)
	rq.Equal(int64(2), partial.ID)

	got, err := repo.FetchAll(ctx)
	rq.NoError(err)
	rq.Equal([]entity.RawListing{full, partial}, got)

	n, err := repo.Count(ctx)
	rq.NoError(err)
	rq.Equal(2, n)
}

func TestListingRepositorySQLite(t *testing.T) {
	testRepository(t, sqliteDB(t))
}

func TestListingRepositoryPostgres(t *testing.T) {
	testRepository(t, postgresDB(t))
}

func testConcurrentAppend(t *testing.T, db *sqlx.DB) {
	t.Helper()

	rq := require.New(t)
	ctx := context.Background()

	repo := persistence.NewListingRepository(db)

	const n = 40

	listings := make([]entity.RawListing, n)
	g, gctx := errgroup.WithContext(ctx)

	for i := range listings {
		listings[i].Description = fmt.Sprintf("объявление %d", i)

		g.Go(func() error {
			return repo.Append(gctx, &listings[i])
		})
	}

	rq.NoError(g.Wait())

	ids := make([]int, 0, n)
	for _, l := range listings {
		ids = append(ids, int(l.ID))
	}
	sort.Ints(ids)

	for i, id := range ids {
		rq.Equal(i+1, id)
	}

	count, err := repo.Count(ctx)
	rq.NoError(err)
	rq.Equal(n, count)
}

func TestListingRepositoryConcurrentAppendSQLite(t *testing.T) {
	testConcurrentAppend(t, sqliteDB(t))
}

func TestListingRepositoryConcurrentAppendPostgres(t *testing.T) {
	testConcurrentAppend(t, postgresDB(t))
}
