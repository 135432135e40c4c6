package persistence

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"

	"flat_price/internal/domain"
	"flat_price/internal/domain/entity"
	"flat_price/pkg/errcodes"
	"flat_price/pkg/lox"
)

const (
	postgresDriverName = "pgx"
	// ключ advisory-блокировки, под которой выдаются id объявлений
	listingIDLockKey int64 = 0x6c697374696e67
)

//go:embed migrations/listings.sql
var listingsSchema string

// Migrate создаёт таблицу listings, если её ещё нет.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, listingsSchema); err != nil {
		return fmt.Errorf("db.ExecContext: %w", err)
	}
	return nil
}

// ListingRepository работает и с postgres, и с sqlite: именованные параметры
// sqlx подставляет в формате драйвера.
type ListingRepository struct {
	db *sqlx.DB
}

func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}
	return nil
}

// FetchAll возвращает все объявления в порядке добавления.
func (r *ListingRepository) FetchAll(ctx context.Context) ([]entity.RawListing, error) {
	query := `
		SELECT id, room_count, floor, total_floors, price,
		       total_area, live_area, kitchen_area, district, description
		FROM listings
		ORDER BY id ASC`

	var schemas []listingSchema
	if err := r.db.SelectContext(ctx, &schemas, query); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to fetch listings")
	}

	return lox.Map(schemas, func(s listingSchema) entity.RawListing {
		return s.toDomain()
	}), nil
}

// lockIDs сериализует выдачу id между транзакциями. В postgres при READ
// COMMITTED два параллельных MAX(id) иначе видят одно и то же значение. В
// sqlite писатель и так один: коннектор держит одно соединение.
func (r *ListingRepository) lockIDs(ctx context.Context, tx *sqlx.Tx) error {
	if r.db.DriverName() != postgresDriverName {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, listingIDLockKey); err != nil {
		return domain.WrapError(err, errcodes.ListingNotPersisted, "failed to lock listing ids")
	}

	return nil
}

// Append выдаёт объявлению следующий id внутри транзакции и записывает его.
// При успехе id проставляется в l. Параллельные вызовы, в том числе из разных
// процессов, получают разные id.
func (r *ListingRepository) Append(ctx context.Context, l *entity.RawListing) error {
	var id int64

	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.lockIDs(ctx, tx); err != nil {
			return err
		}

		if err := tx.GetContext(ctx, &id, `SELECT COALESCE(MAX(id), 0) + 1 FROM listings`); err != nil {
			return domain.WrapError(err, errcodes.ListingNotPersisted, "failed to allocate listing id")
		}

		schema := fromListing(l)
		schema.ID = id

		query := `
			INSERT INTO listings (
				id, room_count, floor, total_floors, price,
				total_area, live_area, kitchen_area, district, description
			) VALUES (
				:id, :room_count, :floor, :total_floors, :price,
				:total_area, :live_area, :kitchen_area, :district, :description
			)`

		if _, err := tx.NamedExecContext(ctx, query, schema); err != nil {
			return domain.WrapError(err, errcodes.ListingNotPersisted, "failed to insert listing")
		}

		return nil
	})
	if err != nil {
		return err
	}

	l.ID = id
	return nil
}

// Count — число сохранённых объявлений.
func (r *ListingRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM listings`); err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to count listings")
	}
	return n, nil
}
