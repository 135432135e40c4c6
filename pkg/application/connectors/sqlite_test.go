package connectors_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"flat_price/pkg/application/connectors"
)

func TestSQLiteClient(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	s := &connectors.SQLite{Path: filepath.Join(t.TempDir(), "listings.db")}
	defer s.Close(ctx)

	db := s.Client(ctx)
	rq.Same(db, s.Client(ctx))

	_, err := db.ExecContext(ctx, `CREATE TABLE t (id BIGINT PRIMARY KEY, v TEXT)`)
	rq.NoError(err)

	_, err = db.ExecContext(ctx, db.Rebind(`INSERT INTO t (id, v) VALUES (?, ?)`), 1, "однокомнатная")
	rq.NoError(err)

	var v string
	rq.NoError(db.GetContext(ctx, &v, db.Rebind(`SELECT v FROM t WHERE id = ?`), 1))
	rq.Equal("однокомнатная", v)
}
