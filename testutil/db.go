// Package testutil holds opt-in integration helpers. Postgres helpers read
// TEST_DATABASE_URL and redis helpers read REDIS_URL; when the variable is
// unset the calling test is skipped, so the unit suite runs with no services.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // "pgx" driver for database/sql (goose)
)

const databaseEnv = "TEST_DATABASE_URL"

// NewPool returns a pinged pool on the test database, closed at cleanup.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pool, err := pgxpool.New(context.Background(), databaseURL(t))
	if err != nil {
		t.Fatalf("testutil.NewPool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// NewTx begins a transaction on a fresh pool and rolls it back at cleanup,
// so every itinerary a test writes disappears with it.
func NewTx(t *testing.T) pgx.Tx {
	t.Helper()
	tx, err := NewPool(t).Begin(context.Background())
	if err != nil {
		t.Fatalf("testutil.NewTx: begin: %v", err)
	}
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })
	return tx
}

// NewSQLDB returns a database/sql handle for goose, closed at cleanup.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := openSQL(databaseURL(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// MustOpenSQLDB is NewSQLDB for TestMain, where there is no *testing.T.
// The caller closes the handle.
func MustOpenSQLDB(dsn string) *sql.DB {
	db, err := openSQL(dsn)
	if err != nil {
		panic("testutil.MustOpenSQLDB: " + err.Error())
	}
	return db
}

func openSQL(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return db, nil
}

func databaseURL(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv(databaseEnv)
	if dsn == "" {
		t.Skip(databaseEnv + " not set; skipping Postgres test")
	}
	return dsn
}
