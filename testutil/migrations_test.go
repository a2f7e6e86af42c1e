package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripplanner/migrations"
	"github.com/pkordes/tripplanner/testutil"
)

// TestMigrations_UpAndDown applies every migration, checks the itineraries
// schema, then rolls back to version 0. It starts from version 0 because the
// repo package's TestMain may already have migrated the shared database.
func TestMigrations_UpAndDown(t *testing.T) {
	db := testutil.NewSQLDB(t)
	ctx := context.Background()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	require.NoError(t, err)

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "reset to version 0")

	results, err := provider.Up(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.True(t, tableExists(t, db, "itineraries"))
	assert.Equal(t, "jsonb", columnType(t, db, "itineraries", "document"))
	assert.Equal(t, "date", columnType(t, db, "itineraries", "start_date"))

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err)
	assert.False(t, tableExists(t, db, "itineraries"))
}

// TestMigrations_RejectsInvertedDates checks the end_date >= start_date
// constraint that backs the trip date range.
func TestMigrations_RejectsInvertedDates(t *testing.T) {
	db := testutil.NewSQLDB(t)
	ctx := context.Background()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	require.NoError(t, err)
	_, err = provider.Up(ctx)
	require.NoError(t, err)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO itineraries (id, title, destination, start_date, end_date, document)
		VALUES (gen_random_uuid(), 'Backwards', 'Nowhere', '2025-06-03', '2025-06-01', '{}')`)
	assert.ErrorContains(t, err, "itineraries_dates_ordered")
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)`
	var exists bool
	require.NoError(t, db.QueryRowContext(context.Background(), q, table).Scan(&exists))
	return exists
}

func columnType(t *testing.T, db *sql.DB, table, column string) string {
	t.Helper()
	const q = `
		SELECT data_type FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1 AND column_name = $2`
	var typ string
	require.NoError(t, db.QueryRowContext(context.Background(), q, table, column).Scan(&typ))
	return typ
}
