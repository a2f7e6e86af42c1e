package repo_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripplanner/internal/repo"
)

func newBoltRepo(t *testing.T) repo.ItineraryRepo {
	t.Helper()
	r, err := repo.OpenBoltItineraryRepo(filepath.Join(t.TempDir(), "trips.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestItineraryRepo_Bolt(t *testing.T) {
	testItineraryRepo(t, newBoltRepo)
}

func TestBoltItineraryRepo_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "trips.db")

	r, err := repo.OpenBoltItineraryRepo(path)
	require.NoError(t, err)
	in := itineraryFixture(t, "Lisbon", "2025-09-01")
	put, err := r.Put(ctx, in)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	r, err = repo.OpenBoltItineraryRepo(path)
	require.NoError(t, err)
	defer r.Close()

	got, err := r.GetByID(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, put, got)
}

func TestBoltItineraryRepo_CancelledContext(t *testing.T) {
	r := newBoltRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.List(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
