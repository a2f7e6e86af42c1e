package repo_test

import (
	"testing"

	"github.com/pkordes/tripplanner/internal/repo"
	"github.com/pkordes/tripplanner/testutil"
)

// newTestRepo returns a Postgres store inside a transaction that is rolled
// back when the test ends. TestMain has already applied the migrations.
func newTestRepo(t *testing.T) repo.ItineraryRepo {
	t.Helper()
	return repo.NewItineraryRepo(testutil.NewTx(t))
}

func TestItineraryRepo_Postgres(t *testing.T) {
	testItineraryRepo(t, newTestRepo)
}
