package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/planner"
	"github.com/pkordes/tripplanner/internal/repo"
)

// itineraryFixture returns a planned trip with one activity, one stay and one
// leg so every nested field is exercised by the store.
func itineraryFixture(t *testing.T, title, start string) domain.Itinerary {
	t.Helper()
	p := planner.New()
	s, err := domain.ParseDate(start)
	require.NoError(t, err)

	it, err := p.Create(planner.CreateInput{
		Title:       title,
		Destination: "Paris",
		StartDate:   s,
		EndDate:     s.AddDate(0, 0, 2),
		Preferences: domain.TripPreferences{
			Preferences: []domain.TravelPreference{domain.PreferenceArt},
			Pace:        domain.PaceRelaxed,
			Budget:      domain.Budget{Total: 300, Food: 90.5, Currency: "EUR"},
		},
	})
	require.NoError(t, err)

	_, err = p.AddActivity(&it, it.Days[1].ID, domain.ActivityInput{
		Title:            "Musée d'Orsay",
		Type:             domain.ActivityMuseum,
		Location:         domain.Location{Name: "Orsay", Address: "1 Rue de la Légion d'Honneur", Lat: 48.86, Lng: 2.3266},
		Start:            domain.MustClock("10:15"),
		End:              domain.MustClock("12:45"),
		Cost:             16.5,
		WeatherSensitive: false,
	})
	require.NoError(t, err)
	_, err = p.AddAccommodation(&it, domain.AccommodationInput{
		Name: "Hôtel", Class: domain.AccommodationBnB, CheckIn: s, CheckOut: s.AddDate(0, 0, 2), Cost: 240,
	})
	require.NoError(t, err)
	_, err = p.AddTransportation(&it, domain.TransportationInput{
		Mode:          domain.TransportTrain,
		From:          domain.Location{Name: "London", Lat: 51.5074, Lng: -0.1278},
		To:            domain.Location{Name: "Paris", Lat: 48.8566, Lng: 2.3522},
		DepartureTime: s.Add(8 * time.Hour),
		ArrivalTime:   s.Add(11*time.Hour + 30*time.Minute),
		Cost:          120,
	})
	require.NoError(t, err)
	return it
}

// withStoreTimestamps copies the store-assigned timestamps onto want.
func withStoreTimestamps(want, got domain.Itinerary) domain.Itinerary {
	want.CreatedAt, want.UpdatedAt = got.CreatedAt, got.UpdatedAt
	return want
}

// testItineraryRepo runs the behaviour every ItineraryRepo must share.
func testItineraryRepo(t *testing.T, newRepo func(t *testing.T) repo.ItineraryRepo) {
	ctx := context.Background()

	t.Run("put and get round-trip every field", func(t *testing.T) {
		r := newRepo(t)
		in := itineraryFixture(t, "Paris", "2025-06-01")

		put, err := r.Put(ctx, in)
		require.NoError(t, err)
		assert.False(t, put.CreatedAt.IsZero())
		assert.False(t, put.UpdatedAt.IsZero())
		assert.Equal(t, withStoreTimestamps(in, put), put)

		got, err := r.GetByID(ctx, in.ID)
		require.NoError(t, err)
		assert.Equal(t, put, got)
	})

	t.Run("put replaces and keeps created_at", func(t *testing.T) {
		r := newRepo(t)
		in := itineraryFixture(t, "Paris", "2025-06-01")
		first, err := r.Put(ctx, in)
		require.NoError(t, err)

		in.Title = "Paris again"
		second, err := r.Put(ctx, in)
		require.NoError(t, err)

		assert.Equal(t, "Paris again", second.Title)
		assert.True(t, second.CreatedAt.Equal(first.CreatedAt))
		assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
	})

	t.Run("get missing", func(t *testing.T) {
		r := newRepo(t)
		_, err := r.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("list orders by start date descending", func(t *testing.T) {
		r := newRepo(t)
		for _, f := range []struct{ title, start string }{
			{"spring", "2025-03-10"}, {"winter", "2024-12-20"}, {"summer", "2025-07-01"},
		} {
			_, err := r.Put(ctx, itineraryFixture(t, f.title, f.start))
			require.NoError(t, err)
		}

		all, err := r.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "summer", all[0].Title)
		assert.Equal(t, "spring", all[1].Title)
		assert.Equal(t, "winter", all[2].Title)

		page, total, err := r.ListPaged(ctx, domain.PaginationParams{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, page, 1)
		assert.Equal(t, "winter", page[0].Title)

		page, total, err = r.ListPaged(ctx, domain.PaginationParams{Page: 5, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Empty(t, page)
	})

	t.Run("list empty is non-nil", func(t *testing.T) {
		r := newRepo(t)
		all, err := r.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})

	t.Run("delete", func(t *testing.T) {
		r := newRepo(t)
		in := itineraryFixture(t, "Paris", "2025-06-01")
		_, err := r.Put(ctx, in)
		require.NoError(t, err)

		require.NoError(t, r.Delete(ctx, in.ID))
		_, err = r.GetByID(ctx, in.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, r.Delete(ctx, in.ID), domain.ErrNotFound)
	})
}
