package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripplanner/internal/budget"
	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/planner"
	"github.com/pkordes/tripplanner/internal/repo"
	"github.com/pkordes/tripplanner/internal/service"
)

// mockItineraryRepo is a hand-written test double for repo.ItineraryRepo.
// Each method is a function field; set only the ones your test needs.
type mockItineraryRepo struct {
	put       func(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)
	list      func(ctx context.Context) ([]domain.Itinerary, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockItineraryRepo) Put(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	return m.put(ctx, it)
}
func (m *mockItineraryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	return m.getByID(ctx, id)
}
func (m *mockItineraryRepo) List(ctx context.Context) ([]domain.Itinerary, error) {
	return m.list(ctx)
}
func (m *mockItineraryRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockItineraryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockItineraryRepo must satisfy repo.ItineraryRepo.
var _ repo.ItineraryRepo = (*mockItineraryRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func createInput() planner.CreateInput {
	return planner.CreateInput{
		Title:       "Trip",
		Destination: "Paris",
		StartDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		Preferences: domain.TripPreferences{
			Pace:   domain.PaceModerate,
			Budget: domain.Budget{Total: 300, Currency: "EUR"},
		},
	}
}

func storedTrip(t *testing.T) domain.Itinerary {
	t.Helper()
	it, err := planner.New().Create(createInput())
	require.NoError(t, err)
	return it
}

// memRepo is a mockItineraryRepo over a single stored itinerary. puts counts
// successful writes.
type memRepo struct {
	*mockItineraryRepo
	stored domain.Itinerary
	puts   int
}

func newMemRepo(it domain.Itinerary) *memRepo {
	m := &memRepo{stored: it}
	m.mockItineraryRepo = &mockItineraryRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Itinerary, error) {
			if id != m.stored.ID {
				return domain.Itinerary{}, domain.ErrNotFound
			}
			return m.stored, nil
		},
		put: func(_ context.Context, it domain.Itinerary) (domain.Itinerary, error) {
			m.puts++
			m.stored = it
			return it, nil
		},
	}
	return m
}

func museum(cost float64) domain.ActivityInput {
	return domain.ActivityInput{
		Title: "Louvre",
		Type:  domain.ActivityMuseum,
		Start: domain.MustClock("10:00"),
		End:   domain.MustClock("12:00"),
		Cost:  cost,
	}
}

// ---- Create ----------------------------------------------------------------

func TestItineraryService_Create_Stores(t *testing.T) {
	var saved domain.Itinerary
	svc := service.NewItineraryService(&mockItineraryRepo{
		put: func(_ context.Context, it domain.Itinerary) (domain.Itinerary, error) {
			saved = it
			return it, nil
		},
	}, planner.New(), discardLogger())

	got, err := svc.Create(context.Background(), createInput())

	require.NoError(t, err)
	assert.Len(t, got.Days, 3)
	assert.Equal(t, got.ID, saved.ID)
	require.NotNil(t, got.Preferences.Budget.DailyLimit)
	assert.Equal(t, 100.0, *got.Preferences.Budget.DailyLimit)
}

func TestItineraryService_Create_InvalidNeverStores(t *testing.T) {
	svc := service.NewItineraryService(&mockItineraryRepo{
		put: func(context.Context, domain.Itinerary) (domain.Itinerary, error) {
			t.Fatal("Put must not be called for invalid input")
			return domain.Itinerary{}, nil
		},
	}, planner.New(), discardLogger())

	in := createInput()
	in.EndDate = in.StartDate.AddDate(0, 0, -1)
	_, err := svc.Create(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestItineraryService_Create_PersistenceFailure(t *testing.T) {
	svc := service.NewItineraryService(&mockItineraryRepo{
		put: func(context.Context, domain.Itinerary) (domain.Itinerary, error) {
			return domain.Itinerary{}, domain.ErrPersistence
		},
	}, planner.New(), discardLogger())

	_, err := svc.Create(context.Background(), createInput())

	assert.ErrorIs(t, err, domain.ErrPersistence)
}

// ---- Get / List / Delete ---------------------------------------------------

func TestItineraryService_Get_NotFound(t *testing.T) {
	svc := service.NewItineraryService(newMemRepo(storedTrip(t)), planner.New(), discardLogger())

	_, err := svc.Get(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItineraryService_Get_RepairsStaleDerivedFields(t *testing.T) {
	it := storedTrip(t)
	_, err := planner.New().AddActivity(&it, it.Days[0].ID, museum(120))
	require.NoError(t, err)
	it.Days[0].TotalCost = 0
	it.Days[0].IsOverBudget = false
	it.TotalCarbonFootprint = 99
	svc := service.NewItineraryService(newMemRepo(it), planner.New(), discardLogger())

	got, err := svc.Get(context.Background(), it.ID)

	require.NoError(t, err)
	assert.Equal(t, 120.0, got.Days[0].TotalCost)
	assert.True(t, got.Days[0].IsOverBudget)
	assert.InDelta(t, 3.0, got.TotalCarbonFootprint, 1e-9)
}

func TestItineraryService_Get_RejectsBrokenDocument(t *testing.T) {
	it := storedTrip(t)
	it.Days = it.Days[:2]
	svc := service.NewItineraryService(newMemRepo(it), planner.New(), discardLogger())

	_, err := svc.Get(context.Background(), it.ID)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestItineraryService_List_PassesPagination(t *testing.T) {
	var got domain.PaginationParams
	svc := service.NewItineraryService(&mockItineraryRepo{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
			got = p
			return []domain.Itinerary{}, 41, nil
		},
	}, planner.New(), discardLogger())

	_, total, err := svc.List(context.Background(), domain.PaginationParams{Page: 3, Limit: 20})

	require.NoError(t, err)
	assert.Equal(t, int64(41), total)
	assert.Equal(t, domain.PaginationParams{Page: 3, Limit: 20}, got)
}

func TestItineraryService_Delete_PropagatesNotFound(t *testing.T) {
	svc := service.NewItineraryService(&mockItineraryRepo{
		delete: func(context.Context, uuid.UUID) error { return domain.ErrNotFound },
	}, planner.New(), discardLogger())

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- commands --------------------------------------------------------------

func TestItineraryService_AddActivity_StoresResult(t *testing.T) {
	it := storedTrip(t)
	r := newMemRepo(it)
	svc := service.NewItineraryService(r, planner.New(), discardLogger())

	res, err := svc.AddActivity(context.Background(), it.ID, it.Days[1].ID, museum(60))

	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Activity.CarbonFootprint)
	assert.Equal(t, 60.0, res.Day.TotalCost)
	assert.Equal(t, 1, r.puts)
	require.Len(t, r.stored.Days[1].Activities, 1)
	assert.Equal(t, res.Activity.ID, r.stored.Days[1].Activities[0].ID)
	assert.Equal(t, 3.0, r.stored.TotalCarbonFootprint)
}

func TestItineraryService_FailedCommandNeverStores(t *testing.T) {
	it := storedTrip(t)
	r := newMemRepo(it)
	svc := service.NewItineraryService(r, planner.New(), discardLogger())

	_, err := svc.AddActivity(context.Background(), it.ID, uuid.New(), museum(10))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.AddActivity(context.Background(), it.ID, it.Days[0].ID, museum(-1))
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Zero(t, r.puts)
}

func TestItineraryService_PutFailureIsReturned(t *testing.T) {
	it := storedTrip(t)
	r := newMemRepo(it)
	r.put = func(context.Context, domain.Itinerary) (domain.Itinerary, error) {
		return domain.Itinerary{}, errors.Join(domain.ErrPersistence, errors.New("disk full"))
	}
	svc := service.NewItineraryService(r, planner.New(), discardLogger())

	_, err := svc.SetBudgetTotal(context.Background(), it.ID, 600)

	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestItineraryService_RemoveActivity(t *testing.T) {
	it := storedTrip(t)
	r := newMemRepo(it)
	svc := service.NewItineraryService(r, planner.New(), discardLogger())
	res, err := svc.AddActivity(context.Background(), it.ID, it.Days[0].ID, museum(150))
	require.NoError(t, err)
	require.True(t, res.IsOverBudget)

	day, err := svc.RemoveActivity(context.Background(), it.ID, it.Days[0].ID, res.Activity.ID)

	require.NoError(t, err)
	assert.Zero(t, day.TotalCost)
	assert.False(t, day.IsOverBudget)
	assert.Empty(t, r.stored.Days[0].Activities)
	assert.Zero(t, r.stored.TotalCarbonFootprint)
}

func TestItineraryService_ListActivities_ByStartTime(t *testing.T) {
	it := storedTrip(t)
	svc := service.NewItineraryService(newMemRepo(it), planner.New(), discardLogger())
	late := museum(5)
	late.Title, late.Start, late.End = "Late", domain.MustClock("15:00"), domain.MustClock("16:00")
	_, err := svc.AddActivity(context.Background(), it.ID, it.Days[0].ID, late)
	require.NoError(t, err)
	_, err = svc.AddActivity(context.Background(), it.ID, it.Days[0].ID, museum(5))
	require.NoError(t, err)

	got, err := svc.ListActivities(context.Background(), it.ID, it.Days[0].ID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Louvre", got[0].Title)
	assert.Equal(t, "Late", got[1].Title)

	_, err = svc.ListActivities(context.Background(), it.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItineraryService_LodgingAndFootprint(t *testing.T) {
	it := storedTrip(t)
	r := newMemRepo(it)
	svc := service.NewItineraryService(r, planner.New(), discardLogger())

	leg, err := svc.AddTransportation(context.Background(), it.ID, domain.TransportationInput{
		Mode: domain.TransportTrain,
		From: domain.Location{Name: "Paris", Lat: 48.8566, Lng: 2.3522},
		To:   domain.Location{Name: "London", Lat: 51.5074, Lng: -0.1278},
	})
	require.NoError(t, err)
	stay, err := svc.AddAccommodation(context.Background(), it.ID, domain.AccommodationInput{
		Name:     "Hotel",
		CheckIn:  it.StartDate,
		CheckOut: it.EndDate,
	})
	require.NoError(t, err)

	total, err := svc.RecalculateFootprint(context.Background(), it.ID)
	require.NoError(t, err)
	assert.InDelta(t, leg.CarbonFootprint+stay.CarbonFootprint, total, 1e-9)
	assert.Equal(t, total, r.stored.TotalCarbonFootprint)

	require.NoError(t, svc.RemoveTransportation(context.Background(), it.ID, leg.ID))
	require.NoError(t, svc.RemoveAccommodation(context.Background(), it.ID, stay.ID))
	assert.Zero(t, r.stored.TotalCarbonFootprint)

	err = svc.RemoveAccommodation(context.Background(), it.ID, stay.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItineraryService_Budget(t *testing.T) {
	it := storedTrip(t)
	r := newMemRepo(it)
	svc := service.NewItineraryService(r, planner.New(), discardLogger())

	b, err := svc.UpdateBudgetCategory(context.Background(), it.ID, budget.CategoryFood, 90)
	require.NoError(t, err)
	assert.Equal(t, 90.0, b.Food)
	assert.Equal(t, 90.0, r.stored.Preferences.Budget.Food)

	b, err = svc.SetDailyLimit(context.Background(), it.ID, 45)
	require.NoError(t, err)
	assert.True(t, b.DailyLimitLocked)

	b, err = svc.SetBudgetTotal(context.Background(), it.ID, 900)
	require.NoError(t, err)
	assert.Equal(t, 45.0, *b.DailyLimit)

	b, err = svc.UnlockDailyLimit(context.Background(), it.ID)
	require.NoError(t, err)
	assert.False(t, b.DailyLimitLocked)
	assert.Equal(t, 300.0, *b.DailyLimit)
}

func TestItineraryService_Days(t *testing.T) {
	it := storedTrip(t)
	r := newMemRepo(it)
	svc := service.NewItineraryService(r, planner.New(), discardLogger())

	day, err := svc.AddDay(context.Background(), it.ID, it.EndDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, r.stored.Days, 4)
	assert.Equal(t, day.Date, r.stored.EndDate)

	require.NoError(t, svc.RemoveDay(context.Background(), it.ID, r.stored.Days[0].ID))
	assert.Len(t, r.stored.Days, 3)
	assert.Equal(t, "2025-06-02", r.stored.StartDate.Format(domain.DateLayout))
}
