package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/budget"
	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/gateway"
	"github.com/pkordes/tripplanner/internal/handler"
	"github.com/pkordes/tripplanner/internal/planner"
)

// ---- mock ItineraryServicer ------------------------------------------------

// mockItineraries implements handler.ItineraryServicer. Only the function
// fields a test sets may be called; the rest panic on nil.
type mockItineraries struct {
	create               func(ctx context.Context, in planner.CreateInput) (domain.Itinerary, error)
	get                  func(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)
	list                 func(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error)
	deleteFn             func(ctx context.Context, id uuid.UUID) error
	addActivity          func(ctx context.Context, id, dayID uuid.UUID, in domain.ActivityInput) (planner.ActivityResult, error)
	updateActivity       func(ctx context.Context, id, dayID, activityID uuid.UUID, in domain.ActivityInput) (planner.ActivityResult, error)
	removeActivity       func(ctx context.Context, id, dayID, activityID uuid.UUID) (domain.Day, error)
	moveActivity         func(ctx context.Context, id, fromDayID, activityID, toDayID uuid.UUID) (planner.ActivityResult, error)
	reorderActivities    func(ctx context.Context, id, dayID uuid.UUID, order []uuid.UUID) (domain.Day, error)
	listActivities       func(ctx context.Context, id, dayID uuid.UUID) ([]domain.Activity, error)
	addAccommodation     func(ctx context.Context, id uuid.UUID, in domain.AccommodationInput) (domain.Accommodation, error)
	updateAccommodation  func(ctx context.Context, id, accommodationID uuid.UUID, in domain.AccommodationInput) (domain.Accommodation, error)
	removeAccommodation  func(ctx context.Context, id, accommodationID uuid.UUID) error
	addTransportation    func(ctx context.Context, id uuid.UUID, in domain.TransportationInput) (domain.Transportation, error)
	updateTransportation func(ctx context.Context, id, transportationID uuid.UUID, in domain.TransportationInput) (domain.Transportation, error)
	removeTransportation func(ctx context.Context, id, transportationID uuid.UUID) error
	recalculateFootprint func(ctx context.Context, id uuid.UUID) (float64, error)
	updateBudgetCategory func(ctx context.Context, id uuid.UUID, c budget.Category, value float64) (domain.Budget, error)
	setBudgetTotal       func(ctx context.Context, id uuid.UUID, total float64) (domain.Budget, error)
	setDailyLimit        func(ctx context.Context, id uuid.UUID, amount float64) (domain.Budget, error)
	unlockDailyLimit     func(ctx context.Context, id uuid.UUID) (domain.Budget, error)
	updatePreferences    func(ctx context.Context, id uuid.UUID, prefs domain.TripPreferences) (domain.TripPreferences, error)
	addDay               func(ctx context.Context, id uuid.UUID, date time.Time) (domain.Day, error)
	removeDay            func(ctx context.Context, id, dayID uuid.UUID) error
}

func (m *mockItineraries) Create(ctx context.Context, in planner.CreateInput) (domain.Itinerary, error) {
	return m.create(ctx, in)
}
func (m *mockItineraries) Get(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	return m.get(ctx, id)
}
func (m *mockItineraries) List(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	return m.list(ctx, p)
}
func (m *mockItineraries) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}
func (m *mockItineraries) AddActivity(ctx context.Context, id, dayID uuid.UUID, in domain.ActivityInput) (planner.ActivityResult, error) {
	return m.addActivity(ctx, id, dayID, in)
}
func (m *mockItineraries) UpdateActivity(ctx context.Context, id, dayID, activityID uuid.UUID, in domain.ActivityInput) (planner.ActivityResult, error) {
	return m.updateActivity(ctx, id, dayID, activityID, in)
}
func (m *mockItineraries) RemoveActivity(ctx context.Context, id, dayID, activityID uuid.UUID) (domain.Day, error) {
	return m.removeActivity(ctx, id, dayID, activityID)
}
func (m *mockItineraries) MoveActivity(ctx context.Context, id, fromDayID, activityID, toDayID uuid.UUID) (planner.ActivityResult, error) {
	return m.moveActivity(ctx, id, fromDayID, activityID, toDayID)
}
func (m *mockItineraries) ReorderActivities(ctx context.Context, id, dayID uuid.UUID, order []uuid.UUID) (domain.Day, error) {
	return m.reorderActivities(ctx, id, dayID, order)
}
func (m *mockItineraries) ListActivities(ctx context.Context, id, dayID uuid.UUID) ([]domain.Activity, error) {
	return m.listActivities(ctx, id, dayID)
}
func (m *mockItineraries) AddAccommodation(ctx context.Context, id uuid.UUID, in domain.AccommodationInput) (domain.Accommodation, error) {
	return m.addAccommodation(ctx, id, in)
}
func (m *mockItineraries) UpdateAccommodation(ctx context.Context, id, accommodationID uuid.UUID, in domain.AccommodationInput) (domain.Accommodation, error) {
	return m.updateAccommodation(ctx, id, accommodationID, in)
}
func (m *mockItineraries) RemoveAccommodation(ctx context.Context, id, accommodationID uuid.UUID) error {
	return m.removeAccommodation(ctx, id, accommodationID)
}
func (m *mockItineraries) AddTransportation(ctx context.Context, id uuid.UUID, in domain.TransportationInput) (domain.Transportation, error) {
	return m.addTransportation(ctx, id, in)
}
func (m *mockItineraries) UpdateTransportation(ctx context.Context, id, transportationID uuid.UUID, in domain.TransportationInput) (domain.Transportation, error) {
	return m.updateTransportation(ctx, id, transportationID, in)
}
func (m *mockItineraries) RemoveTransportation(ctx context.Context, id, transportationID uuid.UUID) error {
	return m.removeTransportation(ctx, id, transportationID)
}
func (m *mockItineraries) RecalculateFootprint(ctx context.Context, id uuid.UUID) (float64, error) {
	return m.recalculateFootprint(ctx, id)
}
func (m *mockItineraries) UpdateBudgetCategory(ctx context.Context, id uuid.UUID, c budget.Category, value float64) (domain.Budget, error) {
	return m.updateBudgetCategory(ctx, id, c, value)
}
func (m *mockItineraries) SetBudgetTotal(ctx context.Context, id uuid.UUID, total float64) (domain.Budget, error) {
	return m.setBudgetTotal(ctx, id, total)
}
func (m *mockItineraries) SetDailyLimit(ctx context.Context, id uuid.UUID, amount float64) (domain.Budget, error) {
	return m.setDailyLimit(ctx, id, amount)
}
func (m *mockItineraries) UnlockDailyLimit(ctx context.Context, id uuid.UUID) (domain.Budget, error) {
	return m.unlockDailyLimit(ctx, id)
}
func (m *mockItineraries) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs domain.TripPreferences) (domain.TripPreferences, error) {
	return m.updatePreferences(ctx, id, prefs)
}
func (m *mockItineraries) AddDay(ctx context.Context, id uuid.UUID, date time.Time) (domain.Day, error) {
	return m.addDay(ctx, id, date)
}
func (m *mockItineraries) RemoveDay(ctx context.Context, id, dayID uuid.UUID) error {
	return m.removeDay(ctx, id, dayID)
}

var _ handler.ItineraryServicer = (*mockItineraries)(nil)

// ---- mock SuggestionServicer -----------------------------------------------

type mockSuggestions struct {
	suggest             func(ctx context.Context, q gateway.Query) []domain.SuggestedActivity
	suggestForItinerary func(ctx context.Context, id uuid.UUID) ([]domain.SuggestedActivity, error)
	forecast            func(ctx context.Context, lat, lng float64, date time.Time) (domain.Forecast, bool)
	weatherWarnings     func(ctx context.Context, id uuid.UUID) ([]domain.WeatherWarning, error)
}

func (m *mockSuggestions) Suggest(ctx context.Context, q gateway.Query) []domain.SuggestedActivity {
	return m.suggest(ctx, q)
}
func (m *mockSuggestions) SuggestForItinerary(ctx context.Context, id uuid.UUID) ([]domain.SuggestedActivity, error) {
	return m.suggestForItinerary(ctx, id)
}
func (m *mockSuggestions) Forecast(ctx context.Context, lat, lng float64, date time.Time) (domain.Forecast, bool) {
	return m.forecast(ctx, lat, lng, date)
}
func (m *mockSuggestions) WeatherWarnings(ctx context.Context, id uuid.UUID) ([]domain.WeatherWarning, error) {
	return m.weatherWarnings(ctx, id)
}

var _ handler.SuggestionServicer = (*mockSuggestions)(nil)

// ---- mock ExportServicer ---------------------------------------------------

type mockExport struct {
	export func(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExport) Export(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, id)
}

var _ handler.ExportServicer = (*mockExport)(nil)

// ---- helpers ---------------------------------------------------------------

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// newRouter wires a Server with whichever mocks the test provides.
func newRouter(its handler.ItineraryServicer, sugg handler.SuggestionServicer, exp handler.ExportServicer) http.Handler {
	return handler.Handler(handler.NewServer(its, sugg, exp, discardLogger()))
}

func jsonBody(s string) *strings.Reader {
	return strings.NewReader(s)
}

func f64(v float64) *float64 { return &v }
