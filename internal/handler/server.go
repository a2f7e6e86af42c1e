// Package handler implements the HTTP surface of the trip planner.
// All handlers are methods on Server; Handler mounts them on a chi router.
// Methods are split into domain-specific files (itinerary.go, activity.go,
// etc.) but all share the same Server struct so they can access its
// dependencies.
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/budget"
	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/gateway"
	"github.com/pkordes/tripplanner/internal/planner"
)

// ItineraryServicer defines the itinerary operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the store or the service layer.
type ItineraryServicer interface {
	Create(ctx context.Context, in planner.CreateInput) (domain.Itinerary, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddActivity(ctx context.Context, id, dayID uuid.UUID, in domain.ActivityInput) (planner.ActivityResult, error)
	UpdateActivity(ctx context.Context, id, dayID, activityID uuid.UUID, in domain.ActivityInput) (planner.ActivityResult, error)
	RemoveActivity(ctx context.Context, id, dayID, activityID uuid.UUID) (domain.Day, error)
	MoveActivity(ctx context.Context, id, fromDayID, activityID, toDayID uuid.UUID) (planner.ActivityResult, error)
	ReorderActivities(ctx context.Context, id, dayID uuid.UUID, order []uuid.UUID) (domain.Day, error)
	ListActivities(ctx context.Context, id, dayID uuid.UUID) ([]domain.Activity, error)

	AddAccommodation(ctx context.Context, id uuid.UUID, in domain.AccommodationInput) (domain.Accommodation, error)
	UpdateAccommodation(ctx context.Context, id, accommodationID uuid.UUID, in domain.AccommodationInput) (domain.Accommodation, error)
	RemoveAccommodation(ctx context.Context, id, accommodationID uuid.UUID) error
	AddTransportation(ctx context.Context, id uuid.UUID, in domain.TransportationInput) (domain.Transportation, error)
	UpdateTransportation(ctx context.Context, id, transportationID uuid.UUID, in domain.TransportationInput) (domain.Transportation, error)
	RemoveTransportation(ctx context.Context, id, transportationID uuid.UUID) error

	RecalculateFootprint(ctx context.Context, id uuid.UUID) (float64, error)
	UpdateBudgetCategory(ctx context.Context, id uuid.UUID, c budget.Category, value float64) (domain.Budget, error)
	SetBudgetTotal(ctx context.Context, id uuid.UUID, total float64) (domain.Budget, error)
	SetDailyLimit(ctx context.Context, id uuid.UUID, amount float64) (domain.Budget, error)
	UnlockDailyLimit(ctx context.Context, id uuid.UUID) (domain.Budget, error)
	UpdatePreferences(ctx context.Context, id uuid.UUID, prefs domain.TripPreferences) (domain.TripPreferences, error)

	AddDay(ctx context.Context, id uuid.UUID, date time.Time) (domain.Day, error)
	RemoveDay(ctx context.Context, id, dayID uuid.UUID) error
}

// SuggestionServicer defines the suggestion and weather operations.
type SuggestionServicer interface {
	Suggest(ctx context.Context, q gateway.Query) []domain.SuggestedActivity
	SuggestForItinerary(ctx context.Context, id uuid.UUID) ([]domain.SuggestedActivity, error)
	Forecast(ctx context.Context, lat, lng float64, date time.Time) (domain.Forecast, bool)
	WeatherWarnings(ctx context.Context, id uuid.UUID) ([]domain.WeatherWarning, error)
}

// ExportServicer defines the operations the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	itineraries ItineraryServicer
	suggestions SuggestionServicer
	export      ExportServicer
	logger      *slog.Logger
	now         func() time.Time
}

// NewServer constructs the Server with all its dependencies. A nil logger
// discards handler logs.
func NewServer(itineraries ItineraryServicer, suggestions SuggestionServicer, export ExportServicer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Server{
		itineraries: itineraries,
		suggestions: suggestions,
		export:      export,
		logger:      logger,
		now:         time.Now,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil)
}

// Handler mounts every route of s on a new chi router. Cross-cutting
// middleware (request id, logging, CORS, limits) is applied by the caller.
func Handler(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/suggestions", s.GetSuggestions)
	r.Get("/weather", s.GetWeather)

	r.Route("/itineraries", func(r chi.Router) {
		r.Post("/", s.CreateItinerary)
		r.Get("/", s.ListItineraries)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetItinerary)
			r.Delete("/", s.DeleteItinerary)

			r.Post("/footprint", s.RecalculateFootprint)
			r.Get("/export", s.ExportItinerary)
			r.Get("/suggestions", s.SuggestForItinerary)
			r.Get("/weather-warnings", s.GetWeatherWarnings)

			r.Put("/preferences", s.UpdatePreferences)
			r.Put("/budget", s.SetBudgetTotal)
			r.Put("/budget/daily-limit", s.SetDailyLimit)
			r.Delete("/budget/daily-limit", s.UnlockDailyLimit)
			r.Put("/budget/{category}", s.UpdateBudgetCategory)

			r.Post("/days", s.AddDay)
			r.Delete("/days/{dayId}", s.RemoveDay)
			r.Get("/days/{dayId}/activities", s.ListActivities)
			r.Post("/days/{dayId}/activities", s.AddActivity)
			r.Put("/days/{dayId}/activities/order", s.ReorderActivities)
			r.Put("/days/{dayId}/activities/{activityId}", s.UpdateActivity)
			r.Delete("/days/{dayId}/activities/{activityId}", s.RemoveActivity)
			r.Post("/days/{dayId}/activities/{activityId}/move", s.MoveActivity)

			r.Post("/accommodations", s.AddAccommodation)
			r.Put("/accommodations/{accommodationId}", s.UpdateAccommodation)
			r.Delete("/accommodations/{accommodationId}", s.RemoveAccommodation)

			r.Post("/transportations", s.AddTransportation)
			r.Put("/transportations/{transportationId}", s.UpdateTransportation)
			r.Delete("/transportations/{transportationId}", s.RemoveTransportation)
		})
	})

	return r
}
