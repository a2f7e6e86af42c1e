package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/gateway"
	"github.com/pkordes/tripplanner/internal/repo"
)

// maxForecastLookups bounds concurrent weather calls per request.
const maxForecastLookups = 4

// Suggester produces activity suggestions. *gateway.Chain satisfies it.
type Suggester interface {
	Suggest(ctx context.Context, q gateway.Query) []domain.SuggestedActivity
}

// SuggestionService answers suggestion and weather queries. Gateway failures
// are logged and degrade to empty results; they are never returned.
type SuggestionService struct {
	suggester Suggester
	weather   gateway.WeatherSource
	repo      repo.ItineraryRepo
	logger    *slog.Logger
}

// NewSuggestionService constructs a SuggestionService. weather may be nil,
// in which case no forecasts are available.
func NewSuggestionService(s Suggester, weather gateway.WeatherSource, r repo.ItineraryRepo, logger *slog.Logger) *SuggestionService {
	return &SuggestionService{suggester: s, weather: weather, repo: r, logger: logger}
}

// Suggest returns activity suggestions for q. It never fails.
func (s *SuggestionService) Suggest(ctx context.Context, q gateway.Query) []domain.SuggestedActivity {
	return s.suggester.Suggest(ctx, q)
}

// SuggestForItinerary returns suggestions for the itinerary's destination,
// priced in its budget currency.
func (s *SuggestionService) SuggestForItinerary(ctx context.Context, id uuid.UUID) ([]domain.SuggestedActivity, error) {
	it, err := load(ctx, s.repo, s.logger, id)
	if err != nil {
		return nil, fmt.Errorf("service.SuggestionService.SuggestForItinerary: %w", err)
	}
	q := gateway.Query{Destination: it.Destination, Currency: it.Preferences.Budget.Currency}
	if loc, ok := firstLocated(it); ok {
		q.Lat, q.Lng, q.HasCoords = loc.Lat, loc.Lng, true
	}
	return s.suggester.Suggest(ctx, q), nil
}

// Forecast returns the weather at a coordinate on a date. The boolean is
// false when no forecast could be obtained.
func (s *SuggestionService) Forecast(ctx context.Context, lat, lng float64, date time.Time) (domain.Forecast, bool) {
	if s.weather == nil {
		return domain.Forecast{}, false
	}
	f, err := s.weather.WeatherForDate(ctx, lat, lng, date)
	if err != nil {
		s.logger.WarnContext(ctx, "weather lookup failed",
			slog.String("date", date.Format(domain.DateLayout)),
			slog.String("error", err.Error()),
		)
		return domain.Forecast{}, false
	}
	return f, true
}

// WeatherWarnings lists weather-sensitive activities scheduled on days whose
// forecast is disruptive. Each distinct (date, location) is looked up once;
// lookups that fail are skipped. Results follow day then activity order.
func (s *SuggestionService) WeatherWarnings(ctx context.Context, id uuid.UUID) ([]domain.WeatherWarning, error) {
	it, err := load(ctx, s.repo, s.logger, id)
	if err != nil {
		return nil, fmt.Errorf("service.SuggestionService.WeatherWarnings: %w", err)
	}

	type spot struct {
		date     string
		lat, lng float64
	}
	type candidate struct {
		day domain.Day
		act domain.Activity
		at  spot
	}
	var candidates []candidate
	spots := map[spot]struct{}{}
	for _, d := range it.Days {
		for _, a := range d.Activities {
			if !a.WeatherSensitive {
				continue
			}
			at := spot{date: d.Date.Format(domain.DateLayout), lat: a.Location.Lat, lng: a.Location.Lng}
			candidates = append(candidates, candidate{day: d, act: a, at: at})
			spots[at] = struct{}{}
		}
	}

	var (
		mu    sync.Mutex
		found = make(map[spot]domain.Forecast, len(spots))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxForecastLookups)
	for at := range spots {
		date, _ := domain.ParseDate(at.date)
		g.Go(func() error {
			f, ok := s.Forecast(gctx, at.lat, at.lng, date)
			if ok {
				mu.Lock()
				found[at] = f
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	warnings := []domain.WeatherWarning{}
	for _, c := range candidates {
		f, ok := found[c.at]
		if !ok || !f.Condition.Disruptive() {
			continue
		}
		warnings = append(warnings, domain.WeatherWarning{
			DayID:      c.day.ID.String(),
			Date:       c.day.Date,
			ActivityID: c.act.ID.String(),
			Title:      c.act.Title,
			Condition:  f.Condition,
		})
	}
	return warnings, nil
}

// firstLocated returns the first activity or accommodation location with
// non-zero coordinates.
func firstLocated(it domain.Itinerary) (domain.Location, bool) {
	for _, d := range it.Days {
		for _, a := range d.Activities {
			if a.Location.Lat != 0 || a.Location.Lng != 0 {
				return a.Location, true
			}
		}
	}
	for _, a := range it.Accommodations {
		if a.Location.Lat != 0 || a.Location.Lng != 0 {
			return a.Location, true
		}
	}
	return domain.Location{}, false
}
