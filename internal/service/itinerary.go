// Package service orchestrates the trip planner. Services load an itinerary
// from the store, re-check it, run one planner command and save the result.
// No SQL and no business rules live here: rules belong to the planner, and
// services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/budget"
	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/planner"
	"github.com/pkordes/tripplanner/internal/repo"
)

// ItineraryService exposes every itinerary command against the store.
type ItineraryService struct {
	repo    repo.ItineraryRepo
	planner *planner.Planner
	logger  *slog.Logger
}

// NewItineraryService constructs an ItineraryService backed by r.
func NewItineraryService(r repo.ItineraryRepo, p *planner.Planner, logger *slog.Logger) *ItineraryService {
	return &ItineraryService{repo: r, planner: p, logger: logger}
}

// Create builds a new itinerary and stores it.
func (s *ItineraryService) Create(ctx context.Context, in planner.CreateInput) (domain.Itinerary, error) {
	it, err := s.planner.Create(in)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}
	stored, err := s.repo.Put(ctx, it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}
	return stored, nil
}

// Get returns a checked itinerary by id.
func (s *ItineraryService) Get(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	it, err := load(ctx, s.repo, s.logger, id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Get: %w", err)
	}
	return it, nil
}

// List returns one page of itineraries and the total count. Stored documents
// are returned as they are; Get performs the full check.
func (s *ItineraryService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	its, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ItineraryService.List: %w", err)
	}
	return its, total, nil
}

// Delete removes an itinerary.
func (s *ItineraryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	return nil
}

// ---- activities ------------------------------------------------------------

// AddActivity schedules a new activity on a day.
func (s *ItineraryService) AddActivity(ctx context.Context, id, dayID uuid.UUID, in domain.ActivityInput) (planner.ActivityResult, error) {
	return mutate(ctx, s, "AddActivity", id, func(it *domain.Itinerary) (planner.ActivityResult, error) {
		return s.planner.AddActivity(it, dayID, in)
	})
}

// UpdateActivity replaces the fields of an existing activity.
func (s *ItineraryService) UpdateActivity(ctx context.Context, id, dayID, activityID uuid.UUID, in domain.ActivityInput) (planner.ActivityResult, error) {
	return mutate(ctx, s, "UpdateActivity", id, func(it *domain.Itinerary) (planner.ActivityResult, error) {
		return s.planner.UpdateActivity(it, dayID, activityID, in)
	})
}

// RemoveActivity deletes an activity and returns the recomputed day.
func (s *ItineraryService) RemoveActivity(ctx context.Context, id, dayID, activityID uuid.UUID) (domain.Day, error) {
	return mutate(ctx, s, "RemoveActivity", id, func(it *domain.Itinerary) (domain.Day, error) {
		return s.planner.RemoveActivity(it, dayID, activityID)
	})
}

// MoveActivity moves an activity to the end of another day.
func (s *ItineraryService) MoveActivity(ctx context.Context, id, fromDayID, activityID, toDayID uuid.UUID) (planner.ActivityResult, error) {
	return mutate(ctx, s, "MoveActivity", id, func(it *domain.Itinerary) (planner.ActivityResult, error) {
		return s.planner.MoveActivity(it, fromDayID, activityID, toDayID)
	})
}

// ReorderActivities sets the stored order of a day's activities.
func (s *ItineraryService) ReorderActivities(ctx context.Context, id, dayID uuid.UUID, order []uuid.UUID) (domain.Day, error) {
	return mutate(ctx, s, "ReorderActivities", id, func(it *domain.Itinerary) (domain.Day, error) {
		return s.planner.ReorderActivities(it, dayID, order)
	})
}

// ListActivities returns a day's activities ordered by start time.
func (s *ItineraryService) ListActivities(ctx context.Context, id, dayID uuid.UUID) ([]domain.Activity, error) {
	it, err := load(ctx, s.repo, s.logger, id)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ListActivities: %w", err)
	}
	d := it.DayByID(dayID)
	if d == nil {
		return nil, fmt.Errorf("service.ItineraryService.ListActivities: day %s: %w", dayID, domain.ErrNotFound)
	}
	return planner.ActivitiesByStartTime(*d), nil
}

// ---- lodging and transport -------------------------------------------------

// AddAccommodation records a lodging stay.
func (s *ItineraryService) AddAccommodation(ctx context.Context, id uuid.UUID, in domain.AccommodationInput) (domain.Accommodation, error) {
	return mutate(ctx, s, "AddAccommodation", id, func(it *domain.Itinerary) (domain.Accommodation, error) {
		return s.planner.AddAccommodation(it, in)
	})
}

// UpdateAccommodation replaces the fields of a stay.
func (s *ItineraryService) UpdateAccommodation(ctx context.Context, id, accommodationID uuid.UUID, in domain.AccommodationInput) (domain.Accommodation, error) {
	return mutate(ctx, s, "UpdateAccommodation", id, func(it *domain.Itinerary) (domain.Accommodation, error) {
		return s.planner.UpdateAccommodation(it, accommodationID, in)
	})
}

// RemoveAccommodation deletes a stay.
func (s *ItineraryService) RemoveAccommodation(ctx context.Context, id, accommodationID uuid.UUID) error {
	_, err := mutate(ctx, s, "RemoveAccommodation", id, func(it *domain.Itinerary) (struct{}, error) {
		return struct{}{}, s.planner.RemoveAccommodation(it, accommodationID)
	})
	return err
}

// AddTransportation records a transportation leg.
func (s *ItineraryService) AddTransportation(ctx context.Context, id uuid.UUID, in domain.TransportationInput) (domain.Transportation, error) {
	return mutate(ctx, s, "AddTransportation", id, func(it *domain.Itinerary) (domain.Transportation, error) {
		return s.planner.AddTransportation(it, in)
	})
}

// UpdateTransportation replaces the fields of a leg.
func (s *ItineraryService) UpdateTransportation(ctx context.Context, id, transportationID uuid.UUID, in domain.TransportationInput) (domain.Transportation, error) {
	return mutate(ctx, s, "UpdateTransportation", id, func(it *domain.Itinerary) (domain.Transportation, error) {
		return s.planner.UpdateTransportation(it, transportationID, in)
	})
}

// RemoveTransportation deletes a leg.
func (s *ItineraryService) RemoveTransportation(ctx context.Context, id, transportationID uuid.UUID) error {
	_, err := mutate(ctx, s, "RemoveTransportation", id, func(it *domain.Itinerary) (struct{}, error) {
		return struct{}{}, s.planner.RemoveTransportation(it, transportationID)
	})
	return err
}

// ---- footprint, budget, preferences ----------------------------------------

// RecalculateFootprint recomputes and stores the trip footprint in kg CO2.
func (s *ItineraryService) RecalculateFootprint(ctx context.Context, id uuid.UUID) (float64, error) {
	return mutate(ctx, s, "RecalculateFootprint", id, func(it *domain.Itinerary) (float64, error) {
		return planner.CalculateTotalCarbonFootprint(it), nil
	})
}

// UpdateBudgetCategory sets one budget category.
func (s *ItineraryService) UpdateBudgetCategory(ctx context.Context, id uuid.UUID, c budget.Category, value float64) (domain.Budget, error) {
	return mutate(ctx, s, "UpdateBudgetCategory", id, func(it *domain.Itinerary) (domain.Budget, error) {
		return s.planner.UpdateBudgetCategory(it, c, value)
	})
}

// SetBudgetTotal sets the budget total directly.
func (s *ItineraryService) SetBudgetTotal(ctx context.Context, id uuid.UUID, total float64) (domain.Budget, error) {
	return mutate(ctx, s, "SetBudgetTotal", id, func(it *domain.Itinerary) (domain.Budget, error) {
		return s.planner.SetBudgetTotal(it, total)
	})
}

// SetDailyLimit pins a custom daily limit.
func (s *ItineraryService) SetDailyLimit(ctx context.Context, id uuid.UUID, amount float64) (domain.Budget, error) {
	return mutate(ctx, s, "SetDailyLimit", id, func(it *domain.Itinerary) (domain.Budget, error) {
		return s.planner.SetDailyLimit(it, amount)
	})
}

// UnlockDailyLimit releases a pinned daily limit.
func (s *ItineraryService) UnlockDailyLimit(ctx context.Context, id uuid.UUID) (domain.Budget, error) {
	return mutate(ctx, s, "UnlockDailyLimit", id, func(it *domain.Itinerary) (domain.Budget, error) {
		return s.planner.UnlockDailyLimit(it)
	})
}

// UpdatePreferences replaces tags, pace and budget.
func (s *ItineraryService) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs domain.TripPreferences) (domain.TripPreferences, error) {
	return mutate(ctx, s, "UpdatePreferences", id, func(it *domain.Itinerary) (domain.TripPreferences, error) {
		return s.planner.UpdatePreferences(it, prefs)
	})
}

// ---- days ------------------------------------------------------------------

// AddDay extends the trip by one day at either end.
func (s *ItineraryService) AddDay(ctx context.Context, id uuid.UUID, date time.Time) (domain.Day, error) {
	return mutate(ctx, s, "AddDay", id, func(it *domain.Itinerary) (domain.Day, error) {
		return s.planner.AddDay(it, date)
	})
}

// RemoveDay shrinks the trip by its first or last day.
func (s *ItineraryService) RemoveDay(ctx context.Context, id, dayID uuid.UUID) error {
	_, err := mutate(ctx, s, "RemoveDay", id, func(it *domain.Itinerary) (struct{}, error) {
		return struct{}{}, s.planner.RemoveDay(it, dayID)
	})
	return err
}

// mutate loads the itinerary, applies fn and stores the result. Nothing is
// written when fn fails.
func mutate[T any](ctx context.Context, s *ItineraryService, op string, id uuid.UUID, fn func(*domain.Itinerary) (T, error)) (T, error) {
	var zero T
	it, err := load(ctx, s.repo, s.logger, id)
	if err != nil {
		return zero, fmt.Errorf("service.ItineraryService.%s: %w", op, err)
	}
	out, err := fn(&it)
	if err != nil {
		return zero, fmt.Errorf("service.ItineraryService.%s: %w", op, err)
	}
	if _, err := s.repo.Put(ctx, it); err != nil {
		return zero, fmt.Errorf("service.ItineraryService.%s: %w", op, err)
	}
	return out, nil
}

// load reads an itinerary and checks it before use. The store is not trusted
// to keep derived fields current, so they are recomputed; drift is logged.
func load(ctx context.Context, r repo.ItineraryRepo, logger *slog.Logger, id uuid.UUID) (domain.Itinerary, error) {
	it, err := r.GetByID(ctx, id)
	if err != nil {
		return domain.Itinerary{}, err
	}
	if err := planner.Validate(it); err != nil {
		return domain.Itinerary{}, fmt.Errorf("stored itinerary %s: %w", id, err)
	}
	changed, err := planner.Reconcile(&it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("stored itinerary %s: %w", id, err)
	}
	if changed {
		logger.WarnContext(ctx, "stored itinerary had stale derived fields",
			slog.String("itinerary_id", id.String()))
	}
	return it, nil
}
