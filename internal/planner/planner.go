// Package planner owns every mutation of an itinerary and keeps its derived
// fields consistent: day totals, over-budget flags, per-entity carbon
// footprints and the trip-level footprint.
//
// Commands are pure and in-memory. Each one works on a deep copy and only
// replaces the caller's itinerary when every step succeeded, so a failed
// command leaves the aggregate exactly as it was.
package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/budget"
	"github.com/pkordes/tripplanner/internal/domain"
)

// Planner issues itinerary commands. The zero value is not usable; call New.
type Planner struct {
	newID func() uuid.UUID
}

// New returns a Planner that assigns random UUIDs.
func New() *Planner {
	return &Planner{newID: uuid.New}
}

// NewWithIDs returns a Planner that takes fresh identities from ids.
// Tests use it to get predictable ids.
func NewWithIDs(ids func() uuid.UUID) *Planner {
	return &Planner{newID: ids}
}

// CreateInput is the header of a new trip.
type CreateInput struct {
	Title       string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Preferences domain.TripPreferences
}

// Create builds a new itinerary with one empty Day per date in
// [StartDate, EndDate] and derives the initial daily limit.
func (p *Planner) Create(in CreateInput) (domain.Itinerary, error) {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Itinerary{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Destination) == "" {
		return domain.Itinerary{}, fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	start := domain.NormalizeDate(in.StartDate)
	end := domain.NormalizeDate(in.EndDate)
	n, err := budget.TripDurationDays(start, end)
	if err != nil {
		return domain.Itinerary{}, err
	}
	prefs, err := normalizePreferences(in.Preferences, n)
	if err != nil {
		return domain.Itinerary{}, err
	}

	it := domain.Itinerary{
		ID:              p.newID(),
		Title:           strings.TrimSpace(in.Title),
		Destination:     strings.TrimSpace(in.Destination),
		StartDate:       start,
		EndDate:         end,
		Days:            make([]domain.Day, 0, n),
		Accommodations:  []domain.Accommodation{},
		Transportations: []domain.Transportation{},
		Preferences:     prefs,
	}
	for i := 0; i < n; i++ {
		it.Days = append(it.Days, p.newDay(start.AddDate(0, 0, i)))
	}
	recomputeDays(&it)
	CalculateTotalCarbonFootprint(&it)
	return it, nil
}

// CalculateTotalCarbonFootprint sums the stored footprint of every activity,
// accommodation and transportation leg, stores the result on the itinerary
// and returns it. Calling it again without a mutation in between yields the
// same value.
func CalculateTotalCarbonFootprint(it *domain.Itinerary) float64 {
	var total float64
	for _, d := range it.Days {
		for _, a := range d.Activities {
			total += a.CarbonFootprint
		}
	}
	for _, a := range it.Accommodations {
		total += a.CarbonFootprint
	}
	for _, t := range it.Transportations {
		total += t.CarbonFootprint
	}
	it.TotalCarbonFootprint = total
	return total
}

func (p *Planner) newDay(date time.Time) domain.Day {
	return domain.Day{
		ID:         p.newID(),
		Date:       domain.NormalizeDate(date),
		Activities: []domain.Activity{},
	}
}

// apply runs fn against a deep copy of it and commits the copy only when fn
// succeeds. Derived fields are recomputed before the commit.
func apply(it *domain.Itinerary, fn func(w *domain.Itinerary) error) error {
	w := clone(*it)
	if err := fn(&w); err != nil {
		return err
	}
	recomputeDays(&w)
	CalculateTotalCarbonFootprint(&w)
	*it = w
	return nil
}

// recomputeDays refreshes TotalCost and IsOverBudget on every day.
func recomputeDays(it *domain.Itinerary) {
	ceiling := budget.DailyCeiling(it.Preferences.Budget, len(it.Days))
	for i := range it.Days {
		recomputeDay(&it.Days[i], ceiling)
	}
}

func recomputeDay(d *domain.Day, ceiling float64) {
	var total float64
	for _, a := range d.Activities {
		total += a.Cost
	}
	d.TotalCost = total
	d.IsOverBudget = total > ceiling
}

func clone(it domain.Itinerary) domain.Itinerary {
	out := it
	out.Days = cloneSlice(it.Days)
	for i := range out.Days {
		out.Days[i].Activities = cloneSlice(out.Days[i].Activities)
	}
	out.Accommodations = cloneSlice(it.Accommodations)
	out.Transportations = cloneSlice(it.Transportations)
	out.Preferences.Preferences = cloneSlice(it.Preferences.Preferences)
	if it.Preferences.Budget.DailyLimit != nil {
		v := *it.Preferences.Budget.DailyLimit
		out.Preferences.Budget.DailyLimit = &v
	}
	return out
}

// cloneSlice copies s, keeping nil and empty distinct.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

// normalizePreferences validates tags, pace and budget and derives the daily
// limit for a trip of days days. An empty pace defaults to moderate.
func normalizePreferences(in domain.TripPreferences, days int) (domain.TripPreferences, error) {
	out := in
	out.Preferences = domain.NormalizePreferences(in.Preferences)
	for _, p := range out.Preferences {
		if !p.Valid() {
			return domain.TripPreferences{}, fmt.Errorf("%w: unknown travel preference %q", domain.ErrValidation, p)
		}
	}
	if out.Pace == "" {
		out.Pace = domain.PaceModerate
	}
	if !out.Pace.Valid() {
		return domain.TripPreferences{}, fmt.Errorf("%w: unknown pace %q", domain.ErrValidation, out.Pace)
	}
	out.Budget.Currency = strings.ToUpper(strings.TrimSpace(out.Budget.Currency))
	if in.Budget.DailyLimit != nil {
		v := *in.Budget.DailyLimit
		out.Budget.DailyLimit = &v
	}
	if err := budget.Validate(out.Budget); err != nil {
		return domain.TripPreferences{}, err
	}
	b, err := budget.Derive(out.Budget, days)
	if err != nil {
		return domain.TripPreferences{}, err
	}
	out.Budget = b
	return out, nil
}

func dayNotFound(id uuid.UUID) error {
	return fmt.Errorf("%w: day %s", domain.ErrNotFound, id)
}
