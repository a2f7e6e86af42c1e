package planner

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/budget"
	"github.com/pkordes/tripplanner/internal/carbon"
	"github.com/pkordes/tripplanner/internal/domain"
)

// Validate checks the structural invariants of an itinerary loaded from a
// store: one day per date in [StartDate, EndDate] in ascending order, unique
// ids, valid activity windows and enums, and non-negative amounts.
// Derived fields are not checked here; see Reconcile.
func Validate(it domain.Itinerary) error {
	if strings.TrimSpace(it.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	n, err := budget.TripDurationDays(it.StartDate, it.EndDate)
	if err != nil {
		return err
	}
	if len(it.Days) != n {
		return fmt.Errorf("%w: itinerary has %d days, date range needs %d", domain.ErrValidation, len(it.Days), n)
	}

	seen := make(map[uuid.UUID]bool)
	unique := func(kind string, id uuid.UUID) error {
		if seen[id] {
			return fmt.Errorf("%w: duplicate %s id %s", domain.ErrValidation, kind, id)
		}
		seen[id] = true
		return nil
	}

	start := domain.NormalizeDate(it.StartDate)
	for i, d := range it.Days {
		want := start.AddDate(0, 0, i)
		if !domain.NormalizeDate(d.Date).Equal(want) {
			return fmt.Errorf("%w: day %d is %s, want %s", domain.ErrValidation, i,
				d.Date.Format(domain.DateLayout), want.Format(domain.DateLayout))
		}
		if err := unique("day", d.ID); err != nil {
			return err
		}
		for _, a := range d.Activities {
			if err := unique("activity", a.ID); err != nil {
				return err
			}
			if !a.Type.Valid() {
				return fmt.Errorf("%w: activity %s has unknown type %q", domain.ErrValidation, a.ID, a.Type)
			}
			if !a.Start.Before(a.End) {
				return fmt.Errorf("%w: activity %s ends before it starts", domain.ErrValidation, a.ID)
			}
			if err := checkCost(a.Cost); err != nil {
				return err
			}
		}
	}
	for _, a := range it.Accommodations {
		if err := unique("accommodation", a.ID); err != nil {
			return err
		}
		if err := checkCost(a.Cost); err != nil {
			return err
		}
		if a.CheckOut.Before(a.CheckIn) {
			return fmt.Errorf("%w: accommodation %s checks out before check-in", domain.ErrValidation, a.ID)
		}
	}
	for _, t := range it.Transportations {
		if err := unique("transportation", t.ID); err != nil {
			return err
		}
		if _, ok := carbon.TransportFactor(t.Mode); !ok {
			return fmt.Errorf("%w: transportation %s has unknown mode %q", domain.ErrValidation, t.ID, t.Mode)
		}
		if err := checkCost(t.Cost); err != nil {
			return err
		}
	}
	if pace := it.Preferences.Pace; pace != "" && !pace.Valid() {
		return fmt.Errorf("%w: unknown pace %q", domain.ErrValidation, pace)
	}
	return budget.Validate(it.Preferences.Budget)
}

// Reconcile recomputes every derived field of a valid itinerary: entity
// footprints, transportation distances, the daily limit (unless locked),
// day totals, over-budget flags and the trip footprint. It reports whether
// anything had drifted from its stored value. On error it is unchanged.
func Reconcile(it *domain.Itinerary) (bool, error) {
	before := clone(*it)
	err := apply(it, func(w *domain.Itinerary) error {
		for i := range w.Days {
			for j := range w.Days[i].Activities {
				a := &w.Days[i].Activities[j]
				kg, err := carbon.ActivityWindowEmissions(a.Type, a.Start, a.End)
				if err != nil {
					return err
				}
				a.CarbonFootprint = kg
			}
		}
		for i := range w.Accommodations {
			a := &w.Accommodations[i]
			if a.Class == "" {
				a.Class = domain.AccommodationHotel
			}
			nights, err := carbon.Nights(a.CheckIn, a.CheckOut)
			if err != nil {
				return err
			}
			if a.CarbonFootprint, err = carbon.AccommodationEmissions(a.Class, nights); err != nil {
				return err
			}
		}
		for i := range w.Transportations {
			t := &w.Transportations[i]
			km, kg, err := carbon.LegEmissions(t.Mode, t.From, t.To)
			if err != nil {
				return err
			}
			t.DistanceKm, t.CarbonFootprint = km, kg
		}
		return rederive(w)
	})
	if err != nil {
		return false, err
	}
	return !reflect.DeepEqual(before, *it), nil
}
