package planner

import (
	"github.com/pkordes/tripplanner/internal/budget"
	"github.com/pkordes/tripplanner/internal/domain"
)

// UpdateBudgetCategory sets one breakdown line. Total becomes the sum of the
// breakdown and the daily limit is re-derived for the current trip length
// unless it is locked. Every day's over-budget flag is refreshed.
func (p *Planner) UpdateBudgetCategory(it *domain.Itinerary, c budget.Category, value float64) (domain.Budget, error) {
	return updateBudget(it, func(b domain.Budget, days int) (domain.Budget, error) {
		return budget.SetCategory(b, c, value, days)
	})
}

// SetBudgetTotal replaces the total without touching the breakdown.
func (p *Planner) SetBudgetTotal(it *domain.Itinerary, total float64) (domain.Budget, error) {
	return updateBudget(it, func(b domain.Budget, days int) (domain.Budget, error) {
		return budget.SetTotal(b, total, days)
	})
}

// SetDailyLimit pins a custom daily limit. It survives later changes to the
// total or the trip dates until UnlockDailyLimit is called.
func (p *Planner) SetDailyLimit(it *domain.Itinerary, amount float64) (domain.Budget, error) {
	return updateBudget(it, func(b domain.Budget, _ int) (domain.Budget, error) {
		return budget.Lock(b, amount)
	})
}

// UnlockDailyLimit releases a pinned daily limit and derives it again.
func (p *Planner) UnlockDailyLimit(it *domain.Itinerary) (domain.Budget, error) {
	return updateBudget(it, budget.Unlock)
}

// UpdatePreferences replaces tags, pace and budget. The incoming budget is
// validated and its daily limit derived unless it arrives locked. A limit
// already pinned on the itinerary is kept when the incoming budget does not
// carry its own lock.
func (p *Planner) UpdatePreferences(it *domain.Itinerary, prefs domain.TripPreferences) (domain.TripPreferences, error) {
	err := apply(it, func(w *domain.Itinerary) error {
		if cur := w.Preferences.Budget; cur.DailyLimitLocked && cur.DailyLimit != nil && !prefs.Budget.DailyLimitLocked {
			limit := *cur.DailyLimit
			prefs.Budget.DailyLimit = &limit
			prefs.Budget.DailyLimitLocked = true
		}
		np, err := normalizePreferences(prefs, len(w.Days))
		if err != nil {
			return err
		}
		w.Preferences = np
		return nil
	})
	if err != nil {
		return domain.TripPreferences{}, err
	}
	return it.Preferences, nil
}

func updateBudget(it *domain.Itinerary, fn func(domain.Budget, int) (domain.Budget, error)) (domain.Budget, error) {
	err := apply(it, func(w *domain.Itinerary) error {
		b, err := fn(w.Preferences.Budget, len(w.Days))
		if err != nil {
			return err
		}
		w.Preferences.Budget = b
		return nil
	})
	if err != nil {
		return domain.Budget{}, err
	}
	return it.Preferences.Budget, nil
}
