package planner

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/budget"
	"github.com/pkordes/tripplanner/internal/domain"
)

// AddDay extends the trip by one day. date must be the day after EndDate or
// the day before StartDate so the days keep spanning the range without gaps.
func (p *Planner) AddDay(it *domain.Itinerary, date time.Time) (domain.Day, error) {
	date = domain.NormalizeDate(date)
	d := p.newDay(date)
	err := apply(it, func(w *domain.Itinerary) error {
		switch {
		case date.Equal(w.EndDate.AddDate(0, 0, 1)):
			w.Days = append(w.Days, d)
			w.EndDate = date
		case date.Equal(w.StartDate.AddDate(0, 0, -1)):
			w.Days = append([]domain.Day{d}, w.Days...)
			w.StartDate = date
		default:
			return fmt.Errorf("%w: a new day must be %s or %s", domain.ErrValidation,
				w.StartDate.AddDate(0, 0, -1).Format(domain.DateLayout),
				w.EndDate.AddDate(0, 0, 1).Format(domain.DateLayout))
		}
		return rederive(w)
	})
	if err != nil {
		return domain.Day{}, err
	}
	return dayCopy(it.DayByID(d.ID)), nil
}

// RemoveDay drops the first or last day of the trip together with its
// activities. Days in the middle cannot be removed, and neither can the
// only remaining day.
func (p *Planner) RemoveDay(it *domain.Itinerary, dayID uuid.UUID) error {
	return apply(it, func(w *domain.Itinerary) error {
		i := indexOf(w.Days, func(d domain.Day) bool { return d.ID == dayID })
		if i < 0 {
			return dayNotFound(dayID)
		}
		if len(w.Days) == 1 {
			return fmt.Errorf("%w: cannot remove the only day of a trip", domain.ErrValidation)
		}
		switch i {
		case 0:
			w.Days = w.Days[1:]
			w.StartDate = w.Days[0].Date
		case len(w.Days) - 1:
			w.Days = w.Days[:i]
			w.EndDate = w.Days[i-1].Date
		default:
			return fmt.Errorf("%w: only the first or last day can be removed", domain.ErrValidation)
		}
		return rederive(w)
	})
}

// rederive refreshes the daily limit after the trip length changed.
func rederive(w *domain.Itinerary) error {
	b, err := budget.Derive(w.Preferences.Budget, len(w.Days))
	if err != nil {
		return err
	}
	w.Preferences.Budget = b
	return nil
}
