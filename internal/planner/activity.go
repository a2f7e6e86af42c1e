package planner

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/carbon"
	"github.com/pkordes/tripplanner/internal/domain"
)

// ActivityResult is returned by commands that store an activity: the stored
// activity, the day that now holds it, and that day's over-budget flag.
type ActivityResult struct {
	Activity     domain.Activity
	Day          domain.Day
	IsOverBudget bool
}

// AddActivity appends a new activity to the day identified by dayID.
// The activity gets a fresh id and a footprint computed from its type and
// time window.
func (p *Planner) AddActivity(it *domain.Itinerary, dayID uuid.UUID, in domain.ActivityInput) (ActivityResult, error) {
	a, err := buildActivity(in)
	if err != nil {
		return ActivityResult{}, err
	}
	a.ID = p.newID()

	err = apply(it, func(w *domain.Itinerary) error {
		d := w.DayByID(dayID)
		if d == nil {
			return dayNotFound(dayID)
		}
		d.Activities = append(d.Activities, a)
		return nil
	})
	if err != nil {
		return ActivityResult{}, err
	}
	return activityResult(it, dayID, a.ID), nil
}

// UpdateActivity replaces the caller-supplied fields of an activity in place.
// The id is kept and the footprint is recomputed.
func (p *Planner) UpdateActivity(it *domain.Itinerary, dayID, activityID uuid.UUID, in domain.ActivityInput) (ActivityResult, error) {
	a, err := buildActivity(in)
	if err != nil {
		return ActivityResult{}, err
	}
	a.ID = activityID

	err = apply(it, func(w *domain.Itinerary) error {
		d, i, err := findActivity(w, dayID, activityID)
		if err != nil {
			return err
		}
		d.Activities[i] = a
		return nil
	})
	if err != nil {
		return ActivityResult{}, err
	}
	return activityResult(it, dayID, activityID), nil
}

// RemoveActivity deletes an activity and returns the updated day.
func (p *Planner) RemoveActivity(it *domain.Itinerary, dayID, activityID uuid.UUID) (domain.Day, error) {
	err := apply(it, func(w *domain.Itinerary) error {
		d, i, err := findActivity(w, dayID, activityID)
		if err != nil {
			return err
		}
		d.Activities = append(d.Activities[:i], d.Activities[i+1:]...)
		return nil
	})
	if err != nil {
		return domain.Day{}, err
	}
	return dayCopy(it.DayByID(dayID)), nil
}

// MoveActivity takes an activity off one day and appends it to another.
// Both days are recomputed. Moving onto the same day is a no-op.
func (p *Planner) MoveActivity(it *domain.Itinerary, fromDayID, activityID, toDayID uuid.UUID) (ActivityResult, error) {
	err := apply(it, func(w *domain.Itinerary) error {
		from, i, err := findActivity(w, fromDayID, activityID)
		if err != nil {
			return err
		}
		to := w.DayByID(toDayID)
		if to == nil {
			return dayNotFound(toDayID)
		}
		if from.ID == to.ID {
			return nil
		}
		a := from.Activities[i]
		from.Activities = append(from.Activities[:i], from.Activities[i+1:]...)
		to.Activities = append(to.Activities, a)
		return nil
	})
	if err != nil {
		return ActivityResult{}, err
	}
	return activityResult(it, toDayID, activityID), nil
}

// ReorderActivities sets the stored order of a day's activities. Ids that do
// not belong to the day are ignored; activities not named keep their
// relative order after the named ones.
func (p *Planner) ReorderActivities(it *domain.Itinerary, dayID uuid.UUID, order []uuid.UUID) (domain.Day, error) {
	err := apply(it, func(w *domain.Itinerary) error {
		d := w.DayByID(dayID)
		if d == nil {
			return dayNotFound(dayID)
		}
		placed := make(map[uuid.UUID]bool, len(order))
		out := make([]domain.Activity, 0, len(d.Activities))
		for _, id := range order {
			i := d.ActivityByID(id)
			if i < 0 || placed[id] {
				continue
			}
			placed[id] = true
			out = append(out, d.Activities[i])
		}
		for _, a := range d.Activities {
			if !placed[a.ID] {
				out = append(out, a)
			}
		}
		d.Activities = out
		return nil
	})
	if err != nil {
		return domain.Day{}, err
	}
	return dayCopy(it.DayByID(dayID)), nil
}

// ActivitiesByStartTime returns a copy of the day's activities ordered by
// start time. Activities starting at the same minute keep their stored order.
func ActivitiesByStartTime(d domain.Day) []domain.Activity {
	out := append([]domain.Activity{}, d.Activities...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

func buildActivity(in domain.ActivityInput) (domain.Activity, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Activity{}, fmt.Errorf("%w: activity title is required", domain.ErrValidation)
	}
	if !in.Type.Valid() {
		return domain.Activity{}, fmt.Errorf("%w: unknown activity type %q", domain.ErrValidation, in.Type)
	}
	if err := checkCost(in.Cost); err != nil {
		return domain.Activity{}, err
	}
	kg, err := carbon.ActivityWindowEmissions(in.Type, in.Start, in.End)
	if err != nil {
		return domain.Activity{}, err
	}
	return domain.Activity{
		Title:            title,
		Type:             in.Type,
		Location:         in.Location,
		Start:            in.Start,
		End:              in.End,
		Description:      in.Description,
		Cost:             in.Cost,
		CarbonFootprint:  kg,
		WeatherSensitive: in.WeatherSensitive,
	}, nil
}

func findActivity(it *domain.Itinerary, dayID, activityID uuid.UUID) (*domain.Day, int, error) {
	d := it.DayByID(dayID)
	if d == nil {
		return nil, -1, dayNotFound(dayID)
	}
	i := d.ActivityByID(activityID)
	if i < 0 {
		return nil, -1, fmt.Errorf("%w: activity %s on day %s", domain.ErrNotFound, activityID, dayID)
	}
	return d, i, nil
}

func activityResult(it *domain.Itinerary, dayID, activityID uuid.UUID) ActivityResult {
	d := it.DayByID(dayID)
	return ActivityResult{
		Activity:     d.Activities[d.ActivityByID(activityID)],
		Day:          dayCopy(d),
		IsOverBudget: d.IsOverBudget,
	}
}

func checkCost(cost float64) error {
	if cost < 0 || math.IsNaN(cost) || math.IsInf(cost, 0) {
		return fmt.Errorf("%w: cost must be a non-negative number", domain.ErrValidation)
	}
	return nil
}

// dayCopy detaches a day from the itinerary's backing arrays.
func dayCopy(d *domain.Day) domain.Day {
	out := *d
	out.Activities = cloneSlice(d.Activities)
	return out
}
