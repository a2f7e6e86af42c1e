// Package domain contains the core data types for the trip planner.
// This package depends only on google/uuid and is imported by every other
// internal package (carbon, budget, planner, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date format used for trip and day dates.
const DateLayout = "2006-01-02"

// Itinerary is the root aggregate: a trip header, one Day per calendar date
// in [StartDate, EndDate], lodging stays, transportation legs and preferences.
//
// TotalCarbonFootprint is derived. It equals the sum of every activity,
// accommodation and transportation footprint after each planner command.
type Itinerary struct {
	ID                   uuid.UUID        `json:"id"`
	Title                string           `json:"title"`
	Destination          string           `json:"destination"`
	StartDate            time.Time        `json:"start_date"`
	EndDate              time.Time        `json:"end_date"`
	Days                 []Day            `json:"days"`
	Accommodations       []Accommodation  `json:"accommodations"`
	Transportations      []Transportation `json:"transportations"`
	Preferences          TripPreferences  `json:"preferences"`
	TotalCarbonFootprint float64          `json:"total_carbon_footprint"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// Day is one calendar date within a trip.
// TotalCost and IsOverBudget are derived from Activities and the trip's
// daily ceiling; the planner recomputes them on every activity change.
type Day struct {
	ID           uuid.UUID  `json:"id"`
	Date         time.Time  `json:"date"`
	Activities   []Activity `json:"activities"`
	TotalCost    float64    `json:"total_cost"`
	IsOverBudget bool       `json:"is_over_budget"`
}

// DayByID returns a pointer to the day with the given id, or nil.
func (it *Itinerary) DayByID(id uuid.UUID) *Day {
	for i := range it.Days {
		if it.Days[i].ID == id {
			return &it.Days[i]
		}
	}
	return nil
}

// DayByDate returns a pointer to the day on the given calendar date, or nil.
func (it *Itinerary) DayByDate(date time.Time) *Day {
	want := date.Format(DateLayout)
	for i := range it.Days {
		if it.Days[i].Date.Format(DateLayout) == want {
			return &it.Days[i]
		}
	}
	return nil
}

// ActivityByID returns the index of the activity with the given id, or -1.
func (d *Day) ActivityByID(id uuid.UUID) int {
	for i := range d.Activities {
		if d.Activities[i].ID == id {
			return i
		}
	}
	return -1
}

// NormalizeDate truncates t to a UTC calendar date.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a "2006-01-02" calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
