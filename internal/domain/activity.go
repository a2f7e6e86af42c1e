package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ActivityType classifies an activity for emission accounting.
type ActivityType string

const (
	ActivitySightseeing   ActivityType = "sightseeing"
	ActivityMuseum        ActivityType = "museum"
	ActivityOutdoors      ActivityType = "outdoors"
	ActivityDining        ActivityType = "dining"
	ActivityShopping      ActivityType = "shopping"
	ActivityEntertainment ActivityType = "entertainment"
	ActivityRelaxation    ActivityType = "relaxation"
	ActivityFreeTime      ActivityType = "freeTime"
)

// ActivityTypes lists every valid ActivityType.
var ActivityTypes = []ActivityType{
	ActivitySightseeing, ActivityMuseum, ActivityOutdoors, ActivityDining,
	ActivityShopping, ActivityEntertainment, ActivityRelaxation, ActivityFreeTime,
}

// Valid reports whether t is a known activity type.
func (t ActivityType) Valid() bool {
	for _, v := range ActivityTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Location is a named point. Address and Description are optional.
// Coordinates are stored as given; range checking is left to callers.
type Location struct {
	Name        string  `json:"name"`
	Address     string  `json:"address,omitempty"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Description string  `json:"description,omitempty"`
}

// Activity is a single scheduled happening within a Day.
// CarbonFootprint is computed from Type and the Start/End window; callers
// never supply it.
type Activity struct {
	ID               uuid.UUID    `json:"id"`
	Title            string       `json:"title"`
	Type             ActivityType `json:"type"`
	Location         Location     `json:"location"`
	Start            ClockTime    `json:"start_time"`
	End              ClockTime    `json:"end_time"`
	Description      string       `json:"description,omitempty"`
	Cost             float64      `json:"cost"`
	CarbonFootprint  float64      `json:"carbon_footprint"`
	WeatherSensitive bool         `json:"weather_sensitive"`
}

// ActivityInput carries the caller-supplied fields of an activity.
type ActivityInput struct {
	Title            string
	Type             ActivityType
	Location         Location
	Start            ClockTime
	End              ClockTime
	Description      string
	Cost             float64
	WeatherSensitive bool
}

// ClockTime is a time of day with minute precision, encoded as "HH:MM".
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" (24-hour clock).
func ParseClock(s string) (ClockTime, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return ClockTime{}, fmt.Errorf("%w: clock time %q must be HH:MM", ErrValidation, s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("%w: clock time %q has invalid hour", ErrValidation, s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("%w: clock time %q has invalid minute", ErrValidation, s)
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

// MustClock is ParseClock for constants and tests. It panics on bad input.
func MustClock(s string) ClockTime {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// MinutesOfDay returns the number of minutes since midnight.
func (c ClockTime) MinutesOfDay() int {
	return c.Hour*60 + c.Minute
}

// Before reports whether c is strictly earlier in the day than o.
func (c ClockTime) Before(o ClockTime) bool {
	return c.MinutesOfDay() < o.MinutesOfDay()
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MarshalText implements encoding.TextMarshaler.
func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ClockTime) UnmarshalText(b []byte) error {
	parsed, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
