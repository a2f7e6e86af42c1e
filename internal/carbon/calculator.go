// Package carbon computes greenhouse-gas estimates for activities,
// transportation legs and accommodation stays. Every function is pure:
// no I/O and no mutation of inputs.
package carbon

import (
	"fmt"
	"math"
	"time"

	"github.com/pkordes/tripplanner/internal/domain"
)

// Level is a coarse severity classification of a footprint.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// TransportEmissions returns kg CO2e for travelling distanceKm by mode.
func TransportEmissions(mode domain.TransportMode, distanceKm float64) (float64, error) {
	factor, ok := TransportFactor(mode)
	if !ok {
		return 0, fmt.Errorf("%w: unknown transport mode %q", domain.ErrValidation, mode)
	}
	if distanceKm < 0 || math.IsNaN(distanceKm) {
		return 0, fmt.Errorf("%w: distance must not be negative", domain.ErrValidation)
	}
	return distanceKm * factor, nil
}

// ActivityEmissions returns kg CO2e for durationHours of an activity type.
// The duration must be strictly positive.
func ActivityEmissions(t domain.ActivityType, durationHours float64) (float64, error) {
	factor, ok := ActivityFactor(t)
	if !ok {
		return 0, fmt.Errorf("%w: unknown activity type %q", domain.ErrValidation, t)
	}
	if durationHours <= 0 || math.IsNaN(durationHours) {
		return 0, fmt.Errorf("%w: end time must be after start time", domain.ErrValidation)
	}
	return durationHours * factor, nil
}

// DurationHours returns (end - start) in hours using minutes of the day.
// It fails when end is not after start; activities never span midnight.
func DurationHours(start, end domain.ClockTime) (float64, error) {
	minutes := end.MinutesOfDay() - start.MinutesOfDay()
	if minutes <= 0 {
		return 0, fmt.Errorf("%w: end time %s must be after start time %s", domain.ErrValidation, end, start)
	}
	return float64(minutes) / 60, nil
}

// ActivityWindowEmissions derives the duration from the start/end window and
// returns the activity's footprint.
func ActivityWindowEmissions(t domain.ActivityType, start, end domain.ClockTime) (float64, error) {
	hours, err := DurationHours(start, end)
	if err != nil {
		return 0, err
	}
	return ActivityEmissions(t, hours)
}

// AccommodationEmissions returns kg CO2e for nights spent in a lodging class.
func AccommodationEmissions(class domain.AccommodationClass, nights int) (float64, error) {
	factor, ok := AccommodationFactor(class)
	if !ok {
		return 0, fmt.Errorf("%w: unknown accommodation class %q", domain.ErrValidation, class)
	}
	if nights < 0 {
		return 0, fmt.Errorf("%w: nights must not be negative", domain.ErrValidation)
	}
	return float64(nights) * factor, nil
}

// Nights counts calendar nights between check-in and check-out dates.
// Times of day are ignored. A check-out before check-in is invalid.
func Nights(checkIn, checkOut time.Time) (int, error) {
	in := domain.NormalizeDate(checkIn)
	out := domain.NormalizeDate(checkOut)
	if out.Before(in) {
		return 0, fmt.Errorf("%w: check-out must not be before check-in", domain.ErrValidation)
	}
	return int(out.Sub(in).Hours() / 24), nil
}

// HaversineKm returns the great-circle distance in km between two points
// given in decimal degrees. Coordinates are not range-checked.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// Distance is HaversineKm between two locations.
func Distance(from, to domain.Location) float64 {
	return HaversineKm(from.Lat, from.Lng, to.Lat, to.Lng)
}

// LegEmissions returns the great-circle distance between from and to and the
// footprint of covering it by mode.
func LegEmissions(mode domain.TransportMode, from, to domain.Location) (distanceKm, kg float64, err error) {
	distanceKm = Distance(from, to)
	kg, err = TransportEmissions(mode, distanceKm)
	if err != nil {
		return 0, 0, err
	}
	return distanceKm, kg, nil
}

// TripCategory classifies a whole-trip footprint.
func TripCategory(kg float64) Level {
	return classify(kg, TripLowThresholdKg, TripMediumThresholdKg)
}

// ActivityCategory classifies a single activity's footprint.
func ActivityCategory(kg float64) Level {
	return classify(kg, ActivityLowThresholdKg, ActivityMediumThresholdKg)
}

// FormatFootprint renders kg with two decimals and a "kg CO₂" suffix.
func FormatFootprint(kg float64) string {
	return fmt.Sprintf("%.2f kg CO₂", kg)
}

func classify(kg, low, medium float64) Level {
	switch {
	case kg < low:
		return LevelLow
	case kg < medium:
		return LevelMedium
	default:
		return LevelHigh
	}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
