// Package budget derives and maintains the per-day spending ceiling of a trip.
// Functions take and return domain.Budget values; nothing here mutates its
// arguments.
package budget

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pkordes/tripplanner/internal/domain"
)

// Category names one line of the budget breakdown.
type Category string

const (
	CategoryAccommodations Category = "accommodations"
	CategoryTransportation Category = "transportation"
	CategoryActivities     Category = "activities"
	CategoryFood           Category = "food"
	CategoryMisc           Category = "misc"
)

// Categories lists every breakdown category in display order.
var Categories = []Category{
	CategoryAccommodations, CategoryTransportation, CategoryActivities, CategoryFood, CategoryMisc,
}

// ParseCategory maps a case-insensitive name to a Category.
// "miscellaneous" is accepted as an alias of misc.
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "miscellaneous" {
		name = string(CategoryMisc)
	}
	for _, c := range Categories {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown budget category %q", domain.ErrValidation, s)
}

// TripDurationDays returns the inclusive number of calendar days between
// start and end. Times of day are ignored.
func TripDurationDays(start, end time.Time) (int, error) {
	s := domain.NormalizeDate(start)
	e := domain.NormalizeDate(end)
	if e.Before(s) {
		return 0, fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}

// ComputeDailyLimit splits total evenly across days and rounds half-up to
// whole currency units.
func ComputeDailyLimit(total float64, days int) (float64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("%w: trip duration must be at least one day, got %d", domain.ErrValidation, days)
	}
	if total < 0 {
		return 0, fmt.Errorf("%w: budget total must not be negative", domain.ErrValidation)
	}
	return math.Round(total / float64(days)), nil
}

// DailyCeiling returns the amount a single day may cost before it is over
// budget. A stored DailyLimit wins; otherwise Total is divided by numDays;
// with no days at all the whole Total is the ceiling.
func DailyCeiling(b domain.Budget, numDays int) float64 {
	if b.DailyLimit != nil {
		return *b.DailyLimit
	}
	if numDays > 0 {
		return b.Total / float64(numDays)
	}
	return b.Total
}

// Validate checks that every amount is non-negative and a currency is set.
func Validate(b domain.Budget) error {
	if strings.TrimSpace(b.Currency) == "" {
		return fmt.Errorf("%w: budget currency is required", domain.ErrValidation)
	}
	if b.Total < 0 {
		return fmt.Errorf("%w: budget total must not be negative", domain.ErrValidation)
	}
	for _, c := range Categories {
		if Amount(b, c) < 0 {
			return fmt.Errorf("%w: budget %s must not be negative", domain.ErrValidation, c)
		}
	}
	if b.DailyLimit != nil && *b.DailyLimit < 0 {
		return fmt.Errorf("%w: daily limit must not be negative", domain.ErrValidation)
	}
	return nil
}

// Derive recomputes DailyLimit from Total and days unless the limit is
// locked, in which case b is returned unchanged.
func Derive(b domain.Budget, days int) (domain.Budget, error) {
	if b.DailyLimitLocked && b.DailyLimit != nil {
		return b, nil
	}
	limit, err := ComputeDailyLimit(b.Total, days)
	if err != nil {
		return domain.Budget{}, err
	}
	b.DailyLimit = &limit
	b.DailyLimitLocked = false
	return b, nil
}

// Amount returns the breakdown value of category c.
func Amount(b domain.Budget, c Category) float64 {
	switch c {
	case CategoryAccommodations:
		return b.Accommodations
	case CategoryTransportation:
		return b.Transportation
	case CategoryActivities:
		return b.Activities
	case CategoryFood:
		return b.Food
	case CategoryMisc:
		return b.Misc
	}
	return 0
}

// SumCategories adds up the breakdown.
func SumCategories(b domain.Budget) float64 {
	var sum float64
	for _, c := range Categories {
		sum += Amount(b, c)
	}
	return sum
}

// SetCategory sets one breakdown line, makes Total the sum of all lines and
// re-derives DailyLimit for a trip of days days.
func SetCategory(b domain.Budget, c Category, value float64, days int) (domain.Budget, error) {
	if value < 0 || math.IsNaN(value) {
		return domain.Budget{}, fmt.Errorf("%w: budget %s must not be negative", domain.ErrValidation, c)
	}
	switch c {
	case CategoryAccommodations:
		b.Accommodations = value
	case CategoryTransportation:
		b.Transportation = value
	case CategoryActivities:
		b.Activities = value
	case CategoryFood:
		b.Food = value
	case CategoryMisc:
		b.Misc = value
	default:
		return domain.Budget{}, fmt.Errorf("%w: unknown budget category %q", domain.ErrValidation, c)
	}
	b.Total = SumCategories(b)
	return Derive(b, days)
}

// SetTotal replaces Total without touching the breakdown and re-derives
// DailyLimit.
func SetTotal(b domain.Budget, total float64, days int) (domain.Budget, error) {
	if total < 0 || math.IsNaN(total) {
		return domain.Budget{}, fmt.Errorf("%w: budget total must not be negative", domain.ErrValidation)
	}
	b.Total = total
	return Derive(b, days)
}

// Lock pins DailyLimit to amount; later total or date changes keep it.
func Lock(b domain.Budget, amount float64) (domain.Budget, error) {
	if amount < 0 || math.IsNaN(amount) {
		return domain.Budget{}, fmt.Errorf("%w: daily limit must not be negative", domain.ErrValidation)
	}
	b.DailyLimit = &amount
	b.DailyLimitLocked = true
	return b, nil
}

// Unlock releases a pinned DailyLimit and derives it again.
func Unlock(b domain.Budget, days int) (domain.Budget, error) {
	b.DailyLimitLocked = false
	return Derive(b, days)
}
