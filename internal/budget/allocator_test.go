package budget_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripplanner/internal/budget"
	"github.com/pkordes/tripplanner/internal/domain"
)

func date(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func baseBudget() domain.Budget {
	return domain.Budget{
		Total:          300,
		Accommodations: 120,
		Transportation: 60,
		Activities:     60,
		Food:           50,
		Misc:           10,
		Currency:       "EUR",
	}
}

func TestTripDurationDays(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		want    int
		wantErr bool
	}{
		{name: "three days", start: "2025-06-01", end: "2025-06-03", want: 3},
		{name: "same day", start: "2025-06-01", end: "2025-06-01", want: 1},
		{name: "across month", start: "2025-01-30", end: "2025-02-02", want: 4},
		{name: "leap day", start: "2024-02-28", end: "2024-03-01", want: 3},
		{name: "end before start", start: "2025-06-03", end: "2025-06-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := budget.TripDurationDays(date(tt.start), date(tt.end))
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeDailyLimit(t *testing.T) {
	tests := []struct {
		name    string
		total   float64
		days    int
		want    float64
		wantErr bool
	}{
		{name: "even split", total: 300, days: 3, want: 100},
		{name: "rounds half up", total: 5, days: 2, want: 3},
		{name: "rounds down", total: 100, days: 3, want: 33},
		{name: "rounds up", total: 200, days: 3, want: 67},
		{name: "zero total", total: 0, days: 4, want: 0},
		{name: "zero days", total: 100, days: 0, wantErr: true},
		{name: "negative days", total: 100, days: -2, wantErr: true},
		{name: "negative total", total: -1, days: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := budget.ComputeDailyLimit(tt.total, tt.days)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeDailyLimit_RoundingErrorBoundedByDays(t *testing.T) {
	for _, total := range []float64{0, 1, 7, 99, 100, 101, 999.5, 12345} {
		for days := 1; days <= 30; days++ {
			limit, err := budget.ComputeDailyLimit(total, days)
			require.NoError(t, err)
			assert.LessOrEqual(t, math.Abs(limit*float64(days)-total), float64(days),
				"total=%v days=%d limit=%v", total, days, limit)
		}
	}
}

func TestDailyCeiling_FallbackOrder(t *testing.T) {
	b := baseBudget()

	// No stored limit: total / days, unrounded.
	assert.InDelta(t, 75.0, budget.DailyCeiling(b, 4), 1e-9)

	// No days: the whole total.
	assert.Equal(t, 300.0, budget.DailyCeiling(b, 0))

	// Stored limit wins.
	limit := 42.0
	b.DailyLimit = &limit
	assert.Equal(t, 42.0, budget.DailyCeiling(b, 4))
}

func TestDerive_RespectsLock(t *testing.T) {
	b, err := budget.Derive(baseBudget(), 3)
	require.NoError(t, err)
	require.NotNil(t, b.DailyLimit)
	assert.Equal(t, 100.0, *b.DailyLimit)
	assert.False(t, b.DailyLimitLocked)

	b, err = budget.Lock(b, 80)
	require.NoError(t, err)

	b, err = budget.Derive(b, 6)
	require.NoError(t, err)
	assert.Equal(t, 80.0, *b.DailyLimit, "a locked limit survives re-derivation")

	b, err = budget.Unlock(b, 6)
	require.NoError(t, err)
	assert.Equal(t, 50.0, *b.DailyLimit)
	assert.False(t, b.DailyLimitLocked)
}

func TestSetCategory_RecomputesTotalAndLimit(t *testing.T) {
	b, err := budget.SetCategory(baseBudget(), budget.CategoryFood, 150, 3)

	require.NoError(t, err)
	assert.Equal(t, 150.0, b.Food)
	assert.Equal(t, 400.0, b.Total)
	require.NotNil(t, b.DailyLimit)
	assert.Equal(t, 133.0, *b.DailyLimit)
}

func TestSetCategory_Negative(t *testing.T) {
	_, err := budget.SetCategory(baseBudget(), budget.CategoryMisc, -5, 3)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSetCategory_DoesNotMutateInput(t *testing.T) {
	in := baseBudget()
	_, err := budget.SetCategory(in, budget.CategoryActivities, 999, 3)
	require.NoError(t, err)
	assert.Equal(t, baseBudget(), in)
}

func TestSetTotal(t *testing.T) {
	b, err := budget.SetTotal(baseBudget(), 700, 7)
	require.NoError(t, err)
	assert.Equal(t, 700.0, b.Total)
	assert.Equal(t, 100.0, *b.DailyLimit)
	assert.Equal(t, 120.0, b.Accommodations, "breakdown is untouched")

	_, err = budget.SetTotal(baseBudget(), -1, 7)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParseCategory(t *testing.T) {
	c, err := budget.ParseCategory(" Food ")
	require.NoError(t, err)
	assert.Equal(t, budget.CategoryFood, c)

	c, err = budget.ParseCategory("miscellaneous")
	require.NoError(t, err)
	assert.Equal(t, budget.CategoryMisc, c)

	_, err = budget.ParseCategory("souvenirs")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestValidate(t *testing.T) {
	require.NoError(t, budget.Validate(baseBudget()))

	b := baseBudget()
	b.Currency = " "
	assert.ErrorIs(t, budget.Validate(b), domain.ErrValidation)

	b = baseBudget()
	b.Transportation = -1
	assert.ErrorIs(t, budget.Validate(b), domain.ErrValidation)

	b = baseBudget()
	neg := -3.0
	b.DailyLimit = &neg
	assert.ErrorIs(t, budget.Validate(b), domain.ErrValidation)
}
