package domain

import (
	"sort"
	"strings"
)

// TravelPreference is a travel-interest tag. Identity is the lowercase value,
// so "Culture" and "culture" collapse to the same preference.
type TravelPreference string

const (
	PreferenceAdventure  TravelPreference = "adventure"
	PreferenceRelaxation TravelPreference = "relaxation"
	PreferenceCulture    TravelPreference = "culture"
	PreferenceNightlife  TravelPreference = "nightlife"
	PreferenceNature     TravelPreference = "nature"
	PreferenceArt        TravelPreference = "art"
	PreferenceFood       TravelPreference = "food"
)

var knownPreferences = map[TravelPreference]bool{
	PreferenceAdventure: true, PreferenceRelaxation: true, PreferenceCulture: true,
	PreferenceNightlife: true, PreferenceNature: true, PreferenceArt: true, PreferenceFood: true,
}

// Valid reports whether p is a known preference tag.
func (p TravelPreference) Valid() bool {
	return knownPreferences[p]
}

// TravelPace is how densely the traveller wants days filled.
type TravelPace string

const (
	PaceRelaxed  TravelPace = "relaxed"
	PaceModerate TravelPace = "moderate"
	PaceBusy     TravelPace = "busy"
)

// Valid reports whether p is a known pace.
func (p TravelPace) Valid() bool {
	return p == PaceRelaxed || p == PaceModerate || p == PaceBusy
}

// TripPreferences is embedded in the itinerary: interest tags, pace and budget.
// Preferences is a set; NormalizePreferences collapses duplicates and sorts it.
type TripPreferences struct {
	Preferences []TravelPreference `json:"preferences"`
	Pace        TravelPace         `json:"pace"`
	Budget      Budget             `json:"budget"`
}

// NormalizePreferences lowercases, trims, de-duplicates and sorts tags.
// Blank entries are dropped. Validity is not checked here.
func NormalizePreferences(in []TravelPreference) []TravelPreference {
	seen := make(map[TravelPreference]bool, len(in))
	out := make([]TravelPreference, 0, len(in))
	for _, p := range in {
		n := TravelPreference(strings.ToLower(strings.TrimSpace(string(p))))
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Budget is the spending plan embedded in TripPreferences.
//
// DailyLimit is derived from Total and the trip length unless
// DailyLimitLocked is set, in which case the stored value is authoritative.
// A nil DailyLimit means "not derived yet"; the daily ceiling then falls back
// to Total divided by the number of days.
type Budget struct {
	Total            float64  `json:"total"`
	Accommodations   float64  `json:"accommodations"`
	Transportation   float64  `json:"transportation"`
	Activities       float64  `json:"activities"`
	Food             float64  `json:"food"`
	Misc             float64  `json:"misc"`
	DailyLimit       *float64 `json:"daily_limit,omitempty"`
	DailyLimitLocked bool     `json:"daily_limit_locked,omitempty"`
	Currency         string   `json:"currency"`
}

// Money is an amount in an explicit currency. External payloads that express
// prices in different shapes are normalized into Money at ingestion.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency,omitempty"`
}
