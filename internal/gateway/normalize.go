package gateway

import (
	"strings"

	"github.com/pkordes/tripplanner/internal/domain"
)

// Query is one suggestion request. Lat/Lng are the search origin and are
// only used when HasCoords is set. Currency is applied to prices that arrive
// without one.
type Query struct {
	Destination string
	Lat         float64
	Lng         float64
	HasCoords   bool
	RadiusKm    float64
	Currency    string
}

// DefaultRadiusKm is used when a coordinate query does not set a radius.
const DefaultRadiusKm = 5

const unnamedActivity = "Unnamed Activity"

var (
	defaultStart = domain.ClockTime{Hour: 9}
	defaultEnd   = domain.ClockTime{Hour: 11}
)

// Normalize maps a provider payload onto a SuggestedActivity:
//
//   - title falls back to name, then "Unnamed Activity"
//   - an unknown or missing type is inferred from the title
//   - missing coordinates fall back to the search origin
//   - a missing or inverted time window becomes 09:00-11:00
//   - a missing, negative or unreadable price becomes 0
func Normalize(raw RawActivity, q Query, source string) domain.SuggestedActivity {
	title := firstNonEmpty(raw.Title, raw.Name, unnamedActivity)

	typ, ok := parseActivityType(raw.Type)
	if !ok {
		typ = InferActivityType(title)
	}

	start, end := timeWindow(raw.StartTime, raw.EndTime)

	sensitive := typ == domain.ActivityOutdoors || typ == domain.ActivitySightseeing
	if raw.WeatherSensitive != nil {
		sensitive = *raw.WeatherSensitive
	}

	return domain.SuggestedActivity{
		Title:            title,
		Type:             typ,
		Location:         location(raw, q),
		Start:            start,
		End:              end,
		Description:      firstNonEmpty(raw.Description, raw.ShortDescription),
		Price:            price(raw, q),
		WeatherSensitive: sensitive,
		Source:           source,
	}
}

// InferActivityType guesses a type from keywords in a title. The first
// matching group wins; anything else is sightseeing.
func InferActivityType(title string) domain.ActivityType {
	t := strings.ToLower(title)
	for _, rule := range typeKeywords {
		for _, kw := range rule.keywords {
			if strings.Contains(t, kw) {
				return rule.typ
			}
		}
	}
	return domain.ActivitySightseeing
}

var typeKeywords = []struct {
	typ      domain.ActivityType
	keywords []string
}{
	{domain.ActivityMuseum, []string{"museum", "gallery"}},
	{domain.ActivityOutdoors, []string{"park", "garden", "hiking"}},
	{domain.ActivityDining, []string{"restaurant", "food", "dinner", "lunch"}},
	{domain.ActivityShopping, []string{"shop", "market", "store"}},
	{domain.ActivityEntertainment, []string{"show", "theater", "cinema"}},
	{domain.ActivityRelaxation, []string{"spa", "massage", "relax"}},
}

// MapCondition turns a provider's free-text condition ("Patchy light
// drizzle", "Partly cloudy") into a WeatherCondition. Unrecognised text is
// treated as cloudy.
func MapCondition(text string) domain.WeatherCondition {
	t := strings.ToLower(text)
	for _, rule := range conditionKeywords {
		for _, kw := range rule.keywords {
			if strings.Contains(t, kw) {
				return rule.condition
			}
		}
	}
	return domain.WeatherCloudy
}

var conditionKeywords = []struct {
	condition domain.WeatherCondition
	keywords  []string
}{
	{domain.WeatherSunny, []string{"sun", "clear"}},
	{domain.WeatherRainy, []string{"rain", "drizzle", "shower"}},
	{domain.WeatherCloudy, []string{"cloud", "overcast"}},
	{domain.WeatherSnowy, []string{"snow", "sleet", "ice"}},
	{domain.WeatherStormy, []string{"thunder", "storm"}},
}

func parseActivityType(s string) (domain.ActivityType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range domain.ActivityTypes {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

func timeWindow(startText, endText string) (domain.ClockTime, domain.ClockTime) {
	start, err := domain.ParseClock(startText)
	if err != nil {
		return defaultStart, defaultEnd
	}
	end, err := domain.ParseClock(endText)
	if err != nil || !start.Before(end) {
		return defaultStart, defaultEnd
	}
	return start, end
}

func location(raw RawActivity, q Query) domain.Location {
	loc := domain.Location{Name: "Unknown Location", Lat: q.Lat, Lng: q.Lng}
	if raw.GeoCode != nil {
		loc.Lat, loc.Lng = raw.GeoCode.Latitude, raw.GeoCode.Longitude
	}
	if l := raw.Location; l != nil {
		loc.Name = firstNonEmpty(l.Name, loc.Name)
		loc.Address = l.Address
		if l.Lat != nil && l.Lng != nil {
			loc.Lat, loc.Lng = *l.Lat, *l.Lng
		}
	}
	return loc
}

func price(raw RawActivity, q Query) domain.Money {
	p := raw.Price
	if !p.Present {
		p = raw.Cost
	}
	m := domain.Money{Currency: firstNonEmpty(p.Currency, raw.CurrencyCode, raw.Currency, q.Currency)}
	if p.Valid && p.Amount > 0 {
		m.Amount = p.Amount
	}
	m.Currency = strings.ToUpper(m.Currency)
	return m
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
