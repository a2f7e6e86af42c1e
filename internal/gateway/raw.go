// Package gateway talks to the outside world on behalf of the planner:
// activity suggestions by destination name or coordinates, weather forecasts,
// and the built-in catalog used when every remote lookup comes back empty.
//
// External payloads arrive as RawActivity and are turned into well-formed
// domain.SuggestedActivity values by Normalize. Nothing else in the module
// sees the loose shapes.
package gateway

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RawActivity is an activity as returned by a suggestion provider. Every
// field is optional.
type RawActivity struct {
	ID               string       `json:"id,omitempty"`
	Title            string       `json:"title,omitempty"`
	Name             string       `json:"name,omitempty"`
	Type             string       `json:"type,omitempty"`
	Description      string       `json:"description,omitempty"`
	ShortDescription string       `json:"shortDescription,omitempty"`
	Location         *RawLocation `json:"location,omitempty"`
	GeoCode          *RawGeoCode  `json:"geoCode,omitempty"`
	StartTime        string       `json:"startTime,omitempty"`
	EndTime          string       `json:"endTime,omitempty"`
	Price            RawPrice     `json:"price"`
	Cost             RawPrice     `json:"cost"`
	Currency         string       `json:"currency,omitempty"`
	CurrencyCode     string       `json:"currencyCode,omitempty"`
	WeatherSensitive *bool        `json:"weatherSensitive,omitempty"`
}

// RawLocation is the nested location object some providers send.
type RawLocation struct {
	Name    string   `json:"name,omitempty"`
	Address string   `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// RawGeoCode is the coordinate object used by tour-and-activity APIs.
type RawGeoCode struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RawPrice accepts the price shapes seen in the wild: a bare number, a
// numeric string, or an object {"amount": number|string, "currencyCode": "..."}.
// Present is false when the field was absent or null; Valid is false when it
// was present but could not be read as a number.
type RawPrice struct {
	Amount   float64
	Currency string
	Present  bool
	Valid    bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *RawPrice) UnmarshalJSON(b []byte) error {
	*p = RawPrice{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	p.Present = true

	switch b[0] {
	case '{':
		var obj struct {
			Amount       json.RawMessage `json:"amount"`
			CurrencyCode string          `json:"currencyCode"`
			Currency     string          `json:"currency"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return nil
		}
		p.Currency = obj.CurrencyCode
		if p.Currency == "" {
			p.Currency = obj.Currency
		}
		p.Amount, p.Valid = parseAmount(obj.Amount)
	default:
		p.Amount, p.Valid = parseAmount(b)
	}
	return nil
}

// MarshalJSON writes the object form so cached payloads decode to the same value.
func (p RawPrice) MarshalJSON() ([]byte, error) {
	if !p.Present {
		return []byte("null"), nil
	}
	if !p.Valid {
		return []byte(`{"amount":null}`), nil
	}
	return json.Marshal(struct {
		Amount       float64 `json:"amount"`
		CurrencyCode string  `json:"currencyCode,omitempty"`
	}{p.Amount, p.Currency})
}

// parseAmount reads a JSON number or a JSON string holding a number.
func parseAmount(b json.RawMessage) (float64, bool) {
	if len(b) == 0 {
		return 0, false
	}
	var s string
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return 0, false
		}
	} else {
		s = string(b)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
