package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/gateway"
)

// GetSuggestions handles GET /suggestions.
// Query: destination, lat, lng, radius, currency. A coordinate search needs
// both lat and lng. The response is never empty: the built-in catalog
// answers when every provider fails.
func (s *Server) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	lat, hasLat, err := queryFloat(r, "lat")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	lng, hasLng, err := queryFloat(r, "lng")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	radius, _, err := queryFloat(r, "radius")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if hasLat != hasLng {
		badRequest(w, "lat and lng must be given together")
		return
	}
	q := gateway.Query{
		Destination: strings.TrimSpace(r.URL.Query().Get("destination")),
		Lat:         lat,
		Lng:         lng,
		HasCoords:   hasLat && hasLng,
		RadiusKm:    radius,
		Currency:    strings.ToUpper(r.URL.Query().Get("currency")),
	}
	writeJSON(w, http.StatusOK, dataResponse[domain.SuggestedActivity]{Data: s.suggestions.Suggest(r.Context(), q)})
}

// SuggestForItinerary handles GET /itineraries/{id}/suggestions.
func (s *Server) SuggestForItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := s.suggestions.SuggestForItinerary(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse[domain.SuggestedActivity]{Data: out})
}

// GetWeather handles GET /weather?lat=&lng=&date=.
// date defaults to today. An unavailable forecast is reported with
// available=false rather than an error.
func (s *Server) GetWeather(w http.ResponseWriter, r *http.Request) {
	lat, hasLat, err := queryFloat(r, "lat")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	lng, hasLng, err := queryFloat(r, "lng")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if !hasLat || !hasLng {
		badRequest(w, "lat and lng are required")
		return
	}
	date := domain.NormalizeDate(s.now())
	if v := r.URL.Query().Get("date"); v != "" {
		d, err := time.Parse(domain.DateLayout, v)
		if err != nil {
			badRequest(w, "date must be YYYY-MM-DD")
			return
		}
		date = d
	}

	f, ok := s.suggestions.Forecast(r.Context(), lat, lng, date)
	if !ok {
		writeJSON(w, http.StatusOK, forecastResponse{Available: false})
		return
	}
	writeJSON(w, http.StatusOK, forecastResponse{Available: true, Forecast: &f})
}

// GetWeatherWarnings handles GET /itineraries/{id}/weather-warnings.
func (s *Server) GetWeatherWarnings(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := s.suggestions.WeatherWarnings(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse[domain.WeatherWarning]{Data: out})
}
