package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tripplanner/internal/budget"
)

// UpdatePreferences handles PUT /itineraries/{id}/preferences.
// Replacing the budget recomputes the daily limit unless one is pinned.
func (s *Server) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	req, ok := decodeBody[preferencesRequest](w, r)
	if !ok {
		return
	}
	prefs, err := s.itineraries.UpdatePreferences(r.Context(), id, req.toDomain())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// SetBudgetTotal handles PUT /itineraries/{id}/budget.
func (s *Server) SetBudgetTotal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	req, ok := decodeBody[amountRequest](w, r)
	if !ok {
		return
	}
	b, err := s.itineraries.SetBudgetTotal(r.Context(), id, *req.Amount)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// UpdateBudgetCategory handles PUT /itineraries/{id}/budget/{category}.
// The total becomes the sum of the categories.
func (s *Server) UpdateBudgetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	category, err := budget.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	req, ok := decodeBody[amountRequest](w, r)
	if !ok {
		return
	}
	b, err := s.itineraries.UpdateBudgetCategory(r.Context(), id, category, *req.Amount)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// SetDailyLimit handles PUT /itineraries/{id}/budget/daily-limit.
// An explicit limit stays fixed until it is unlocked.
func (s *Server) SetDailyLimit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	req, ok := decodeBody[amountRequest](w, r)
	if !ok {
		return
	}
	b, err := s.itineraries.SetDailyLimit(r.Context(), id, *req.Amount)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// UnlockDailyLimit handles DELETE /itineraries/{id}/budget/daily-limit.
func (s *Server) UnlockDailyLimit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b, err := s.itineraries.UnlockDailyLimit(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// AddDay handles POST /itineraries/{id}/days.
func (s *Server) AddDay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	req, ok := decodeBody[addDayRequest](w, r)
	if !ok {
		return
	}
	day, err := s.itineraries.AddDay(r.Context(), id, req.Date.Time)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, day)
}

// RemoveDay handles DELETE /itineraries/{id}/days/{dayId}.
func (s *Server) RemoveDay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	dayID, ok := pathID(w, r, "dayId")
	if !ok {
		return
	}
	if err := s.itineraries.RemoveDay(r.Context(), id, dayID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
