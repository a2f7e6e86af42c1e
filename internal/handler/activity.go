package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/tripplanner/internal/domain"
)

// ListActivities handles GET /itineraries/{id}/days/{dayId}/activities.
// Activities are returned in start-time order.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	dayID, ok := pathID(w, r, "dayId")
	if !ok {
		return
	}
	acts, err := s.itineraries.ListActivities(r.Context(), id, dayID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse[domain.Activity]{Data: acts})
}

// AddActivity handles POST /itineraries/{id}/days/{dayId}/activities.
func (s *Server) AddActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	dayID, ok := pathID(w, r, "dayId")
	if !ok {
		return
	}
	req, ok := decodeBody[activityRequest](w, r)
	if !ok {
		return
	}
	in, err := req.toInput()
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	res, err := s.itineraries.AddActivity(r.Context(), id, dayID, in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toActivityResponse(res))
}

// UpdateActivity handles PUT /itineraries/{id}/days/{dayId}/activities/{activityId}.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	dayID, ok := pathID(w, r, "dayId")
	if !ok {
		return
	}
	activityID, ok := pathID(w, r, "activityId")
	if !ok {
		return
	}
	req, ok := decodeBody[activityRequest](w, r)
	if !ok {
		return
	}
	in, err := req.toInput()
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	res, err := s.itineraries.UpdateActivity(r.Context(), id, dayID, activityID, in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityResponse(res))
}

// RemoveActivity handles DELETE /itineraries/{id}/days/{dayId}/activities/{activityId}.
// The recomputed day is returned so clients can refresh totals.
func (s *Server) RemoveActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	dayID, ok := pathID(w, r, "dayId")
	if !ok {
		return
	}
	activityID, ok := pathID(w, r, "activityId")
	if !ok {
		return
	}
	day, err := s.itineraries.RemoveActivity(r.Context(), id, dayID, activityID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, day)
}

// MoveActivity handles POST /itineraries/{id}/days/{dayId}/activities/{activityId}/move.
func (s *Server) MoveActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	dayID, ok := pathID(w, r, "dayId")
	if !ok {
		return
	}
	activityID, ok := pathID(w, r, "activityId")
	if !ok {
		return
	}
	req, ok := decodeBody[moveActivityRequest](w, r)
	if !ok {
		return
	}
	res, err := s.itineraries.MoveActivity(r.Context(), id, dayID, activityID, uuid.MustParse(req.ToDayID))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityResponse(res))
}

// ReorderActivities handles PUT /itineraries/{id}/days/{dayId}/activities/order.
func (s *Server) ReorderActivities(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	dayID, ok := pathID(w, r, "dayId")
	if !ok {
		return
	}
	req, ok := decodeBody[reorderActivitiesRequest](w, r)
	if !ok {
		return
	}
	order := make([]uuid.UUID, 0, len(req.ActivityIDs))
	for _, a := range req.ActivityIDs {
		order = append(order, uuid.MustParse(a))
	}
	day, err := s.itineraries.ReorderActivities(r.Context(), id, dayID, order)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, day)
}
