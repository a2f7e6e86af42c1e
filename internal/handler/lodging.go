package handler

import "net/http"

// AddAccommodation handles POST /itineraries/{id}/accommodations.
func (s *Server) AddAccommodation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	req, ok := decodeBody[accommodationRequest](w, r)
	if !ok {
		return
	}
	acc, err := s.itineraries.AddAccommodation(r.Context(), id, req.toInput())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, acc)
}

// UpdateAccommodation handles PUT /itineraries/{id}/accommodations/{accommodationId}.
func (s *Server) UpdateAccommodation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	accID, ok := pathID(w, r, "accommodationId")
	if !ok {
		return
	}
	req, ok := decodeBody[accommodationRequest](w, r)
	if !ok {
		return
	}
	acc, err := s.itineraries.UpdateAccommodation(r.Context(), id, accID, req.toInput())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

// RemoveAccommodation handles DELETE /itineraries/{id}/accommodations/{accommodationId}.
func (s *Server) RemoveAccommodation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	accID, ok := pathID(w, r, "accommodationId")
	if !ok {
		return
	}
	if err := s.itineraries.RemoveAccommodation(r.Context(), id, accID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddTransportation handles POST /itineraries/{id}/transportations.
// Distance and emissions are computed from the leg's endpoints.
func (s *Server) AddTransportation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	req, ok := decodeBody[transportationRequest](w, r)
	if !ok {
		return
	}
	leg, err := s.itineraries.AddTransportation(r.Context(), id, req.toInput())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, leg)
}

// UpdateTransportation handles PUT /itineraries/{id}/transportations/{transportationId}.
func (s *Server) UpdateTransportation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	legID, ok := pathID(w, r, "transportationId")
	if !ok {
		return
	}
	req, ok := decodeBody[transportationRequest](w, r)
	if !ok {
		return
	}
	leg, err := s.itineraries.UpdateTransportation(r.Context(), id, legID, req.toInput())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leg)
}

// RemoveTransportation handles DELETE /itineraries/{id}/transportations/{transportationId}.
func (s *Server) RemoveTransportation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	legID, ok := pathID(w, r, "transportationId")
	if !ok {
		return
	}
	if err := s.itineraries.RemoveTransportation(r.Context(), id, legID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
