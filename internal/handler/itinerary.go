package handler

import (
	"net/http"

	"github.com/pkordes/tripplanner/internal/carbon"
	"github.com/pkordes/tripplanner/internal/domain"
)

// CreateItinerary handles POST /itineraries.
func (s *Server) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBody[createItineraryRequest](w, r)
	if !ok {
		return
	}
	created, err := s.itineraries.Create(r.Context(), req.toInput())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", "/itineraries/"+created.ID.String())
	writeJSON(w, http.StatusCreated, created)
}

// ListItineraries handles GET /itineraries.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListItineraries(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	params := domain.NewPaginationParams(page, limit)

	its, total, err := s.itineraries.List(r.Context(), params)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if its == nil {
		its = []domain.Itinerary{}
	}
	writeJSON(w, http.StatusOK, listItinerariesResponse{
		Data:       its,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// GetItinerary handles GET /itineraries/{id}.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	it, err := s.itineraries.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// DeleteItinerary handles DELETE /itineraries/{id}.
func (s *Server) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.itineraries.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecalculateFootprint handles POST /itineraries/{id}/footprint.
func (s *Server) RecalculateFootprint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	kg, err := s.itineraries.RecalculateFootprint(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, footprintResponse{
		TotalCarbonFootprint: kg,
		Level:                string(carbon.TripCategory(kg)),
		Display:              carbon.FormatFootprint(kg),
	})
}
