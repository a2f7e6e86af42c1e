package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/tripplanner/internal/domain"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a message.
// Fields is set for request validation failures only.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// writeJSON encodes v with status. Encoding errors can only come from the
// connection at this point and are ignored.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// notFound writes 404 for a missing resource.
// The caller supplies the message because the handler is the layer that
// knows what was being looked up.
func notFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, "not_found", message)
}

// badRequest writes 400 for a request rejected before reaching the service
// layer (malformed JSON, unparseable path or query values).
func badRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, "bad_request", message)
}

// writeServiceError maps a service error onto the HTTP taxonomy:
// ErrValidation -> 422, ErrNotFound -> 404, anything else -> 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", sentinelMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrNotFound):
		msg := sentinelMessage(err, domain.ErrNotFound)
		if msg == domain.ErrNotFound.Error() {
			// Stores report a bare ErrNotFound; the only thing they look up is the itinerary.
			msg = "itinerary not found"
		}
		notFound(w, msg)
	default:
		s.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// sentinelMessage extracts the human-readable part that follows a wrapped
// sentinel, e.g.
// "service.ItineraryService.AddActivity: validation error: cost must not be negative"
// becomes "cost must not be negative". When nothing follows the sentinel its
// own text is returned.
func sentinelMessage(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return sentinel.Error()
}
