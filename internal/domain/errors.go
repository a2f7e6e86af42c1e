package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// itinerary, day, activity, accommodation or transportation leg does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. negative cost, end time not after start time, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrGatewayUnavailable is returned by suggestion and weather collaborators
// when a lookup failed or produced nothing usable. Services degrade to an
// empty result instead of propagating it.
var ErrGatewayUnavailable = errors.New("gateway unavailable")

// ErrPersistence wraps a failure reported by the itinerary store.
// It is propagated to the caller unchanged; nothing retries it.
var ErrPersistence = errors.New("persistence failure")
