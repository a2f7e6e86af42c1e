package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// decodeBody decodes the JSON request body into T and validates its tags.
// On failure it writes the error response and returns false: 413 when the
// body limit was hit, 400 for malformed JSON, 422 for failed validation.
func decodeBody[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request_too_large",
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return req, false
		}
		badRequest(w, "request body must be valid JSON")
		return req, false
	}
	if err := validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{
			Code:    "validation_error",
			Message: "request validation failed",
			Fields:  fieldErrors(err),
		}})
		return req, false
	}
	return req, true
}

// fieldErrors converts validator errors into field path -> message.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return out
	}
	for _, e := range ve {
		field := e.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		out[field] = fieldMessage(e)
	}
	return out
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return "must be a UUID"
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", e.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	default:
		return fmt.Sprintf("failed %q validation", e.Tag())
	}
}

// pathID parses the UUID path parameter name. It writes 400 and returns
// false when the value is not a UUID.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		badRequest(w, fmt.Sprintf("%s must be a UUID", name))
		return uuid.Nil, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (*int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &n, nil
}

// queryFloat parses an optional float query parameter.
func queryFloat(r *http.Request, name string) (float64, bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%s must be a number", name)
	}
	return f, true, nil
}
