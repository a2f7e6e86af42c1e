package middleware

import (
	"fmt"
	"net/http"
)

// NewMaxBodySizeHandler caps request bodies at limit bytes. A request that
// declares a larger Content-Length gets 413 with the API's JSON error body
// before the next handler runs. Other bodies are wrapped in
// http.MaxBytesReader so decoding fails at the limit and the handler answers.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	body := fmt.Sprintf(`{"error":{"code":"request_too_large","message":"request body exceeds %d bytes"}}`+"\n", limit)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_, _ = w.Write([]byte(body))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
