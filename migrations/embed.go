// Package migrations embeds the goose SQL migrations for the itinerary store
// so the API server and integration tests can apply them without a
// filesystem path.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
