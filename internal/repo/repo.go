// Package repo persists itineraries. Each store keeps the whole aggregate as
// one JSON document keyed by itinerary id; no business rules live here and
// callers re-validate what they load.
package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/tripplanner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ItineraryRepo is the itinerary store consumed by the service layer.
type ItineraryRepo interface {
	// Put inserts or replaces the itinerary with it.ID and returns the stored
	// record with CreatedAt and UpdatedAt set by the store.
	Put(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)

	// GetByID returns domain.ErrNotFound if no itinerary has that id.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)

	// List returns every itinerary ordered by start date, most recent first.
	List(ctx context.Context) ([]domain.Itinerary, error)

	// ListPaged returns one page of List and the total number of itineraries.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error)

	// Delete returns domain.ErrNotFound if no itinerary has that id.
	Delete(ctx context.Context, id uuid.UUID) error
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}
