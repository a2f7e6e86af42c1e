package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pkordes/tripplanner/internal/domain"
)

// pgItineraryRepo stores itineraries in Postgres. The header columns exist
// for ordering and inspection; the JSONB document is authoritative.
type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

// Put upserts on id. created_at is kept from the first insert.
func (r *pgItineraryRepo) Put(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	const q = `
		INSERT INTO itineraries (id, title, destination, start_date, end_date, document)
		VALUES (@id, @title, @destination, @start_date, @end_date, @document)
		ON CONFLICT (id) DO UPDATE
		SET title       = EXCLUDED.title,
		    destination = EXCLUDED.destination,
		    start_date  = EXCLUDED.start_date,
		    end_date    = EXCLUDED.end_date,
		    document    = EXCLUDED.document,
		    updated_at  = now()
		RETURNING document, created_at, updated_at`

	doc, err := json.Marshal(it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Put: encode: %w: %w", domain.ErrPersistence, err)
	}

	args := pgx.NamedArgs{
		"id":          it.ID,
		"title":       it.Title,
		"destination": it.Destination,
		"start_date":  it.StartDate,
		"end_date":    it.EndDate,
		"document":    doc,
	}

	result, err := scanItinerary(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Put: %w", err)
	}
	return result, nil
}

// GetByID retrieves an itinerary by primary key.
func (r *pgItineraryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	const q = `
		SELECT document, created_at, updated_at
		FROM itineraries
		WHERE id = @id`

	result, err := scanItinerary(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all itineraries ordered by start_date descending.
func (r *pgItineraryRepo) List(ctx context.Context) ([]domain.Itinerary, error) {
	const q = `
		SELECT document, created_at, updated_at
		FROM itineraries
		ORDER BY start_date DESC, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.List: %w: %w", domain.ErrPersistence, err)
	}
	out, err := collectItineraries(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.List: %w", err)
	}
	return out, nil
}

// ListPaged returns one page ordered by start_date descending and the total count.
func (r *pgItineraryRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	const countQ = `SELECT count(*) FROM itineraries`
	const q = `
		SELECT document, created_at, updated_at
		FROM itineraries
		ORDER BY start_date DESC, id
		LIMIT @limit OFFSET @offset`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: count: %w: %w", domain.ErrPersistence, err)
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: %w: %w", domain.ErrPersistence, err)
	}
	out, err := collectItineraries(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: %w", err)
	}
	return out, total, nil
}

// Delete removes an itinerary by primary key.
func (r *pgItineraryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM itineraries WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w: %w", domain.ErrPersistence, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func collectItineraries(rows pgx.Rows) ([]domain.Itinerary, error) {
	defer rows.Close()

	out := []domain.Itinerary{}
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w: %w", domain.ErrPersistence, err)
	}
	return out, nil
}

// scanItinerary decodes the document column and overlays the row timestamps.
func scanItinerary(s scanner) (domain.Itinerary, error) {
	var (
		doc                  []byte
		createdAt, updatedAt time.Time
	)
	if err := s.Scan(&doc, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Itinerary{}, domain.ErrNotFound
		}
		return domain.Itinerary{}, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	var it domain.Itinerary
	if err := json.Unmarshal(doc, &it); err != nil {
		return domain.Itinerary{}, fmt.Errorf("%w: decode document: %w", domain.ErrPersistence, err)
	}
	it.CreatedAt, it.UpdatedAt = createdAt.UTC(), updatedAt.UTC()
	return it, nil
}
