package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/pkordes/tripplanner/internal/domain"
)

var itinerariesBucket = []byte("itineraries")

// BoltItineraryRepo is a single-file ItineraryRepo used by the CLI.
// Keys are itinerary ids; values are JSON documents.
type BoltItineraryRepo struct {
	db  *bolt.DB
	now func() time.Time
}

var _ ItineraryRepo = (*BoltItineraryRepo)(nil)

// OpenBoltItineraryRepo opens (or creates) the store file at path and
// ensures the itineraries bucket exists.
func OpenBoltItineraryRepo(path string) (*BoltItineraryRepo, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("repo.OpenBoltItineraryRepo: %w: %w", domain.ErrPersistence, err)
		}
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("repo.OpenBoltItineraryRepo: %w: %w", domain.ErrPersistence, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(itinerariesBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenBoltItineraryRepo: %w: %w", domain.ErrPersistence, err)
	}
	return &BoltItineraryRepo{db: db, now: time.Now}, nil
}

// Close releases the file lock.
func (r *BoltItineraryRepo) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Put upserts on id. CreatedAt is kept from the first write.
func (r *BoltItineraryRepo) Put(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	if err := ctx.Err(); err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.BoltItineraryRepo.Put: %w", err)
	}
	now := r.now().UTC()
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(itinerariesBucket)
		key := it.ID[:]
		it.CreatedAt = now
		if existing := b.Get(key); existing != nil {
			var prev domain.Itinerary
			if err := json.Unmarshal(existing, &prev); err != nil {
				return err
			}
			it.CreatedAt = prev.CreatedAt
		}
		it.UpdatedAt = now
		doc, err := json.Marshal(it)
		if err != nil {
			return err
		}
		return b.Put(key, doc)
	})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.BoltItineraryRepo.Put: %w: %w", domain.ErrPersistence, err)
	}
	return r.GetByID(ctx, it.ID)
}

// GetByID retrieves an itinerary by id.
func (r *BoltItineraryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	if err := ctx.Err(); err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.BoltItineraryRepo.GetByID: %w", err)
	}
	var (
		it    domain.Itinerary
		found bool
	)
	err := r.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(itinerariesBucket).Get(id[:])
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &it)
	})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.BoltItineraryRepo.GetByID: %w: %w", domain.ErrPersistence, err)
	}
	if !found {
		return domain.Itinerary{}, fmt.Errorf("repo.BoltItineraryRepo.GetByID: %w", domain.ErrNotFound)
	}
	return it, nil
}

// List returns all itineraries ordered by start date descending, then id.
func (r *BoltItineraryRepo) List(ctx context.Context) ([]domain.Itinerary, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("repo.BoltItineraryRepo.List: %w", err)
	}
	out := []domain.Itinerary{}
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(itinerariesBucket).ForEach(func(_, v []byte) error {
			var it domain.Itinerary
			if err := json.Unmarshal(v, &it); err != nil {
				return err
			}
			out = append(out, it)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("repo.BoltItineraryRepo.List: %w: %w", domain.ErrPersistence, err)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) < 0
	})
	return out, nil
}

// ListPaged slices List. The whole bucket is read; the CLI store is small.
func (r *BoltItineraryRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	start, end := p.Window(len(all))
	return all[start:end], int64(len(all)), nil
}

// Delete removes an itinerary by id.
func (r *BoltItineraryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("repo.BoltItineraryRepo.Delete: %w", err)
	}
	var found bool
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(itinerariesBucket)
		if b.Get(id[:]) == nil {
			return nil
		}
		found = true
		return b.Delete(id[:])
	})
	if err != nil {
		return fmt.Errorf("repo.BoltItineraryRepo.Delete: %w: %w", domain.ErrPersistence, err)
	}
	if !found {
		return fmt.Errorf("repo.BoltItineraryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}
