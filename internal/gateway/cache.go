package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const suggestionKeyPrefix = "suggest"

// NewRedisClient parses redisURL, applies pool settings and verifies the
// connection with a ping.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("gateway.NewRedisClient: parse url: %w", err)
	}
	opts.PoolSize = 10
	opts.MinIdleConns = 2
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolTimeout = 4 * time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("gateway.NewRedisClient: ping: %w", err)
	}
	return rdb, nil
}

// CachedSource decorates an ActivitySource with a redis cache. Entries are
// JSON arrays of RawActivity stored under "suggest:{kind}:{args}" with a
// TTL. Empty results are not cached. Cache failures are logged and the inner
// source is called as if the entry were missing; they never reach callers.
// Concurrent misses for the same key share one upstream call, which runs
// detached from any single caller's cancellation.
type CachedSource struct {
	inner  ActivitySource
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group
}

var _ ActivitySource = (*CachedSource)(nil)

// NewCachedSource wraps inner. rdb is usually a *redis.Client.
func NewCachedSource(inner ActivitySource, rdb redis.Cmdable, ttl time.Duration, logger *slog.Logger) *CachedSource {
	return &CachedSource{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

// ActivitiesByDestinationName implements ActivitySource.
func (c *CachedSource) ActivitiesByDestinationName(ctx context.Context, name string) ([]RawActivity, error) {
	key := cacheKey("name", strings.ToLower(strings.TrimSpace(name)))
	return c.cached(ctx, key, func(ctx context.Context) ([]RawActivity, error) {
		return c.inner.ActivitiesByDestinationName(ctx, name)
	})
}

// ActivitiesByCoordinates implements ActivitySource. Coordinates are keyed
// at 4 decimal places (about 11 m).
func (c *CachedSource) ActivitiesByCoordinates(ctx context.Context, lat, lng, radiusKm float64) ([]RawActivity, error) {
	key := cacheKey("coords",
		strconv.FormatFloat(lat, 'f', 4, 64),
		strconv.FormatFloat(lng, 'f', 4, 64),
		strconv.FormatFloat(radiusKm, 'f', -1, 64),
	)
	return c.cached(ctx, key, func(ctx context.Context) ([]RawActivity, error) {
		return c.inner.ActivitiesByCoordinates(ctx, lat, lng, radiusKm)
	})
}

func (c *CachedSource) cached(ctx context.Context, key string, load func(context.Context) ([]RawActivity, error)) ([]RawActivity, error) {
	if hit, ok := c.get(ctx, key); ok {
		return hit, nil
	}

	// The upstream clients carry their own timeouts.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		raws, err := load(shared)
		if err != nil {
			return nil, err
		}
		if len(raws) > 0 {
			c.set(shared, key, raws)
		}
		return raws, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]RawActivity), nil
	}
}

func (c *CachedSource) get(ctx context.Context, key string) ([]RawActivity, bool) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("suggestion cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return nil, false
	}
	var raws []RawActivity
	if err := json.Unmarshal(b, &raws); err != nil {
		c.logger.Warn("suggestion cache entry unreadable", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}
	return raws, true
}

func (c *CachedSource) set(ctx context.Context, key string, raws []RawActivity) {
	b, err := json.Marshal(raws)
	if err != nil {
		c.logger.Warn("suggestion cache encode failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.logger.Warn("suggestion cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func cacheKey(kind string, parts ...string) string {
	return suggestionKeyPrefix + ":" + kind + ":" + strings.Join(parts, ":")
}
