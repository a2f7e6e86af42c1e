package gateway_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripplanner/internal/gateway"
	"github.com/pkordes/tripplanner/testutil"
)

// ---- fake redis ------------------------------------------------------------

// fakeRedis implements the two commands CachedSource issues. Any other call
// panics on the nil embedded interface.
type fakeRedis struct {
	redis.Cmdable

	mu      sync.Mutex
	data    map[string]string
	ttls    map[string]time.Duration
	failGet error
	failSet error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSet != nil {
		return redis.NewStatusResult("", f.failSet)
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

// countingSource returns the same activities on every call and counts calls.
func countingSource(raws []gateway.RawActivity, err error) (*mockSource, *atomic.Int32) {
	var calls atomic.Int32
	return &mockSource{
		byName: func(context.Context, string) ([]gateway.RawActivity, error) {
			calls.Add(1)
			return raws, err
		},
		byCoords: func(context.Context, float64, float64, float64) ([]gateway.RawActivity, error) {
			calls.Add(1)
			return raws, err
		},
	}, &calls
}

// ---- CachedSource ----------------------------------------------------------

func TestCachedSource_SecondLookupHitsCache(t *testing.T) {
	rdb := newFakeRedis()
	inner, calls := countingSource([]gateway.RawActivity{{Title: "Alhambra Visit"}}, nil)
	c := gateway.NewCachedSource(inner, rdb, time.Hour, discardLogger())

	first, err := c.ActivitiesByDestinationName(context.Background(), " Granada ")
	require.NoError(t, err)
	second, err := c.ActivitiesByDestinationName(context.Background(), "granada")
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, first[0].Title, second[0].Title)
	assert.Equal(t, time.Hour, rdb.ttls["suggest:name:granada"])
}

func TestCachedSource_CoordinateKeyRounding(t *testing.T) {
	rdb := newFakeRedis()
	inner, calls := countingSource([]gateway.RawActivity{{Title: "Harbour Walk"}}, nil)
	c := gateway.NewCachedSource(inner, rdb, time.Minute, discardLogger())

	_, err := c.ActivitiesByCoordinates(context.Background(), -33.856789, 151.215312, 5)
	require.NoError(t, err)
	_, err = c.ActivitiesByCoordinates(context.Background(), -33.856791, 151.215298, 5)
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Contains(t, rdb.data, "suggest:coords:-33.8568:151.2153:5")
}

func TestCachedSource_EmptyResultsNotCached(t *testing.T) {
	rdb := newFakeRedis()
	inner, calls := countingSource(nil, nil)
	c := gateway.NewCachedSource(inner, rdb, time.Minute, discardLogger())

	for range 2 {
		got, err := c.ActivitiesByDestinationName(context.Background(), "Nowhere")
		require.NoError(t, err)
		assert.Empty(t, got)
	}
	assert.Equal(t, int32(2), calls.Load())
	assert.Empty(t, rdb.data)
}

func TestCachedSource_InnerErrorPassesThrough(t *testing.T) {
	boom := errors.New("upstream down")
	inner, _ := countingSource(nil, boom)
	c := gateway.NewCachedSource(inner, newFakeRedis(), time.Minute, discardLogger())

	_, err := c.ActivitiesByDestinationName(context.Background(), "Oslo")
	assert.ErrorIs(t, err, boom)
}

func TestCachedSource_CancelledCallerDoesNotCancelSharedLoad(t *testing.T) {
	rdb := newFakeRedis()
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	var loadErr atomic.Value
	inner := &mockSource{
		byName: func(ctx context.Context, _ string) ([]gateway.RawActivity, error) {
			calls.Add(1)
			close(entered)
			<-release
			loadErr.Store(fmt.Sprint(ctx.Err()))
			return []gateway.RawActivity{{Title: "Fado Night"}}, nil
		},
	}
	c := gateway.NewCachedSource(inner, rdb, time.Minute, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ActivitiesByDestinationName(ctx, "Lisbon")
	assert.ErrorIs(t, err, context.Canceled)

	<-entered
	close(release)
	require.Eventually(t, func() bool {
		rdb.mu.Lock()
		defer rdb.mu.Unlock()
		_, ok := rdb.data["suggest:name:lisbon"]
		return ok
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "<nil>", loadErr.Load())

	got, err := c.ActivitiesByDestinationName(context.Background(), "Lisbon")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Fado Night", got[0].Title)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCachedSource_CacheFailuresAreBypassed(t *testing.T) {
	rdb := newFakeRedis()
	rdb.failGet = errors.New("connection reset")
	rdb.failSet = errors.New("connection reset")
	inner, calls := countingSource([]gateway.RawActivity{{Title: "Fjord Cruise"}}, nil)
	c := gateway.NewCachedSource(inner, rdb, time.Minute, discardLogger())

	got, err := c.ActivitiesByDestinationName(context.Background(), "Oslo")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCachedSource_UnreadableEntryIsReloaded(t *testing.T) {
	rdb := newFakeRedis()
	rdb.data["suggest:name:oslo"] = "{not json"
	inner, calls := countingSource([]gateway.RawActivity{{Title: "Fjord Cruise"}}, nil)
	c := gateway.NewCachedSource(inner, rdb, time.Minute, discardLogger())

	got, err := c.ActivitiesByDestinationName(context.Background(), "Oslo")

	require.NoError(t, err)
	assert.Equal(t, "Fjord Cruise", got[0].Title)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := gateway.NewRedisClient("not-a-redis-url")
	assert.Error(t, err)
}

// ---- real redis (opt-in) ---------------------------------------------------

func TestCachedSource_RealRedis(t *testing.T) {
	rdb := testutil.NewRedis(t)
	inner, calls := countingSource([]gateway.RawActivity{{Title: "Sagrada Familia"}}, nil)
	c := gateway.NewCachedSource(inner, rdb, time.Minute, discardLogger())
	ctx := context.Background()

	first, err := c.ActivitiesByDestinationName(ctx, "Barcelona")
	require.NoError(t, err)
	second, err := c.ActivitiesByDestinationName(ctx, "Barcelona")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load())

	ttl, err := rdb.TTL(ctx, "suggest:name:barcelona").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
