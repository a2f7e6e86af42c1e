package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pkordes/tripplanner/internal/domain"
)

// ActivitySource is a remote suggestion provider.
type ActivitySource interface {
	ActivitiesByDestinationName(ctx context.Context, name string) ([]RawActivity, error)
	ActivitiesByCoordinates(ctx context.Context, lat, lng, radiusKm float64) ([]RawActivity, error)
}

// WeatherSource returns the forecast at a coordinate on a date. Failures
// wrap domain.ErrGatewayUnavailable.
type WeatherSource interface {
	WeatherForDate(ctx context.Context, lat, lng float64, date time.Time) (domain.Forecast, error)
}

// Strategy is one step of the suggestion fallback chain. Lookup returns
// (nil, nil) when the query does not carry what the strategy needs.
type Strategy struct {
	Name   string
	Lookup func(ctx context.Context, q Query) ([]RawActivity, error)
}

// ByDestinationName looks suggestions up by the destination's name.
func ByDestinationName(src ActivitySource) Strategy {
	return Strategy{
		Name: "destination_name",
		Lookup: func(ctx context.Context, q Query) ([]RawActivity, error) {
			if q.Destination == "" {
				return nil, nil
			}
			return src.ActivitiesByDestinationName(ctx, q.Destination)
		},
	}
}

// ByCoordinates looks suggestions up around the query origin.
func ByCoordinates(src ActivitySource) Strategy {
	return Strategy{
		Name: "coordinates",
		Lookup: func(ctx context.Context, q Query) ([]RawActivity, error) {
			if !q.HasCoords {
				return nil, nil
			}
			radius := q.RadiusKm
			if radius <= 0 {
				radius = DefaultRadiusKm
			}
			return src.ActivitiesByCoordinates(ctx, q.Lat, q.Lng, radius)
		},
	}
}

// FromCatalog always answers from the built-in catalog.
func FromCatalog(c *StaticCatalog) Strategy {
	return Strategy{
		Name: "catalog",
		Lookup: func(_ context.Context, q Query) ([]RawActivity, error) {
			return c.Activities(q), nil
		},
	}
}

// Chain tries strategies in order until one yields a non-empty result.
// A failing strategy is logged and counted, then the next one is tried.
type Chain struct {
	strategies []Strategy
	logger     *slog.Logger
	failures   *prometheus.CounterVec
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithFailureCounter counts failed lookups per strategy name. The vector
// must have a single "strategy" label.
func WithFailureCounter(cv *prometheus.CounterVec) ChainOption {
	return func(c *Chain) { c.failures = cv }
}

// NewChain builds a Chain over strategies, tried in the given order.
func NewChain(logger *slog.Logger, strategies []Strategy, opts ...ChainOption) *Chain {
	c := &Chain{strategies: strategies, logger: logger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Suggest returns normalized suggestions from the first strategy that
// produces any. It never fails: when every strategy errors or comes back
// empty the result is an empty slice.
func (c *Chain) Suggest(ctx context.Context, q Query) []domain.SuggestedActivity {
	for _, s := range c.strategies {
		raws, err := s.Lookup(ctx, q)
		if err != nil {
			c.recordFailure(s.Name, err)
			continue
		}
		if len(raws) == 0 {
			continue
		}
		out := make([]domain.SuggestedActivity, 0, len(raws))
		for _, raw := range raws {
			out = append(out, Normalize(raw, q, s.Name))
		}
		return out
	}
	return []domain.SuggestedActivity{}
}

func (c *Chain) recordFailure(strategy string, err error) {
	if !errors.Is(err, domain.ErrGatewayUnavailable) {
		err = fmt.Errorf("%w: %w", domain.ErrGatewayUnavailable, err)
	}
	c.logger.Warn("suggestion lookup failed",
		slog.String("strategy", strategy),
		slog.String("error", err.Error()),
	)
	if c.failures != nil {
		c.failures.WithLabelValues(strategy).Inc()
	}
}
