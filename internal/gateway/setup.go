package gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// Settings selects which providers back the suggestion chain.
// Empty URLs disable the corresponding provider.
type Settings struct {
	ActivitiesURL   string
	ActivitiesToken string
	WeatherURL      string
	WeatherKey      string
	Timeout         time.Duration

	// Redis, when set, caches provider answers for CacheTTL.
	Redis    redis.Cmdable
	CacheTTL time.Duration

	// Failures, when set, counts failed lookups per strategy.
	Failures *prometheus.CounterVec
}

// Assemble builds the suggestion chain and the weather source described by s.
// The chain always ends with the built-in catalog. The weather source is nil
// when no weather provider is configured.
func Assemble(logger *slog.Logger, s Settings) (*Chain, WeatherSource) {
	client := &http.Client{Timeout: s.Timeout}

	var strategies []Strategy
	if s.ActivitiesURL != "" {
		var src ActivitySource = NewHTTPActivitySource(s.ActivitiesURL, s.ActivitiesToken, client)
		if s.Redis != nil {
			src = NewCachedSource(src, s.Redis, s.CacheTTL, logger)
		}
		strategies = append(strategies, ByDestinationName(src), ByCoordinates(src))
	}
	strategies = append(strategies, FromCatalog(NewStaticCatalog()))

	var opts []ChainOption
	if s.Failures != nil {
		opts = append(opts, WithFailureCounter(s.Failures))
	}
	chain := NewChain(logger, strategies, opts...)

	if s.WeatherURL == "" {
		return chain, nil
	}
	return chain, NewHTTPWeatherSource(s.WeatherURL, s.WeatherKey, client)
}
