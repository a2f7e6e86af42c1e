// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server and the CLI.
// Values are populated by Load or LoadCLI from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required by Load.
	DatabaseURL string

	// StorePath is the bbolt file used by the CLI. Defaults to "tripplanner.db".
	StorePath string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// RedisURL enables the suggestion cache when set.
	RedisURL string

	// SuggestionCacheTTL is how long cached suggestions live. Defaults to 1h.
	SuggestionCacheTTL time.Duration

	// ActivitiesAPIURL and ActivitiesAPIToken configure the remote activity
	// provider. An empty URL leaves only the built-in catalog.
	ActivitiesAPIURL   string
	ActivitiesAPIToken string

	// WeatherAPIURL and WeatherAPIKey configure the forecast provider.
	// An empty URL disables forecasts.
	WeatherAPIURL string
	WeatherAPIKey string

	// GatewayTimeout bounds each outbound provider call. Defaults to 5s.
	GatewayTimeout time.Duration

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// RateLimitPerMinute is the per-IP request budget. Defaults to 300.
	RateLimitPerMinute int
}

// Load reads configuration for the API server. A .env file in the working
// directory is honoured; real environment variables take precedence.
// Returns an error listing any required variables that are not set or
// values that do not parse.
func Load() (Config, error) {
	cfg, problems := load()

	if cfg.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL is required")
	}

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// LoadCLI reads configuration for tripctl, which stores itineraries in a
// local file and therefore does not need DATABASE_URL.
func LoadCLI() (Config, error) {
	cfg, problems := load()
	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

func load() (Config, []string) {
	_ = godotenv.Load()

	var problems []string
	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		StorePath:          getEnv("STORE_PATH", "tripplanner.db"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		RedisURL:           os.Getenv("REDIS_URL"),
		ActivitiesAPIURL:   strings.TrimRight(os.Getenv("ACTIVITIES_API_URL"), "/"),
		ActivitiesAPIToken: os.Getenv("ACTIVITIES_API_TOKEN"),
		WeatherAPIURL:      strings.TrimRight(os.Getenv("WEATHER_API_URL"), "/"),
		WeatherAPIKey:      os.Getenv("WEATHER_API_KEY"),
	}

	var err error
	if cfg.SuggestionCacheTTL, err = getDuration("SUGGESTION_CACHE_TTL", time.Hour); err != nil {
		problems = append(problems, err.Error())
	}
	if cfg.GatewayTimeout, err = getDuration("GATEWAY_TIMEOUT", 5*time.Second); err != nil {
		problems = append(problems, err.Error())
	}
	maxBody, err := getInt("MAX_BODY_BYTES", 1<<20)
	if err != nil {
		problems = append(problems, err.Error())
	}
	cfg.MaxBodyBytes = int64(maxBody)
	if cfg.RateLimitPerMinute, err = getInt("RATE_LIMIT_PER_MINUTE", 300); err != nil {
		problems = append(problems, err.Error())
	}
	return cfg, problems
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration accepts Go durations ("90s", "1h") or a bare number of seconds.
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d, nil
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second, nil
	}
	return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v)
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
