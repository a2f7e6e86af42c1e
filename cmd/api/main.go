// Package main is the entry point for the trip planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for goose
	"github.com/pressly/goose/v3"

	"github.com/pkordes/tripplanner/internal/config"
	"github.com/pkordes/tripplanner/internal/gateway"
	"github.com/pkordes/tripplanner/internal/handler"
	"github.com/pkordes/tripplanner/internal/metrics"
	"github.com/pkordes/tripplanner/internal/middleware"
	"github.com/pkordes/tripplanner/internal/planner"
	"github.com/pkordes/tripplanner/internal/repo"
	"github.com/pkordes/tripplanner/internal/service"
	"github.com/pkordes/tripplanner/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	if err := migrate(context.Background(), cfg.DatabaseURL); err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Suggestion providers ---------------------------------------------
	m := metrics.New()
	settings := gateway.Settings{
		ActivitiesURL:   cfg.ActivitiesAPIURL,
		ActivitiesToken: cfg.ActivitiesAPIToken,
		WeatherURL:      cfg.WeatherAPIURL,
		WeatherKey:      cfg.WeatherAPIKey,
		Timeout:         cfg.GatewayTimeout,
		CacheTTL:        cfg.SuggestionCacheTTL,
		Failures:        m.GatewayFailures,
	}
	if cfg.RedisURL != "" {
		rdb, err := gateway.NewRedisClient(cfg.RedisURL)
		if err != nil {
			// Suggestions still work uncached.
			slog.Warn("suggestion cache disabled", "error", err)
		} else {
			defer rdb.Close()
			settings.Redis = rdb
			slog.Info("suggestion cache enabled", "ttl", cfg.SuggestionCacheTTL.String())
		}
	}
	chain, weather := gateway.Assemble(logger, settings)

	// --- Services ---------------------------------------------------------
	store := repo.NewItineraryRepo(pool)
	itineraries := service.NewItineraryService(store, planner.New(), logger)
	suggestions := service.NewSuggestionService(chain, weather, store, logger)
	export := service.NewExportService(store, logger)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer,
	// then CORS, rate limit, body limit and metrics.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Use(middleware.NewMetricsHandler(m))

	r.Handle("/metrics", m.Handler())
	r.Mount("/", handler.Handler(handler.NewServer(itineraries, suggestions, export, logger)))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies pending goose migrations over a short-lived database/sql
// connection; the pool is opened afterwards.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	for _, res := range results {
		slog.Info("migration applied", "version", res.Source.Version, "duration", res.Duration.String())
	}
	return nil
}
