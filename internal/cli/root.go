// Package cli implements tripctl, a command-line front end over the same
// services the HTTP server uses. Itineraries live in a local bbolt file.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/pkordes/tripplanner/internal/config"
	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/gateway"
	"github.com/pkordes/tripplanner/internal/planner"
	"github.com/pkordes/tripplanner/internal/repo"
	"github.com/pkordes/tripplanner/internal/service"
)

// app carries the global flags and the services opened for one invocation.
type app struct {
	store  string
	output string
	debug  bool

	logger      *slog.Logger
	repo        *repo.BoltItineraryRepo
	redis       *redis.Client
	itineraries *service.ItineraryService
	suggestions *service.SuggestionService
}

// Run executes tripctl with args and returns the process exit code.
// Errors are written to stderr; see ExitCode for the mapping.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if cerr := a.close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return ExitCode(err)
}

// ExitCode maps an error to the process exit status: 0 on success,
// 2 for invalid input, 3 for a missing itinerary or item, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrValidation):
		return 2
	case errors.Is(err, domain.ErrNotFound):
		return 3
	default:
		return 1
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tripctl",
		Short: "Plan trips with per-day budgets and carbon accounting",
		Long: `tripctl manages travel itineraries stored in a local file: days and
activities, lodging and transport, budgets with a per-day ceiling, and the
carbon footprint of the whole trip.`,
		Example: `  # Create a three-day trip with a 300 EUR budget
  tripctl create-itinerary --title "Paris Spring" --destination Paris \
    --start 2025-06-01 --end 2025-06-03 --budget 300 --currency EUR

  # Schedule a museum visit on the first day
  tripctl add-activity <id> --day 2025-06-01 --title Louvre --type museum \
    --start 09:30 --end 12:00 --cost 22

  # Show the trip as YAML
  tripctl show <id> -o yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.store, "store", "", "itinerary store file (default $STORE_PATH or tripplanner.db)")
	pf.StringVarP(&a.output, "output", "o", "json", "output format: json or yaml")
	pf.BoolVar(&a.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newCreateItineraryCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newDeleteCmd(a),
		newAddActivityCmd(a),
		newRemoveActivityCmd(a),
		newAddAccommodationCmd(a),
		newAddTransportationCmd(a),
		newRecalculateFootprintCmd(a),
		newSetBudgetCmd(a),
		newSuggestCmd(a),
		newWeatherWarningsCmd(a),
	)
	return cmd
}

// open reads configuration, sets up logging and opens the store.
func (a *app) open(cmd *cobra.Command) error {
	if a.output != outputJSON && a.output != outputYAML {
		return fmt.Errorf("%w: --output must be %s or %s", domain.ErrValidation, outputJSON, outputYAML)
	}
	cfg, err := config.LoadCLI()
	if err != nil {
		return err
	}
	if a.store == "" {
		a.store = cfg.StorePath
	}

	level := slog.LevelWarn
	if a.debug {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	a.repo, err = repo.OpenBoltItineraryRepo(a.store)
	if err != nil {
		return err
	}

	settings := gateway.Settings{
		ActivitiesURL:   cfg.ActivitiesAPIURL,
		ActivitiesToken: cfg.ActivitiesAPIToken,
		WeatherURL:      cfg.WeatherAPIURL,
		WeatherKey:      cfg.WeatherAPIKey,
		Timeout:         cfg.GatewayTimeout,
		CacheTTL:        cfg.SuggestionCacheTTL,
	}
	if cfg.RedisURL != "" {
		rdb, err := gateway.NewRedisClient(cfg.RedisURL)
		if err != nil {
			a.logger.Warn("suggestion cache disabled", slog.String("error", err.Error()))
		} else {
			a.redis = rdb
			settings.Redis = rdb
		}
	}
	chain, weather := gateway.Assemble(a.logger, settings)

	a.itineraries = service.NewItineraryService(a.repo, planner.New(), a.logger)
	a.suggestions = service.NewSuggestionService(chain, weather, a.repo, a.logger)
	a.logger.Debug("store opened", slog.String("path", a.store))
	return nil
}

func (a *app) close() error {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}
