package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/gateway"
)

func newSuggestCmd(a *app) *cobra.Command {
	var (
		itinerary string
		q         gateway.Query
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest activities for a destination, a coordinate or an itinerary",
		Example: `  tripctl suggest --destination Kyoto --currency JPY
  tripctl suggest --lat 41.9 --lng 12.5 --radius 3
  tripctl suggest --itinerary <id>`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var out []domain.SuggestedActivity
			if itinerary != "" {
				id, err := parseID("--itinerary", itinerary)
				if err != nil {
					return err
				}
				if out, err = a.suggestions.SuggestForItinerary(cmd.Context(), id); err != nil {
					return err
				}
			} else {
				f := cmd.Flags()
				q.HasCoords = f.Changed("lat") && f.Changed("lng")
				q.Currency = strings.ToUpper(q.Currency)
				out = a.suggestions.Suggest(cmd.Context(), q)
			}
			return render(cmd.OutOrStdout(), a.output, out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&itinerary, "itinerary", "", "suggest for this itinerary's destination")
	f.StringVar(&q.Destination, "destination", "", "destination name")
	f.Float64Var(&q.Lat, "lat", 0, "latitude")
	f.Float64Var(&q.Lng, "lng", 0, "longitude")
	f.Float64Var(&q.RadiusKm, "radius", gateway.DefaultRadiusKm, "search radius in km")
	f.StringVar(&q.Currency, "currency", "", "price currency")
	return cmd
}

func newWeatherWarningsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "weather-warnings <itinerary-id>",
		Short: "List weather-sensitive activities on days with a disruptive forecast",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("itinerary id", args[0])
			if err != nil {
				return err
			}
			out, err := a.suggestions.WeatherWarnings(cmd.Context(), id)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.output, out)
		},
	}
}
