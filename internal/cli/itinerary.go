package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkordes/tripplanner/internal/carbon"
	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/planner"
)

func newCreateItineraryCmd(a *app) *cobra.Command {
	var (
		title, destination, start, end string
		currency, pace                 string
		prefer                         []string
		b                              domain.Budget
	)

	cmd := &cobra.Command{
		Use:   "create-itinerary",
		Short: "Create an itinerary with one day per date in the range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			startDate, err := parseDateFlag("start", start)
			if err != nil {
				return err
			}
			endDate, err := parseDateFlag("end", end)
			if err != nil {
				return err
			}
			tags := make([]domain.TravelPreference, 0, len(prefer))
			for _, p := range prefer {
				tags = append(tags, domain.TravelPreference(strings.TrimSpace(p)))
			}
			b.Currency = currency

			it, err := a.itineraries.Create(cmd.Context(), planner.CreateInput{
				Title:       title,
				Destination: destination,
				StartDate:   startDate,
				EndDate:     endDate,
				Preferences: domain.TripPreferences{Preferences: tags, Pace: domain.TravelPace(pace), Budget: b},
			})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.output, it)
		},
	}

	f := cmd.Flags()
	f.StringVar(&title, "title", "", "trip title")
	f.StringVar(&destination, "destination", "", "destination name")
	f.StringVar(&start, "start", "", "first day (YYYY-MM-DD)")
	f.StringVar(&end, "end", "", "last day (YYYY-MM-DD)")
	f.StringVar(&currency, "currency", "USD", "budget currency (ISO 4217)")
	f.StringVar(&pace, "pace", string(domain.PaceModerate), "relaxed, moderate or busy")
	f.StringSliceVar(&prefer, "prefer", nil, "travel preferences, e.g. culture,food")
	f.Float64Var(&b.Total, "budget", 0, "total budget")
	f.Float64Var(&b.Accommodations, "accommodations", 0, "accommodations budget")
	f.Float64Var(&b.Transportation, "transportation", 0, "transportation budget")
	f.Float64Var(&b.Activities, "activities", 0, "activities budget")
	f.Float64Var(&b.Food, "food", 0, "food budget")
	f.Float64Var(&b.Misc, "misc", 0, "miscellaneous budget")
	return cmd
}

type listOutput struct {
	Data  []domain.Itinerary `json:"data"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
	Total int64              `json:"total"`
}

func newListCmd(a *app) *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List itineraries, latest start date first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := domain.NewPaginationParams(&page, &limit)
			its, total, err := a.itineraries.List(cmd.Context(), p)
			if err != nil {
				return err
			}
			if its == nil {
				its = []domain.Itinerary{}
			}
			return render(cmd.OutOrStdout(), a.output, listOutput{Data: its, Page: p.Page, Limit: p.Limit, Total: total})
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "page size (max 100)")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <itinerary-id>",
		Short: "Print an itinerary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("itinerary id", args[0])
			if err != nil {
				return err
			}
			it, err := a.itineraries.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.output, it)
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <itinerary-id>",
		Short: "Delete an itinerary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("itinerary id", args[0])
			if err != nil {
				return err
			}
			if err := a.itineraries.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.output, map[string]string{"deleted": id.String()})
		},
	}
}

type footprintOutput struct {
	TotalCarbonFootprint float64 `json:"total_carbon_footprint"`
	Level                string  `json:"level"`
	Display              string  `json:"display"`
}

func newRecalculateFootprintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recalculate-footprint <itinerary-id>",
		Short: "Recompute and store the trip's total carbon footprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("itinerary id", args[0])
			if err != nil {
				return err
			}
			kg, err := a.itineraries.RecalculateFootprint(cmd.Context(), id)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.output, footprintOutput{
				TotalCarbonFootprint: kg,
				Level:                string(carbon.TripCategory(kg)),
				Display:              carbon.FormatFootprint(kg),
			})
		},
	}
}
