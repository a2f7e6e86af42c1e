package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pkordes/tripplanner/internal/carbon"
	"github.com/pkordes/tripplanner/internal/domain"
)

type activityOutput struct {
	Activity     domain.Activity `json:"activity"`
	CarbonLevel  string          `json:"carbon_level"`
	Day          domain.Day      `json:"day"`
	IsOverBudget bool            `json:"is_over_budget"`
}

// resolveDay accepts either a day id or a calendar date within the trip.
func (a *app) resolveDay(ctx context.Context, id uuid.UUID, ref string) (uuid.UUID, error) {
	if ref == "" {
		return uuid.Nil, fmt.Errorf("%w: --day is required", domain.ErrValidation)
	}
	if dayID, err := uuid.Parse(ref); err == nil {
		return dayID, nil
	}
	date, err := domain.ParseDate(ref)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: --day must be a day id or YYYY-MM-DD, got %q", domain.ErrValidation, ref)
	}
	it, err := a.itineraries.Get(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	day := it.DayByDate(date)
	if day == nil {
		return uuid.Nil, fmt.Errorf("%w: no day on %s", domain.ErrNotFound, ref)
	}
	return day.ID, nil
}

func newAddActivityCmd(a *app) *cobra.Command {
	var (
		day, title, typ, start, end, description string
		cost                                     float64
		weatherSensitive                         bool
		loc                                      domain.Location
	)

	cmd := &cobra.Command{
		Use:   "add-activity <itinerary-id>",
		Short: "Schedule an activity on a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID("itinerary id", args[0])
			if err != nil {
				return err
			}
			dayID, err := a.resolveDay(ctx, id, day)
			if err != nil {
				return err
			}
			startTime, err := domain.ParseClock(start)
			if err != nil {
				return err
			}
			endTime, err := domain.ParseClock(end)
			if err != nil {
				return err
			}

			res, err := a.itineraries.AddActivity(ctx, id, dayID, domain.ActivityInput{
				Title:            title,
				Type:             domain.ActivityType(typ),
				Location:         loc,
				Start:            startTime,
				End:              endTime,
				Description:      description,
				Cost:             cost,
				WeatherSensitive: weatherSensitive,
			})
			if err != nil {
				return err
			}
			if res.IsOverBudget {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s is over its daily budget\n", res.Day.Date.Format(domain.DateLayout))
			}
			return render(cmd.OutOrStdout(), a.output, activityOutput{
				Activity:     res.Activity,
				CarbonLevel:  string(carbon.ActivityCategory(res.Activity.CarbonFootprint)),
				Day:          res.Day,
				IsOverBudget: res.IsOverBudget,
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&day, "day", "", "day id or date (YYYY-MM-DD)")
	f.StringVar(&title, "title", "", "activity title")
	f.StringVar(&typ, "type", string(domain.ActivitySightseeing), "activity type")
	f.StringVar(&start, "start", "", "start time (HH:MM)")
	f.StringVar(&end, "end", "", "end time (HH:MM)")
	f.StringVar(&description, "description", "", "free-form notes")
	f.Float64Var(&cost, "cost", 0, "cost in the trip currency")
	f.BoolVar(&weatherSensitive, "weather-sensitive", false, "flag the activity for weather warnings")
	f.StringVar(&loc.Name, "location", "", "location name")
	f.StringVar(&loc.Address, "address", "", "location address")
	f.Float64Var(&loc.Lat, "lat", 0, "location latitude")
	f.Float64Var(&loc.Lng, "lng", 0, "location longitude")
	return cmd
}

func newRemoveActivityCmd(a *app) *cobra.Command {
	var day, activity string

	cmd := &cobra.Command{
		Use:   "remove-activity <itinerary-id>",
		Short: "Remove an activity from a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID("itinerary id", args[0])
			if err != nil {
				return err
			}
			dayID, err := a.resolveDay(ctx, id, day)
			if err != nil {
				return err
			}
			activityID, err := parseID("--activity", activity)
			if err != nil {
				return err
			}
			d, err := a.itineraries.RemoveActivity(ctx, id, dayID, activityID)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.output, d)
		},
	}
	cmd.Flags().StringVar(&day, "day", "", "day id or date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&activity, "activity", "", "activity id")
	return cmd
}
