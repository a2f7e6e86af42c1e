package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/tripplanner/internal/budget"
	"github.com/pkordes/tripplanner/internal/domain"
)

func newSetBudgetCmd(a *app) *cobra.Command {
	var (
		total, amount, dailyLimit float64
		category                  string
		unlock                    bool
	)

	cmd := &cobra.Command{
		Use:   "set-budget <itinerary-id>",
		Short: "Change the trip budget or its daily limit",
		Long: `Exactly one of the following modes must be used:

  --total N                   replace the total budget
  --category NAME --amount N  set one category; the total becomes their sum
  --daily-limit N             fix the daily limit regardless of the total
  --unlock-daily-limit        derive the daily limit from the total again`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID("itinerary id", args[0])
			if err != nil {
				return err
			}

			f := cmd.Flags()
			modes := 0
			for _, name := range []string{"total", "category", "daily-limit", "unlock-daily-limit"} {
				if f.Changed(name) {
					modes++
				}
			}
			if modes != 1 {
				return fmt.Errorf("%w: use exactly one of --total, --category, --daily-limit, --unlock-daily-limit", domain.ErrValidation)
			}

			var b domain.Budget
			switch {
			case f.Changed("total"):
				b, err = a.itineraries.SetBudgetTotal(ctx, id, total)
			case f.Changed("category"):
				if !f.Changed("amount") {
					return fmt.Errorf("%w: --category needs --amount", domain.ErrValidation)
				}
				c, perr := budget.ParseCategory(category)
				if perr != nil {
					return perr
				}
				b, err = a.itineraries.UpdateBudgetCategory(ctx, id, c, amount)
			case f.Changed("daily-limit"):
				b, err = a.itineraries.SetDailyLimit(ctx, id, dailyLimit)
			default:
				b, err = a.itineraries.UnlockDailyLimit(ctx, id)
			}
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.output, b)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&total, "total", 0, "new total budget")
	f.StringVar(&category, "category", "", "accommodations, transportation, activities, food or misc")
	f.Float64Var(&amount, "amount", 0, "amount for --category")
	f.Float64Var(&dailyLimit, "daily-limit", 0, "fixed daily limit")
	f.BoolVar(&unlock, "unlock-daily-limit", false, "derive the daily limit from the total")
	return cmd
}
