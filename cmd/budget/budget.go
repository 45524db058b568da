// Package budget implements the current-period stats and allowance
// command.
package budget

import (
	"fmt"

	"github.com/reflaxess123/dohodi/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd is the budget command.
var Cmd = &cobra.Command{
	Use:   "budget",
	Short: "Show current-period spend and the daily allowance",
	Long: `Computes the stats of the current salary-month period (spend per
pool, elapsed and remaining days) and the two allowance figures: the
fixed-target daily budget (floored at zero) and the pool-based daily
allowance (which may go negative to signal overspend).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		led, err := root.BuildLedger(cmd.Context())
		if err != nil {
			return err
		}

		stats := led.CurrentPeriodStats()
		projection := led.Projection(stats)
		settings := led.Settings()

		fmt.Printf("Period %s: day %d of %d, %d days remaining\n",
			stats.Period, stats.ElapsedDays, stats.PeriodLength, stats.DaysRemaining)
		fmt.Printf("Spent:   daily %s, monthly %s (mandatory %s)\n",
			stats.DailyPoolSpent.StringFixed(2),
			stats.MonthlyPoolSpent.StringFixed(2),
			stats.MandatorySpent.StringFixed(2))
		fmt.Printf("Daily budget (target %s/day): %s\n",
			settings.DailyTarget.StringFixed(2), stats.DailyBudget.StringFixed(2))
		fmt.Printf("Food pool remaining:    %s of %s\n",
			projection.FoodPoolRemaining.StringFixed(2), settings.FoodPoolBudget.StringFixed(2))
		fmt.Printf("Monthly pool remaining: %s of %s\n",
			projection.MonthlyPoolRemaining.StringFixed(2), settings.MonthlyPoolBudget.StringFixed(2))
		fmt.Printf("Effective daily allowance: %s\n",
			projection.EffectiveDailyAllowance.StringFixed(2))
		fmt.Printf("Income surplus after pools: %s\n",
			projection.SurplusOrDeficit.StringFixed(2))
		return nil
	},
}
