// Package days implements the per-day breakdown command.
package days

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/reflaxess123/dohodi/cmd/root"
	"github.com/reflaxess123/dohodi/internal/salarycal"

	"github.com/spf13/cobra"
)

var periodFlag string

// Cmd is the days command.
var Cmd = &cobra.Command{
	Use:   "days",
	Short: "Show the per-day breakdown of a period",
	Long: `Prints daily expense and pool totals for one salary-month period.
Without --period, the period of the most recent transaction is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		led, err := root.BuildLedger(cmd.Context())
		if err != nil {
			return err
		}

		var key salarycal.PeriodKey
		if periodFlag != "" {
			key, err = salarycal.ParsePeriodKey(periodFlag)
			if err != nil {
				return err
			}
		} else {
			key = led.CurrentPeriodStats().Period
		}

		daysData := led.DayBreakdown(key)
		if len(daysData) == 0 {
			fmt.Printf("No transactions in period %s.\n", key)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DAY\tEXPENSES\tINCOME\tDAILY\tMONTHLY\tMANDATORY")
		for _, day := range daysData {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				day.Day,
				day.TotalExpenses.StringFixed(2),
				day.TotalIncome.StringFixed(2),
				day.DailyPoolSpent.StringFixed(2),
				day.MonthlyPoolSpent.StringFixed(2),
				day.MandatorySpent.StringFixed(2))
		}
		return w.Flush()
	},
}

func init() {
	Cmd.Flags().StringVarP(&periodFlag, "period", "p", "", "Period key in YYYY-MM form")
}
