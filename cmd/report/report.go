// Package report implements the per-period breakdown command.
package report

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/reflaxess123/dohodi/cmd/root"
	"github.com/reflaxess123/dohodi/internal/ledger"

	"github.com/spf13/cobra"
)

var showCategories bool

// Cmd is the report command.
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Show the salary-month period breakdown",
	Long: `Groups the counted transactions by salary month (23rd through 22nd)
and prints expense, income, and pool totals per period, most recent
first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		led, err := root.BuildLedger(cmd.Context())
		if err != nil {
			return err
		}

		periods := led.PeriodBreakdown()
		if len(periods) == 0 {
			fmt.Println("No transactions.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PERIOD\tEXPENSES\tINCOME\tDAILY\tMONTHLY\tMANDATORY")
		for _, period := range periods {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				period.Period,
				period.TotalExpenses.StringFixed(2),
				period.TotalIncome.StringFixed(2),
				period.DailyPoolSpent.StringFixed(2),
				period.MonthlyPoolSpent.StringFixed(2),
				period.MandatorySpent.StringFixed(2))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if showCategories {
			for _, period := range periods {
				fmt.Printf("\n%s\n", period.Period)
				printCategories(period.Categories)
			}
		}
		return nil
	},
}

func init() {
	Cmd.Flags().BoolVar(&showCategories, "categories", false, "Also print the per-period category breakdown")
}

func printCategories(categories []ledger.CategoryData) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, category := range categories {
		fmt.Fprintf(w, "  %s\t%s\t%.1f%%\t(%d)\n",
			category.Name,
			category.Amount.StringFixed(2),
			category.Percentage,
			category.Count)
	}
	_ = w.Flush()
}
