// Package export implements the ledger CSV export command.
package export

import (
	"fmt"

	"github.com/reflaxess123/dohodi/cmd/root"
	csvexport "github.com/reflaxess123/dohodi/internal/export"

	"github.com/spf13/cobra"
)

var (
	outputFile   string
	filteredOnly bool
)

// Cmd is the export command.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the classified ledger as CSV",
	Long: `Writes the full ledger, audit columns included (filter flag, filter
reason, pool), to a CSV file. With --counted-only, excluded
transactions are omitted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if outputFile == "" {
			return fmt.Errorf("output file is required")
		}

		led, err := root.BuildLedger(cmd.Context())
		if err != nil {
			return err
		}

		transactions := led.Transactions()
		if filteredOnly {
			transactions = led.Filtered()
		}

		writer := csvexport.NewWriter([]rune(root.Cfg.Export.Delimiter)[0], root.Log)
		if err := writer.WriteFile(transactions, outputFile); err != nil {
			return err
		}
		fmt.Printf("Wrote %d transactions to %s\n", len(transactions), outputFile)
		return nil
	},
}

func init() {
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output CSV file")
	Cmd.Flags().BoolVar(&filteredOnly, "counted-only", false, "Export only transactions that count toward totals")
}
