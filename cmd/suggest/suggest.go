// Package suggest implements the AI category suggestion command.
package suggest

import (
	"fmt"

	"github.com/reflaxess123/dohodi/cmd/root"
	"github.com/reflaxess123/dohodi/internal/logging"
	"github.com/reflaxess123/dohodi/internal/models"
	aisuggest "github.com/reflaxess123/dohodi/internal/suggest"

	"github.com/spf13/cobra"
)

var limit int

// Cmd is the suggest command.
var Cmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest categories for unbucketed expenses via Gemini",
	Long: `Finds counted expenses that landed in the catch-all pool and asks the
Gemini API which configured category fits their merchant description.
Requires GEMINI_API_KEY. Suggestions are printed, never applied
automatically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		led, err := root.BuildLedger(cmd.Context())
		if err != nil {
			return err
		}

		st := root.OpenStore()
		rules, err := st.LoadRules()
		if err != nil {
			return err
		}
		known := append(append([]string{}, rules.DailyCategories...), rules.MonthlyCategories...)

		suggester, err := aisuggest.NewGeminiSuggester(cmd.Context(), root.Cfg.AI.APIKey, root.Cfg.AI.Model, root.Log)
		if err != nil {
			return err
		}
		defer func() {
			_ = suggester.Close()
		}()

		suggested := 0
		for _, tx := range led.Filtered() {
			if suggested >= limit {
				break
			}
			if tx.Type != models.TxExpense || tx.Pool != models.PoolOther {
				continue
			}

			category, err := suggester.Suggest(cmd.Context(), tx, known)
			if err != nil {
				root.Log.WithError(err).Warn("Suggestion failed",
					logging.Field{Key: "description", Value: tx.Description})
				continue
			}
			fmt.Printf("%s  %s  ->  %s\n", tx.Date.Format("02.01.2006"), tx.Description, category)
			suggested++
		}
		if suggested == 0 {
			fmt.Println("Nothing to suggest.")
		}
		return nil
	},
}

func init() {
	Cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of suggestions")
}
