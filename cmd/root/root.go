// Package root contains the root command and the shared wiring used by
// every subcommand.
package root

import (
	"context"
	"fmt"

	"github.com/reflaxess123/dohodi/internal/config"
	"github.com/reflaxess123/dohodi/internal/ledger"
	"github.com/reflaxess123/dohodi/internal/logging"
	"github.com/reflaxess123/dohodi/internal/statement"
	"github.com/reflaxess123/dohodi/internal/store"

	"github.com/spf13/cobra"
)

// CommonFlags holds the flags shared by all commands.
type CommonFlags struct {
	Input    string
	Rules    string
	Settings string
	LogLevel string
}

var (
	// Log is the shared logger instance for commands.
	Log = logging.NewLogrusAdapter("info", "text")

	// Cfg is the loaded application configuration.
	Cfg *config.Config

	// SharedFlags are the persistent flags available to every command.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "dohodi",
		Short: "A budget ledger over a bank statement export.",
		Long: `dohodi parses a semicolon-delimited bank statement export into a
categorized ledger and aggregates it over salary months (the 23rd of
one month through the 22nd of the next) to drive a daily spending
allowance.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to dohodi!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if SharedFlags.LogLevel != "" {
				cfg.Log.Level = SharedFlags.LogLevel
			}
			Cfg = cfg
			Log = logging.NewLogrusAdapterFromLogger(config.ConfigureLogging(cfg))
			return nil
		},
	}
)

// Init registers the persistent flags on the root command.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Statement file path or URL (overrides config)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Rules, "rules", "", "Classification rules YAML file")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Settings, "settings", "", "Budget settings YAML file")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// OpenStore builds the YAML store from flags and config.
func OpenStore() *store.Store {
	rulesFile := SharedFlags.Rules
	if rulesFile == "" {
		rulesFile = Cfg.Files.Rules
	}
	settingsFile := SharedFlags.Settings
	if settingsFile == "" {
		settingsFile = Cfg.Files.Settings
	}
	return store.New(rulesFile, settingsFile, Log)
}

// BuildLedger loads rules and settings, parses the statement source,
// and returns the populated ledger.
func BuildLedger(ctx context.Context) (*ledger.Ledger, error) {
	st := OpenStore()

	rules, err := st.LoadRules()
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}
	settings, err := st.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	parser := statement.New(rules, Cfg.Statement.SuccessStatus, Log)
	led := ledger.New(settings, parser, Log)

	source := SharedFlags.Input
	if source == "" {
		source = Cfg.Statement.Source
	}
	if err := led.LoadSource(ctx, source); err != nil {
		return nil, fmt.Errorf("loading statement: %w", err)
	}
	return led, nil
}
