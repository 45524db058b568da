package main

import (
	"os"
	"path/filepath"

	"github.com/reflaxess123/dohodi/cmd/budget"
	"github.com/reflaxess123/dohodi/cmd/days"
	"github.com/reflaxess123/dohodi/cmd/export"
	"github.com/reflaxess123/dohodi/cmd/report"
	"github.com/reflaxess123/dohodi/cmd/root"
	"github.com/reflaxess123/dohodi/cmd/suggest"

	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables before anything reads config.
	loadEnvSilently()

	root.Init()

	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(days.Cmd)
	root.Cmd.AddCommand(budget.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(suggest.Cmd)
}

// loadEnvSilently loads a .env file from the working directory or its
// parent, without logging. Logging is not configured yet at this point.
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
