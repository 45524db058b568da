// Package config provides Viper-based hierarchical configuration:
// defaults, then an optional config.yaml, then DOHODI_* environment
// variables.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Statement struct {
		// Source is the default statement location: a file path or URL.
		Source string `mapstructure:"source" yaml:"source"`
		// SuccessStatus is the status marker of a settled operation.
		SuccessStatus string `mapstructure:"success_status" yaml:"success_status"`
	} `mapstructure:"statement" yaml:"statement"`

	Export struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"export" yaml:"export"`

	Files struct {
		Rules    string `mapstructure:"rules" yaml:"rules"`
		Settings string `mapstructure:"settings" yaml:"settings"`
	} `mapstructure:"files" yaml:"files"`

	AI struct {
		Model  string `mapstructure:"model" yaml:"model"`
		APIKey string `mapstructure:"api_key" yaml:"-"` // Never serialize the API key
	} `mapstructure:"ai" yaml:"ai"`
}

// Load initializes Viper configuration with hierarchical loading.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.dohodi")
	v.AddConfigPath(".dohodi")
	v.AddConfigPath(".")

	v.SetEnvPrefix("DOHODI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Keep going with defaults and env vars.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The API key always comes from the unprefixed env var.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("statement.source", "operations.csv")
	v.SetDefault("statement.success_status", "OK")

	v.SetDefault("export.delimiter", ",")

	v.SetDefault("files.rules", "rules.yaml")
	v.SetDefault("files.settings", "budget.yaml")

	v.SetDefault("ai.model", "gemini-2.0-flash")
}

func validate(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}
	if len(config.Export.Delimiter) != 1 {
		return fmt.Errorf("export delimiter must be a single character, got: %s", config.Export.Delimiter)
	}
	if config.Statement.SuccessStatus == "" {
		return fmt.Errorf("statement success status must not be empty")
	}
	return nil
}

// ConfigureLogging builds a logrus logger from the Log section.
func ConfigureLogging(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	return logger
}
