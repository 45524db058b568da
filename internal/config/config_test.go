package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp isolates Load from any config.yaml in the working tree.
func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
	t.Setenv("HOME", dir)
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "operations.csv", cfg.Statement.Source)
	assert.Equal(t, "OK", cfg.Statement.SuccessStatus)
	assert.Equal(t, ",", cfg.Export.Delimiter)
	assert.Equal(t, "rules.yaml", cfg.Files.Rules)
	assert.Equal(t, "budget.yaml", cfg.Files.Settings)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
}

func TestLoadEnvOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DOHODI_LOG_LEVEL", "debug")
	t.Setenv("DOHODI_STATEMENT_SUCCESS_STATUS", "DONE")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "DONE", cfg.Statement.SuccessStatus)
	assert.Equal(t, "test-key", cfg.AI.APIKey)
}

func TestLoadConfigFile(t *testing.T) {
	chdirTemp(t)
	content := "log:\n  level: warn\nexport:\n  delimiter: \";\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(".", "config.yaml"), []byte(content), 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, ";", cfg.Export.Delimiter)
	// Untouched keys keep their defaults.
	assert.Equal(t, "OK", cfg.Statement.SuccessStatus)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Log.Level = "info"
		cfg.Log.Format = "text"
		cfg.Export.Delimiter = ","
		cfg.Statement.SuccessStatus = "OK"
		return cfg
	}

	assert.NoError(t, validate(valid()))

	cfg := valid()
	cfg.Log.Level = "verbose"
	assert.Error(t, validate(cfg))

	cfg = valid()
	cfg.Log.Format = "xml"
	assert.Error(t, validate(cfg))

	cfg = valid()
	cfg.Export.Delimiter = ";;"
	assert.Error(t, validate(cfg))

	cfg = valid()
	cfg.Statement.SuccessStatus = ""
	assert.Error(t, validate(cfg))
}

func TestConfigureLogging(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLogging(cfg)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	cfg.Log.Level = "not-a-level"
	cfg.Log.Format = "text"
	logger = ConfigureLogging(cfg)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}
