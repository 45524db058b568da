// Package store persists the small user-adjustable documents: the
// classification rules and the budget settings. Both round-trip through
// YAML files; transactions are never persisted, they are re-derived from
// the source statement on every load.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/reflaxess123/dohodi/internal/classify"
	"github.com/reflaxess123/dohodi/internal/logging"
	"github.com/reflaxess123/dohodi/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Store manages loading and saving of the rules and settings files.
type Store struct {
	RulesFile    string
	SettingsFile string
	logger       logging.Logger
}

// New creates a Store for the given file names. Empty names fall back to
// rules.yaml and budget.yaml.
func New(rulesFile, settingsFile string, logger logging.Logger) *Store {
	if rulesFile == "" {
		rulesFile = "rules.yaml"
	}
	if settingsFile == "" {
		settingsFile = "budget.yaml"
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Store{
		RulesFile:    rulesFile,
		SettingsFile: settingsFile,
		logger:       logger,
	}
}

// LoadRules reads the classification rules. A missing file is not an
// error: the shipped defaults are returned instead.
func (s *Store) LoadRules() (classify.Rules, error) {
	path, err := s.findConfigFile(s.RulesFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("Rules file not found, using defaults",
				logging.Field{Key: logging.FieldFile, Value: s.RulesFile})
			return classify.DefaultRules(), nil
		}
		return classify.Rules{}, fmt.Errorf("error resolving rules file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return classify.Rules{}, fmt.Errorf("error reading rules file: %w", err)
	}

	var rules classify.Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return classify.Rules{}, fmt.Errorf("error parsing rules file: %w", err)
	}
	return rules, nil
}

// SaveRules writes the classification rules back to disk.
func (s *Store) SaveRules(rules classify.Rules) error {
	return s.saveYAML(s.RulesFile, rules)
}

// settingsDoc is the YAML shape of the budget settings. Amounts are
// stored as plain strings so the document round-trips exactly without
// depending on YAML decoding into decimal values.
type settingsDoc struct {
	DeclaredIncome    string            `yaml:"declared_income"`
	MandatoryPayments map[string]string `yaml:"mandatory_payments"`
	DailyTarget       string            `yaml:"daily_target"`
	DebtTotal         string            `yaml:"debt_total"`
	DebtPaid          string            `yaml:"debt_paid"`
	FoodPoolBudget    string            `yaml:"food_pool_budget"`
	MonthlyPoolBudget string            `yaml:"monthly_pool_budget"`
}

// LoadSettings reads the budget settings. A missing file yields the
// static defaults, not an error.
func (s *Store) LoadSettings() (models.BudgetSettings, error) {
	path, err := s.findConfigFile(s.SettingsFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("Settings file not found, using defaults",
				logging.Field{Key: logging.FieldFile, Value: s.SettingsFile})
			return models.DefaultBudgetSettings(), nil
		}
		return models.BudgetSettings{}, fmt.Errorf("error resolving settings file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.BudgetSettings{}, fmt.Errorf("error reading settings file: %w", err)
	}

	var doc settingsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return models.BudgetSettings{}, fmt.Errorf("error parsing settings file: %w", err)
	}
	return settingsFromDoc(doc)
}

// SaveSettings writes the budget settings back to disk, replacing the
// whole document.
func (s *Store) SaveSettings(settings models.BudgetSettings) error {
	return s.saveYAML(s.SettingsFile, docFromSettings(settings))
}

func docFromSettings(settings models.BudgetSettings) settingsDoc {
	payments := make(map[string]string, len(settings.MandatoryPayments))
	for name, amount := range settings.MandatoryPayments {
		payments[name] = amount.String()
	}
	return settingsDoc{
		DeclaredIncome:    settings.DeclaredIncome.String(),
		MandatoryPayments: payments,
		DailyTarget:       settings.DailyTarget.String(),
		DebtTotal:         settings.DebtTotal.String(),
		DebtPaid:          settings.DebtPaid.String(),
		FoodPoolBudget:    settings.FoodPoolBudget.String(),
		MonthlyPoolBudget: settings.MonthlyPoolBudget.String(),
	}
}

func settingsFromDoc(doc settingsDoc) (models.BudgetSettings, error) {
	settings := models.BudgetSettings{
		MandatoryPayments: make(map[string]decimal.Decimal, len(doc.MandatoryPayments)),
	}

	var err error
	parse := func(field, value string) decimal.Decimal {
		if value == "" {
			return decimal.Zero
		}
		amount, perr := decimal.NewFromString(value)
		if perr != nil && err == nil {
			err = fmt.Errorf("invalid %s %q: %w", field, value, perr)
		}
		return amount
	}

	settings.DeclaredIncome = parse("declared_income", doc.DeclaredIncome)
	settings.DailyTarget = parse("daily_target", doc.DailyTarget)
	settings.DebtTotal = parse("debt_total", doc.DebtTotal)
	settings.DebtPaid = parse("debt_paid", doc.DebtPaid)
	settings.FoodPoolBudget = parse("food_pool_budget", doc.FoodPoolBudget)
	settings.MonthlyPoolBudget = parse("monthly_pool_budget", doc.MonthlyPoolBudget)
	for name, value := range doc.MandatoryPayments {
		settings.MandatoryPayments[name] = parse("mandatory_payments."+name, value)
	}
	return settings, err
}

func (s *Store) saveYAML(filename string, doc interface{}) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error serializing %s: %w", filename, err)
	}

	path, err := s.findConfigFile(filename)
	if err != nil {
		// New file: write next to the working directory.
		path = filename
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	s.logger.Debug("Saved config file",
		logging.Field{Key: logging.FieldFile, Value: path})
	return nil
}

// findConfigFile looks for a configuration file in standard locations:
// the path itself, ./config/, then ~/.config/dohodi/.
func (s *Store) findConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "dohodi", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}
