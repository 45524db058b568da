package models

import (
	"github.com/shopspring/decimal"
)

// BudgetSettings holds the user-adjustable budget configuration. It is
// persisted independently of the transaction data and mutated only by
// whole-field replacement.
type BudgetSettings struct {
	DeclaredIncome    decimal.Decimal            `json:"declaredIncome"`
	MandatoryPayments map[string]decimal.Decimal `json:"mandatoryPayments"`
	DailyTarget       decimal.Decimal            `json:"dailyTarget"`
	DebtTotal         decimal.Decimal            `json:"debtTotal"`
	DebtPaid          decimal.Decimal            `json:"debtPaid"`
	FoodPoolBudget    decimal.Decimal            `json:"foodPoolBudget"`
	MonthlyPoolBudget decimal.Decimal            `json:"monthlyPoolBudget"`
}

// DefaultBudgetSettings returns the static defaults used until the user
// edits and persists their own settings.
func DefaultBudgetSettings() BudgetSettings {
	return BudgetSettings{
		DeclaredIncome: decimal.NewFromInt(150000),
		MandatoryPayments: map[string]decimal.Decimal{
			"Аренда":  decimal.NewFromInt(35000),
			"Кредит":  decimal.NewFromInt(12000),
			"Связь":   decimal.NewFromInt(900),
			"Интернет": decimal.NewFromInt(700),
		},
		DailyTarget:       decimal.NewFromInt(1000),
		DebtTotal:         decimal.Zero,
		DebtPaid:          decimal.Zero,
		FoodPoolBudget:    decimal.NewFromInt(30000),
		MonthlyPoolBudget: decimal.NewFromInt(60000),
	}
}

// MandatoryTotal sums the named mandatory payment amounts.
func (s BudgetSettings) MandatoryTotal() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range s.MandatoryPayments {
		total = total.Add(amount)
	}
	return total
}

// DebtRemaining returns the outstanding debt, never negative.
func (s BudgetSettings) DebtRemaining() decimal.Decimal {
	remaining := s.DebtTotal.Sub(s.DebtPaid)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}
