package ledger

import (
	"github.com/reflaxess123/dohodi/internal/salarycal"

	"github.com/shopspring/decimal"
)

// CategoryData is one row of a category breakdown: the summed absolute
// amount for the category and its share of the total.
type CategoryData struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
	Count      int             `json:"count"`
}

// poolSums carries the per-group totals shared by the monthly and daily
// breakdowns. MonthlyPoolSpent is deliberately the complement of the
// daily pool (monthly + mandatory + other merged into one bucket);
// MandatorySpent tracks the mandatory pool alone for detail views.
// Consuming code depends on this exact split, so the two figures are
// reported side by side rather than as a clean three-way partition.
type poolSums struct {
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	DailyPoolSpent   decimal.Decimal `json:"dailyPoolSpent"`
	MonthlyPoolSpent decimal.Decimal `json:"monthlyPoolSpent"`
	MandatorySpent   decimal.Decimal `json:"mandatorySpent"`
}

// MonthlyData aggregates one salary-month period.
type MonthlyData struct {
	Period salarycal.PeriodKey `json:"period"`
	poolSums
	Categories []CategoryData `json:"categories"`
}

// DailyData aggregates one calendar day within a period.
type DailyData struct {
	Day string `json:"day"`
	poolSums
	Categories []CategoryData `json:"categories"`
}

// PeriodStats describes the current period: spend so far per pool,
// calendar position, and the fixed-target daily budget projection.
type PeriodStats struct {
	Period           salarycal.PeriodKey `json:"period"`
	PeriodLength     int                 `json:"periodLength"`
	ElapsedDays      int                 `json:"elapsedDays"`
	DaysRemaining    int                 `json:"daysRemaining"`
	DailyPoolSpent   decimal.Decimal     `json:"dailyPoolSpent"`
	MonthlyPoolSpent decimal.Decimal     `json:"monthlyPoolSpent"`
	MandatorySpent   decimal.Decimal     `json:"mandatorySpent"`
	// DailyBudget spreads the remaining fixed daily-target allowance
	// evenly over the remaining days, floored at zero.
	DailyBudget decimal.Decimal `json:"dailyBudget"`
}

// Projection is the pool-based allowance derived from the adjustable
// pool ceilings. Unlike PeriodStats.DailyBudget, the figures here are
// not clamped: a negative remaining pool legitimately produces a
// negative allowance, signaling deficit.
type Projection struct {
	FoodPoolRemaining       decimal.Decimal `json:"foodPoolRemaining"`
	MonthlyPoolRemaining    decimal.Decimal `json:"monthlyPoolRemaining"`
	EffectiveDailyAllowance decimal.Decimal `json:"effectiveDailyAllowance"`
	SurplusOrDeficit        decimal.Decimal `json:"surplusOrDeficit"`
}
