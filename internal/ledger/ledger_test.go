package ledger

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/reflaxess123/dohodi/internal/classify"
	"github.com/reflaxess123/dohodi/internal/models"
	"github.com/reflaxess123/dohodi/internal/salarycal"
	"github.com/reflaxess123/dohodi/internal/statement"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() models.BudgetSettings {
	settings := models.DefaultBudgetSettings()
	settings.DeclaredIncome = decimal.NewFromInt(100000)
	settings.DailyTarget = decimal.NewFromInt(1000)
	settings.FoodPoolBudget = decimal.NewFromInt(30000)
	settings.MonthlyPoolBudget = decimal.NewFromInt(60000)
	return settings
}

func newTestLedger(txs ...models.Transaction) *Ledger {
	led := New(testSettings(), nil, nil)
	led.Replace(txs)
	return led
}

type txOpt func(*models.Transaction)

func filtered(reason string) txOpt {
	return func(tx *models.Transaction) {
		tx.IsFiltered = true
		tx.FilterReason = reason
	}
}

func tx(day string, amount float64, category string, pool models.Pool, opts ...txOpt) models.Transaction {
	date, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	dec := decimal.NewFromFloat(amount)
	t := models.Transaction{
		ID:       day + category,
		Date:     date,
		Amount:   dec,
		Category: category,
		Type:     models.TypeForAmount(dec),
		Pool:     pool,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func TestFiltered(t *testing.T) {
	led := newTestLedger(
		tx("2025-05-10", -100, "Рестораны", models.PoolDaily),
		tx("2025-05-11", -200, "Переводы", models.PoolOther, filtered("transfers category")),
	)

	counted := led.Filtered()
	require.Len(t, counted, 1)
	assert.Equal(t, "Рестораны", counted[0].Category)

	// Excluded rows stay in the full view for audit.
	assert.Len(t, led.Transactions(), 2)
}

func TestCategoryBreakdown(t *testing.T) {
	led := newTestLedger()

	txs := []models.Transaction{
		tx("2025-05-10", -300, "Рестораны", models.PoolDaily),
		tx("2025-05-11", -100, "Супермаркеты", models.PoolDaily),
		tx("2025-05-12", -100, "Рестораны", models.PoolDaily),
	}

	breakdown := led.CategoryBreakdown(txs)
	require.Len(t, breakdown, 2)

	assert.Equal(t, "Рестораны", breakdown[0].Name)
	assert.True(t, breakdown[0].Amount.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, 2, breakdown[0].Count)
	assert.InDelta(t, 80.0, breakdown[0].Percentage, 0.001)

	assert.Equal(t, "Супермаркеты", breakdown[1].Name)
	assert.InDelta(t, 20.0, breakdown[1].Percentage, 0.001)
}

func TestCategoryBreakdownTieOrder(t *testing.T) {
	led := newTestLedger()

	// Equal amounts keep first-seen encounter order.
	txs := []models.Transaction{
		tx("2025-05-10", -100, "Б", models.PoolDaily),
		tx("2025-05-11", -100, "А", models.PoolDaily),
	}

	breakdown := led.CategoryBreakdown(txs)
	require.Len(t, breakdown, 2)
	assert.Equal(t, "Б", breakdown[0].Name)
	assert.Equal(t, "А", breakdown[1].Name)
}

func TestCategoryBreakdownZeroTotal(t *testing.T) {
	led := newTestLedger()

	txs := []models.Transaction{
		tx("2025-05-10", 0, "Прочее", models.PoolOther),
	}

	breakdown := led.CategoryBreakdown(txs)
	require.Len(t, breakdown, 1)
	assert.Zero(t, breakdown[0].Percentage)

	assert.Empty(t, led.CategoryBreakdown(nil))
}

func TestPeriodBreakdown(t *testing.T) {
	led := newTestLedger(
		// Period 2025-04: Apr 23 - May 22.
		tx("2025-05-10", -1000, "Рестораны", models.PoolDaily),
		tx("2025-05-11", -2000, "ЖКХ", models.PoolMonthly),
		tx("2025-05-12", -3000, "Кредит", models.PoolMandatory),
		tx("2025-05-13", -500, "Прочее", models.PoolOther),
		tx("2025-05-01", 75000, "Пополнения", models.PoolOther),
		// Period 2025-05 starts May 23.
		tx("2025-05-23", -700, "Рестораны", models.PoolDaily),
		// Excluded row must not count anywhere.
		tx("2025-05-14", -9999, "Переводы", models.PoolOther, filtered("transfers category")),
	)

	periods := led.PeriodBreakdown()
	require.Len(t, periods, 2)

	// Most recent first.
	assert.Equal(t, salarycal.PeriodKey{Year: 2025, Month: time.May}, periods[0].Period)
	assert.Equal(t, salarycal.PeriodKey{Year: 2025, Month: time.April}, periods[1].Period)

	april := periods[1]
	assert.True(t, april.TotalExpenses.Equal(decimal.NewFromInt(6500)))
	assert.True(t, april.TotalIncome.Equal(decimal.NewFromInt(75000)))
	assert.True(t, april.DailyPoolSpent.Equal(decimal.NewFromInt(1000)))
	// The monthly bucket merges monthly, mandatory, and other pools.
	assert.True(t, april.MonthlyPoolSpent.Equal(decimal.NewFromInt(5500)))
	// Mandatory is still tracked separately for detail views.
	assert.True(t, april.MandatorySpent.Equal(decimal.NewFromInt(3000)))

	// Categories cover expenses only.
	for _, category := range april.Categories {
		assert.NotEqual(t, "Пополнения", category.Name)
	}
}

func TestAggregateConservation(t *testing.T) {
	led := newTestLedger(
		tx("2025-05-10", -1000, "Рестораны", models.PoolDaily),
		tx("2025-05-11", -2000, "ЖКХ", models.PoolMonthly),
		tx("2025-05-12", -3000, "Кредит", models.PoolMandatory),
		tx("2025-05-13", -500, "Прочее", models.PoolOther),
	)

	for _, period := range led.PeriodBreakdown() {
		sum := period.DailyPoolSpent.Add(period.MonthlyPoolSpent)
		assert.True(t, sum.Equal(period.TotalExpenses),
			"pool split must partition expenses: %s + %s != %s",
			period.DailyPoolSpent, period.MonthlyPoolSpent, period.TotalExpenses)
	}
}

func TestPeriodSummaryEmptyKey(t *testing.T) {
	led := newTestLedger(
		tx("2025-05-10", -1000, "Рестораны", models.PoolDaily),
	)

	// An explicitly requested period with no transactions yields a
	// zero-filled entry, not an absent one.
	summary := led.PeriodSummary(salarycal.PeriodKey{Year: 2020, Month: time.January})
	assert.Equal(t, salarycal.PeriodKey{Year: 2020, Month: time.January}, summary.Period)
	assert.True(t, summary.TotalExpenses.IsZero())
	assert.True(t, summary.TotalIncome.IsZero())
	assert.Empty(t, summary.Categories)
}

func TestDayBreakdown(t *testing.T) {
	led := newTestLedger(
		tx("2025-05-10", -100, "Рестораны", models.PoolDaily),
		tx("2025-05-10", -200, "ЖКХ", models.PoolMonthly),
		tx("2025-05-12", -300, "Рестораны", models.PoolDaily),
		// Outside the requested period.
		tx("2025-05-23", -400, "Рестораны", models.PoolDaily),
	)

	daysData := led.DayBreakdown(salarycal.PeriodKey{Year: 2025, Month: time.April})
	require.Len(t, daysData, 2)

	// Most recent first.
	assert.Equal(t, "2025-05-12", daysData[0].Day)
	assert.Equal(t, "2025-05-10", daysData[1].Day)

	may10 := daysData[1]
	assert.True(t, may10.TotalExpenses.Equal(decimal.NewFromInt(300)))
	assert.True(t, may10.DailyPoolSpent.Equal(decimal.NewFromInt(100)))
	assert.True(t, may10.MonthlyPoolSpent.Equal(decimal.NewFromInt(200)))
}

func TestCurrentPeriodStats(t *testing.T) {
	// Period 2025-04 runs Apr 23 - May 22: 30 days. The most recent
	// transaction lands on May 13, day 21, leaving 10 days including
	// that day.
	led := newTestLedger(
		tx("2025-05-13", -9000, "Рестораны", models.PoolDaily),
		tx("2025-05-01", -4000, "ЖКХ", models.PoolMonthly),
	)

	stats := led.CurrentPeriodStats()
	assert.Equal(t, salarycal.PeriodKey{Year: 2025, Month: time.April}, stats.Period)
	assert.Equal(t, 30, stats.PeriodLength)
	assert.Equal(t, 21, stats.ElapsedDays)
	assert.Equal(t, 10, stats.DaysRemaining)
	assert.True(t, stats.DailyPoolSpent.Equal(decimal.NewFromInt(9000)))
	assert.True(t, stats.MonthlyPoolSpent.Equal(decimal.NewFromInt(4000)))

	// max(0, (1000*30 - 9000) / 10) = 2100
	assert.True(t, stats.DailyBudget.Equal(decimal.NewFromInt(2100)),
		"got %s", stats.DailyBudget)
}

func TestCurrentPeriodStatsClampedAtZero(t *testing.T) {
	led := newTestLedger(
		tx("2025-05-13", -40000, "Рестораны", models.PoolDaily),
	)

	stats := led.CurrentPeriodStats()
	assert.True(t, stats.DailyBudget.IsZero(), "overspend must clamp to zero, got %s", stats.DailyBudget)
}

func TestCurrentPeriodStatsEmptyLedger(t *testing.T) {
	led := newTestLedger()

	stats := led.CurrentPeriodStats()
	assert.True(t, stats.DailyPoolSpent.IsZero())
	assert.True(t, stats.MonthlyPoolSpent.IsZero())
	assert.GreaterOrEqual(t, stats.DaysRemaining, 1)
	assert.LessOrEqual(t, stats.ElapsedDays, stats.PeriodLength)
}

func TestProjection(t *testing.T) {
	led := newTestLedger(
		tx("2025-05-13", -9000, "Рестораны", models.PoolDaily),
		tx("2025-05-01", -4000, "ЖКХ", models.PoolMonthly),
	)

	stats := led.CurrentPeriodStats()
	projection := led.Projection(stats)

	// foodPoolBudget 30000 - 9000 spent = 21000 over 10 days.
	assert.True(t, projection.FoodPoolRemaining.Equal(decimal.NewFromInt(21000)))
	assert.True(t, projection.MonthlyPoolRemaining.Equal(decimal.NewFromInt(56000)))
	assert.True(t, projection.EffectiveDailyAllowance.Equal(decimal.NewFromInt(2100)))
	// 100000 - (30000 + 60000) = 10000
	assert.True(t, projection.SurplusOrDeficit.Equal(decimal.NewFromInt(10000)))
}

func TestProjectionNegativeNotClamped(t *testing.T) {
	led := newTestLedger(
		tx("2025-05-13", -35000, "Рестораны", models.PoolDaily),
	)

	stats := led.CurrentPeriodStats()
	projection := led.Projection(stats)

	// Overspend surfaces as a negative allowance: -5000 / 10 days.
	assert.True(t, projection.FoodPoolRemaining.Equal(decimal.NewFromInt(-5000)))
	assert.True(t, projection.EffectiveDailyAllowance.Equal(decimal.NewFromInt(-500)),
		"got %s", projection.EffectiveDailyAllowance)
}

func TestSetSettings(t *testing.T) {
	led := newTestLedger()

	settings := led.Settings()
	settings.DailyTarget = decimal.NewFromInt(2000)
	led.SetSettings(settings)

	assert.True(t, led.Settings().DailyTarget.Equal(decimal.NewFromInt(2000)))
}

func TestLoadSourceFailureKeepsState(t *testing.T) {
	parser := statement.New(classify.DefaultRules(), "", nil)
	led := New(testSettings(), parser, nil)
	led.Replace([]models.Transaction{
		tx("2025-05-10", -100, "Рестораны", models.PoolDaily),
	})

	err := led.LoadSource(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Error(t, led.LoadError())
	assert.Len(t, led.Transactions(), 1, "previous state must be preserved")
}

func TestLoadSourceReplacesAtomically(t *testing.T) {
	parser := statement.New(classify.DefaultRules(), "", nil)
	led := New(testSettings(), parser, nil)

	text := `"Дата операции";"Дата платежа";"Номер карты";"Статус";"Сумма операции";"Валюта операции";"Сумма платежа";"Валюта платежа";"Кэшбэк";"Категория";"MCC";"Описание"` + "\n" +
		`"22.11.2025";"22.11.2025";"*1234";"OK";"-150,50";"RUB";"-150,50";"RUB";"";"Рестораны";"5812";"Кафе Пример"`

	path := filepath.Join(t.TempDir(), "operations.csv")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))

	require.NoError(t, led.LoadSource(context.Background(), path))
	assert.NoError(t, led.LoadError())
	require.Len(t, led.Transactions(), 1)
	assert.Equal(t, "Кафе Пример", led.Transactions()[0].Description)
}
