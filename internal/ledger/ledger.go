// Package ledger holds the in-memory transaction set and the budget
// settings, and computes the derived aggregates the presentation layer
// consumes. Aggregates are never stored: every query is a pure function
// of the current transaction snapshot, the settings, and a period key,
// so identical inputs always reproduce identical output.
package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/reflaxess123/dohodi/internal/fetch"
	"github.com/reflaxess123/dohodi/internal/logging"
	"github.com/reflaxess123/dohodi/internal/models"
	"github.com/reflaxess123/dohodi/internal/salarycal"
	"github.com/reflaxess123/dohodi/internal/statement"

	"github.com/shopspring/decimal"
)

// Ledger is the process-wide state: the full transaction sequence
// (replace-only, never partially mutated), the budget settings, and the
// UI selection state. All aggregate queries operate on a snapshot taken
// under the lock, so a load can never interleave partial state.
type Ledger struct {
	mu           sync.RWMutex
	transactions []models.Transaction
	settings     models.BudgetSettings
	loadErr      error

	// Pass-through UI selection state, not part of the aggregation
	// contract.
	SelectedPeriod string
	SelectedDay    string

	parser *statement.Parser
	logger logging.Logger
}

// New creates a Ledger with the given settings and parser.
func New(settings models.BudgetSettings, parser *statement.Parser, logger logging.Logger) *Ledger {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Ledger{
		settings: settings,
		parser:   parser,
		logger:   logger,
	}
}

// LoadSource fetches the statement text from a file path or URL, parses
// it, and atomically replaces the transaction list. On failure the
// previous list is left untouched and the error is retained as the load
// error flag.
func (l *Ledger) LoadSource(ctx context.Context, source string) error {
	text, err := fetch.Load(ctx, source)
	if err != nil {
		l.mu.Lock()
		l.loadErr = err
		l.mu.Unlock()
		l.logger.WithError(err).Error("Statement load failed, keeping previous state",
			logging.Field{Key: logging.FieldSource, Value: source})
		return err
	}

	l.Replace(l.parser.Parse(text))
	return nil
}

// Replace swaps in a new transaction list atomically and clears the
// load error flag.
func (l *Ledger) Replace(txs []models.Transaction) {
	snapshot := make([]models.Transaction, len(txs))
	copy(snapshot, txs)

	l.mu.Lock()
	l.transactions = snapshot
	l.loadErr = nil
	l.mu.Unlock()
}

// LoadError returns the error of the last failed load, or nil after a
// successful one.
func (l *Ledger) LoadError() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loadErr
}

// Transactions returns the full transaction snapshot, including
// excluded rows, for audit views.
func (l *Ledger) Transactions() []models.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// Filtered returns the transactions that count toward budget totals.
// All aggregation queries operate on this subsequence.
func (l *Ledger) Filtered() []models.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Transaction, 0, len(l.transactions))
	for _, tx := range l.transactions {
		if !tx.IsFiltered {
			out = append(out, tx)
		}
	}
	return out
}

// Settings returns the current budget settings.
func (l *Ledger) Settings() models.BudgetSettings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.settings
}

// SetSettings replaces the budget settings wholesale.
func (l *Ledger) SetSettings(settings models.BudgetSettings) {
	l.mu.Lock()
	l.settings = settings
	l.mu.Unlock()
}

// CategoryBreakdown groups transactions by category. Amounts are summed
// as absolute values, percentages are shares of the summed total (zero
// when the total is zero), and the result is sorted descending by
// amount. Categories with equal amounts keep first-seen encounter
// order, so the output is deterministic.
func (l *Ledger) CategoryBreakdown(txs []models.Transaction) []CategoryData {
	var order []string
	groups := make(map[string]*CategoryData)

	for _, tx := range txs {
		group, ok := groups[tx.Category]
		if !ok {
			group = &CategoryData{Name: tx.Category, Amount: decimal.Zero}
			groups[tx.Category] = group
			order = append(order, tx.Category)
		}
		group.Amount = group.Amount.Add(tx.AbsAmount())
		group.Count++
	}

	total := decimal.Zero
	for _, name := range order {
		total = total.Add(groups[name].Amount)
	}

	result := make([]CategoryData, 0, len(order))
	for _, name := range order {
		group := *groups[name]
		if total.IsPositive() {
			group.Percentage = group.Amount.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		result = append(result, group)
	}

	sort.SliceStable(result, func(a, b int) bool {
		return result[a].Amount.GreaterThan(result[b].Amount)
	})
	return result
}

// PeriodBreakdown groups the filtered transactions by salary-month
// period, most recent first.
func (l *Ledger) PeriodBreakdown() []MonthlyData {
	filtered := l.Filtered()

	var order []salarycal.PeriodKey
	sums := make(map[salarycal.PeriodKey]*poolSums)
	expenses := make(map[salarycal.PeriodKey][]models.Transaction)

	for _, tx := range filtered {
		key := salarycal.PeriodOf(tx.Date)
		group, ok := sums[key]
		if !ok {
			group = newPoolSums()
			sums[key] = group
			order = append(order, key)
		}
		group.add(tx)
		if tx.IsExpense() {
			expenses[key] = append(expenses[key], tx)
		}
	}

	result := make([]MonthlyData, 0, len(order))
	for _, key := range order {
		result = append(result, MonthlyData{
			Period:     key,
			poolSums:   *sums[key],
			Categories: l.CategoryBreakdown(expenses[key]),
		})
	}

	sort.Slice(result, func(a, b int) bool {
		return result[b].Period.Before(result[a].Period)
	})
	return result
}

// PeriodSummary aggregates a single explicitly requested period. A key
// with no matching transactions yields a zero-filled entry, not an
// absent one.
func (l *Ledger) PeriodSummary(key salarycal.PeriodKey) MonthlyData {
	var inPeriod, expenses []models.Transaction
	for _, tx := range l.Filtered() {
		if salarycal.Contains(tx.Date, key) {
			inPeriod = append(inPeriod, tx)
			if tx.IsExpense() {
				expenses = append(expenses, tx)
			}
		}
	}

	sums := newPoolSums()
	for _, tx := range inPeriod {
		sums.add(tx)
	}
	return MonthlyData{
		Period:     key,
		poolSums:   *sums,
		Categories: l.CategoryBreakdown(expenses),
	}
}

// DayBreakdown groups the filtered transactions of one period by day,
// most recent first.
func (l *Ledger) DayBreakdown(key salarycal.PeriodKey) []DailyData {
	var order []string
	sums := make(map[string]*poolSums)
	expenses := make(map[string][]models.Transaction)

	for _, tx := range l.Filtered() {
		if !salarycal.Contains(tx.Date, key) {
			continue
		}
		day := salarycal.DayKey(tx.Date)
		group, ok := sums[day]
		if !ok {
			group = newPoolSums()
			sums[day] = group
			order = append(order, day)
		}
		group.add(tx)
		if tx.IsExpense() {
			expenses[day] = append(expenses[day], tx)
		}
	}

	result := make([]DailyData, 0, len(order))
	for _, day := range order {
		result = append(result, DailyData{
			Day:        day,
			poolSums:   *sums[day],
			Categories: l.CategoryBreakdown(expenses[day]),
		})
	}

	sort.Slice(result, func(a, b int) bool {
		return result[a].Day > result[b].Day
	})
	return result
}

// CurrentPeriodStats computes the live stats for the period containing
// the most recent filtered transaction (or today when the set is
// empty): spend so far per pool, calendar position, and the projected
// daily budget. An empty transaction set yields zero-valued spend, not
// an error.
func (l *Ledger) CurrentPeriodStats() PeriodStats {
	filtered := l.Filtered()

	ref := time.Now()
	for i, tx := range filtered {
		if i == 0 || tx.Date.After(ref) {
			ref = tx.Date
		}
	}

	key := salarycal.PeriodOf(ref)
	sums := newPoolSums()
	for _, tx := range filtered {
		if salarycal.Contains(tx.Date, key) {
			sums.add(tx)
		}
	}

	length := salarycal.Length(key)
	elapsed := salarycal.DayIndex(ref)
	// Remaining days include the reference day itself.
	remaining := length - elapsed + 1

	settings := l.Settings()
	target := settings.DailyTarget.Mul(decimal.NewFromInt(int64(length)))
	budget := target.Sub(sums.DailyPoolSpent).Div(decimal.NewFromInt(int64(remaining)))
	if budget.IsNegative() {
		budget = decimal.Zero
	}

	return PeriodStats{
		Period:           key,
		PeriodLength:     length,
		ElapsedDays:      elapsed,
		DaysRemaining:    remaining,
		DailyPoolSpent:   sums.DailyPoolSpent,
		MonthlyPoolSpent: sums.MonthlyPoolSpent,
		MandatorySpent:   sums.MandatorySpent,
		DailyBudget:      budget,
	}
}

// Projection derives the pool-based allowance from the adjustable pool
// ceilings and the given period stats. Pool remainders may be negative,
// signaling overspend; they are surfaced, not clamped.
func (l *Ledger) Projection(stats PeriodStats) Projection {
	settings := l.Settings()

	foodRemaining := settings.FoodPoolBudget.Sub(stats.DailyPoolSpent)
	monthlyRemaining := settings.MonthlyPoolBudget.Sub(stats.MonthlyPoolSpent)

	days := stats.DaysRemaining
	if days < 1 {
		days = 1
	}

	return Projection{
		FoodPoolRemaining:       foodRemaining,
		MonthlyPoolRemaining:    monthlyRemaining,
		EffectiveDailyAllowance: foodRemaining.Div(decimal.NewFromInt(int64(days))),
		SurplusOrDeficit:        settings.DeclaredIncome.Sub(settings.FoodPoolBudget.Add(settings.MonthlyPoolBudget)),
	}
}

func newPoolSums() *poolSums {
	return &poolSums{
		TotalExpenses:    decimal.Zero,
		TotalIncome:      decimal.Zero,
		DailyPoolSpent:   decimal.Zero,
		MonthlyPoolSpent: decimal.Zero,
		MandatorySpent:   decimal.Zero,
	}
}

// add folds a transaction into the group totals. Expenses outside the
// daily pool all land in the merged monthly bucket; the mandatory pool
// is additionally tracked on its own.
func (s *poolSums) add(tx models.Transaction) {
	if tx.IsExpense() {
		amount := tx.AbsAmount()
		s.TotalExpenses = s.TotalExpenses.Add(amount)
		if tx.Pool == models.PoolDaily {
			s.DailyPoolSpent = s.DailyPoolSpent.Add(amount)
		} else {
			s.MonthlyPoolSpent = s.MonthlyPoolSpent.Add(amount)
		}
		if tx.Pool == models.PoolMandatory {
			s.MandatorySpent = s.MandatorySpent.Add(amount)
		}
		return
	}
	s.TotalIncome = s.TotalIncome.Add(tx.Amount)
}
