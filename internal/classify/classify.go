package classify

import (
	"fmt"
	"strings"

	"github.com/reflaxess123/dohodi/internal/models"
)

// Decision is the outcome of an include/exclude check. Reason is set
// iff the transaction is excluded.
type Decision struct {
	Include bool
	Reason  string
}

// ClassifyIncome decides whether an income transaction counts toward
// budget totals. Checks run in fixed priority order; the first match
// wins.
func (r Rules) ClassifyIncome(tx models.Transaction) Decision {
	for _, substr := range r.ExcludedIncomeDescriptions {
		if containsFold(tx.Description, substr) {
			return exclude(substr)
		}
	}
	for _, person := range r.ExcludedPersons {
		if strings.Contains(tx.Description, person) {
			return exclude(fmt.Sprintf("transfer from %s", person))
		}
	}
	for _, keyword := range r.RefundKeywords {
		if containsFold(tx.Description, keyword) {
			return exclude("refund/compensation")
		}
	}
	// An "income" row posted against an expense category is a refund.
	for _, category := range r.ExpenseCategories {
		if tx.Category == category {
			return exclude(category)
		}
	}
	return Decision{Include: true}
}

// ClassifyExpense decides whether an expense transaction counts toward
// budget totals. Transfers are excluded by default, with a counterparty
// exception checked first.
func (r Rules) ClassifyExpense(tx models.Transaction) Decision {
	if r.TransfersCategory != "" && tx.Category == r.TransfersCategory {
		for _, token := range r.BankTokens {
			if containsFold(tx.Description, token) {
				return Decision{Include: true}
			}
		}
		return exclude("transfers category")
	}
	for _, substr := range r.ExcludedExpenseDescriptions {
		if containsFold(tx.Description, substr) {
			return exclude(substr)
		}
	}
	for _, person := range r.ExcludedPersons {
		if strings.Contains(tx.Description, person) {
			return exclude(fmt.Sprintf("transfer for %s", person))
		}
	}
	return Decision{Include: true}
}

// DeterminePool assigns the spending pool. It runs on every
// transaction, including excluded ones, so pool values stay
// deterministic regardless of the include decision.
func (r Rules) DeterminePool(tx models.Transaction) models.Pool {
	if tx.Type == models.TxIncome {
		return models.PoolOther
	}
	for _, category := range r.DailyCategories {
		if tx.Category == category {
			return models.PoolDaily
		}
	}
	for _, category := range r.MonthlyCategories {
		if tx.Category == category {
			return models.PoolMonthly
		}
	}
	for _, token := range r.BankTokens {
		if containsFold(tx.Description, token) {
			return models.PoolMandatory
		}
	}
	return models.PoolOther
}

// Apply runs the include decision and pool assignment for a transaction
// and returns a copy with the classification fields set.
func (r Rules) Apply(tx models.Transaction) models.Transaction {
	var decision Decision
	if tx.Type == models.TxIncome {
		decision = r.ClassifyIncome(tx)
	} else {
		decision = r.ClassifyExpense(tx)
	}
	tx.IsFiltered = !decision.Include
	tx.FilterReason = decision.Reason
	tx.Pool = r.DeterminePool(tx)
	return tx
}

func exclude(reason string) Decision {
	return Decision{Include: false, Reason: reason}
}

// containsFold is a case-insensitive substring check.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
