// Package models defines the core data types shared across the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxType distinguishes money-out from money-in transactions.
// It is always derived from the sign of the amount and never set directly.
type TxType string

const (
	TxExpense TxType = "expense"
	TxIncome  TxType = "income"
)

// Pool is the spending bucket an expense counts against.
type Pool string

const (
	PoolDaily     Pool = "daily"
	PoolMonthly   Pool = "monthly"
	PoolMandatory Pool = "mandatory"
	PoolOther     Pool = "other"
)

// RawRow is one statement line after tokenization, before business rules.
// It is discarded once converted into a Transaction.
type RawRow struct {
	OperationDate      string
	PaymentDate        string
	CardNumber         string
	Status             string
	OperationAmount    string
	OperationCurrency  string
	PaymentAmount      string
	PaymentCurrency    string
	Cashback           string
	Category           string
	MCC                string
	Description        string
	Bonuses            string
	InvestmentRounding string
	AmountWithRounding string
}

// Transaction is the durable unit produced by the parser and classifier.
// It is immutable once produced; excluded transactions are kept for audit,
// never deleted.
type Transaction struct {
	ID           string          `json:"id"`
	Date         time.Time       `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	CardNumber   string          `json:"cardNumber"`
	MCC          string          `json:"mcc"`
	Type         TxType          `json:"type"`
	IsFiltered   bool            `json:"isFiltered"`
	FilterReason string          `json:"filterReason,omitempty"`
	Pool         Pool            `json:"pool"`
}

// IsExpense returns true if the transaction is money out.
func (t Transaction) IsExpense() bool {
	return t.Type == TxExpense
}

// AbsAmount returns the absolute value of the transaction amount.
func (t Transaction) AbsAmount() decimal.Decimal {
	return t.Amount.Abs()
}

// TypeForAmount derives the transaction type from the sign of an amount.
func TypeForAmount(amount decimal.Decimal) TxType {
	if amount.IsNegative() {
		return TxExpense
	}
	return TxIncome
}
