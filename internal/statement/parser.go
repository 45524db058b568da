// Package statement parses the semicolon-delimited bank statement export
// into classified transactions. The format is RFC-4180-lite: a quote
// character toggles quoting so semicolons inside quotes are literal, but
// embedded doubled quotes are not unescaped. Malformed lines are skipped,
// never fatal, because partial or corrupted exports are expected.
package statement

import (
	"sort"
	"strings"
	"time"

	"github.com/reflaxess123/dohodi/internal/classify"
	"github.com/reflaxess123/dohodi/internal/logging"
	"github.com/reflaxess123/dohodi/internal/models"
)

// DefaultSuccessStatus is the status marker of a settled operation.
// Rows with any other status are dropped entirely.
const DefaultSuccessStatus = "OK"

// minColumns is the minimum token count for a line to be considered
// well-formed. The three trailing numeric columns are optional.
const minColumns = 12

// Date layouts seen in exports: full timestamp, timestamp without
// seconds, and bare date (defaults to midnight).
var dateLayouts = []string{
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02.01.2006",
}

// Parser turns raw statement text into an ordered transaction sequence.
// It is stateless between calls and safe to reuse.
type Parser struct {
	rules         classify.Rules
	successStatus string
	logger        logging.Logger
}

// New creates a Parser with the given classification rules. If
// successStatus is empty, DefaultSuccessStatus is used. A nil logger
// falls back to a default adapter.
func New(rules classify.Rules, successStatus string, logger logging.Logger) *Parser {
	if successStatus == "" {
		successStatus = DefaultSuccessStatus
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Parser{
		rules:         rules,
		successStatus: successStatus,
		logger:        logger,
	}
}

// Parse converts statement text into classified transactions, sorted
// descending by date. Parsing the same text twice yields identical
// results in every field, including IDs.
func (p *Parser) Parse(text string) []models.Transaction {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	transactions := make([]models.Transaction, 0, len(lines))

	// The first line is always the header.
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}

		tokens := splitLine(line)
		if len(tokens) < minColumns {
			p.logger.Debug("Skipping malformed line",
				logging.Field{Key: logging.FieldLine, Value: i + 1},
				logging.Field{Key: logging.FieldCount, Value: len(tokens)})
			continue
		}

		row := rowFromTokens(tokens)
		if row.Status != p.successStatus {
			continue
		}

		date, err := parseDateTime(row.OperationDate)
		if err != nil {
			p.logger.Debug("Skipping line with unparsable date",
				logging.Field{Key: logging.FieldLine, Value: i + 1},
				logging.Field{Key: "date", Value: row.OperationDate})
			continue
		}

		amount := parseAmount(row.OperationAmount)
		tx := models.Transaction{
			ID:          rowID(row.OperationDate, amount.String(), row.Description, i),
			Date:        date,
			Amount:      amount,
			Category:    row.Category,
			Description: row.Description,
			CardNumber:  row.CardNumber,
			MCC:         row.MCC,
			Type:        models.TypeForAmount(amount),
		}
		transactions = append(transactions, p.rules.Apply(tx))
	}

	// Most recent first; stable so same-date rows keep file order.
	sort.SliceStable(transactions, func(a, b int) bool {
		return transactions[a].Date.After(transactions[b].Date)
	})

	p.logger.Info("Parsed statement",
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return transactions
}

// rowFromTokens maps tokens positionally into a RawRow. Trailing
// optional columns that are absent become empty strings.
func rowFromTokens(tokens []string) models.RawRow {
	get := func(i int) string {
		if i < len(tokens) {
			return tokens[i]
		}
		return ""
	}
	return models.RawRow{
		OperationDate:      get(0),
		PaymentDate:        get(1),
		CardNumber:         get(2),
		Status:             get(3),
		OperationAmount:    get(4),
		OperationCurrency:  get(5),
		PaymentAmount:      get(6),
		PaymentCurrency:    get(7),
		Cashback:           get(8),
		Category:           get(9),
		MCC:                get(10),
		Description:        get(11),
		Bonuses:            get(12),
		InvestmentRounding: get(13),
		AmountWithRounding: get(14),
	}
}

// splitLine tokenizes a line on semicolons with quote awareness: a quote
// toggles the in-quotes flag and semicolons inside quotes are literal.
// Each token is trimmed and has at most one leading and one trailing
// quote stripped. Doubled quotes are intentionally not unescaped.
func splitLine(line string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == ';' && !inQuotes:
			tokens = append(tokens, stripQuotes(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	tokens = append(tokens, stripQuotes(current.String()))
	return tokens
}

// stripQuotes trims whitespace and removes one literal quote from each
// end of the token if present.
func stripQuotes(token string) string {
	token = strings.TrimSpace(token)
	token = strings.TrimPrefix(token, `"`)
	token = strings.TrimSuffix(token, `"`)
	return token
}

// parseDateTime parses DD.MM.YYYY with an optional time part. A missing
// time defaults to midnight.
func parseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(strings.Trim(s, `"`))
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
