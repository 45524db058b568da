package statement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses a locale-formatted numeric token: whitespace
// (including non-breaking spaces) is stripped, a comma decimal separator
// becomes a point, stray quotes are removed. An empty or unparsable
// token yields zero, not an error.
func parseAmount(s string) decimal.Decimal {
	cleaned := cleanNumeric(s)
	if cleaned == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// cleanNumeric standardizes a raw numeric token for decimal parsing.
func cleanNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ' ', '\t', ' ', '"':
			// drop
		case ',':
			b.WriteRune('.')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
