package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Precision is the fixed number of fractional digits retained when an
// amount enters the system.
const Precision = 4

// Truncate drops fractional digits beyond Precision, rounding toward zero.
// It is applied exactly once, when a deposit or withdrawal amount is
// ingested; derived sums keep full decimal precision afterwards so
// truncation error never compounds.
func Truncate(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(Precision)
}

// FormatAmount renders an amount with exactly Precision fractional digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(Precision)
}

// ParseAmount converts a decimal string into an amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount value %q: %w", s, err)
	}
	return d, nil
}

// MustParseAmount converts a decimal string into an amount and panics on error.
// Use only in tests or when you're certain the amount is valid.
func MustParseAmount(s string) decimal.Decimal {
	d, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return d
}
