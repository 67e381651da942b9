package budget

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount reads an entry amount. Unparsable or negative values count as zero
// so a single bad record cannot poison a total.
func ParseAmount(s string) decimal.Decimal {
	d := parseDecimal(s)
	if d.IsNegative() {
		return decimal.Zero
	}

	return d
}

// ParseInitialAmount reads a starting balance, which may be negative.
// Unparsable values count as zero.
func ParseInitialAmount(s string) decimal.Decimal {
	return parseDecimal(s)
}

func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}

	return d
}

func decimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}
