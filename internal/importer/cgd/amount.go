package cgd

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseEuropeanAmount parses amounts written with "." thousands and "," decimals.
// "1.234,56" -> 1234.56, "-588,74" -> -588.74.
func parseEuropeanAmount(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(s, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	return decimal.NewFromString(clean)
}

// formatAmount renders a magnitude the way budget entries store amounts.
func formatAmount(d decimal.Decimal) string {
	return d.Abs().StringFixed(2)
}
