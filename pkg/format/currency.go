// Package format renders money amounts for people.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := groupDigits(fmt.Sprintf("%.2f", math.Abs(amount)))
	if amount < 0 && formatted != "0.00" {
		return "-$" + formatted
	}
	return "$" + formatted
}

// DecimalCurrency is Currency for exact amounts.
func DecimalCurrency(amount decimal.Decimal) string {
	formatted := groupDigits(amount.Abs().StringFixed(2))
	if amount.IsNegative() && formatted != "0.00" {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Percent renders a percentage with two decimals (e.g., "7.96%").
func Percent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

// groupDigits inserts thousands separators into a non-negative "1234.56" string.
func groupDigits(value string) string {
	parts := strings.SplitN(value, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
