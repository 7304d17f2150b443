// Package mathutil holds the small numeric helpers shared by the calculators.
package mathutil

import (
	"math"

	"github.com/iwvelando/realestate-calc/pkg/constants"
)

// Round rounds a dollar amount to whole cents.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsFinite reports whether val is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// SafeDivide returns numerator/denominator, or 0 when the denominator is zero.
// Ratios such as DSCR and cash-on-cash are reported as 0 rather than Inf.
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// CalculatePercentage expresses value as a percentage of total.
func CalculatePercentage(value, total float64) float64 {
	return SafeDivide(value, total) * constants.PercentageMultiplier
}

// ApplyPercentage takes percentage percent of value.
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// Compound grows value at rate per period for the given number of periods.
func Compound(value, rate float64, periods int) float64 {
	return value * math.Pow(1+rate, float64(periods))
}
