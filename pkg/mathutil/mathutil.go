// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/lcoh-model/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
func Round(val float64) float64 {
	return math.Round(val*100) / 100
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// FromPercent converts a percentage such as 5 into the fraction 0.05
func FromPercent(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// Clamp limits value to the closed interval spanned by a and b. The bounds may
// be given in either order.
func Clamp(value, a, b float64) float64 {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// SafeDivisor returns d when it is positive and the production epsilon otherwise.
func SafeDivisor(d float64) float64 {
	if d <= 0 {
		return constants.ProductionEpsilon
	}
	return d
}
