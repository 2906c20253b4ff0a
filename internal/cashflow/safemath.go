// Package cashflow contains the pure calculation engine behind the dashboard:
// per-fund metrics, fund-type projections and portfolio waterfalls.
//
// Every function in this package is deterministic, allocates only its own
// results and never returns NaN or infinite values. Division by zero and
// missing inputs degrade to 0 following the helpers in this file.
package cashflow

import "math"

// RoundingPrecision is the factor used by Round (two decimals).
const RoundingPrecision = 100.0

// Finite returns v unchanged, or 0 when v is NaN or infinite.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// SafeDivide returns numerator / denominator, or 0 when the denominator is
// zero or the quotient is not finite.
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return Finite(numerator / denominator)
}

// Round rounds a value to two decimal places. Used at the response boundary
// for monetary values; the engine itself never rounds.
//
// Example:
//
//	Round(123.456789) // 123.46
//	Round(math.NaN()) // 0
func Round(value float64) float64 {
	return math.Round(Finite(value)*RoundingPrecision) / RoundingPrecision
}

// patternAt returns pattern[i] or 0 when the index is out of range or the entry is not finite.
func patternAt(pattern []float64, i int) float64 {
	if i < 0 || i >= len(pattern) {
		return 0
	}
	return Finite(pattern[i])
}
