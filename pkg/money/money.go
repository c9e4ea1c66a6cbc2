// Package money holds currency helpers shared by the lease engine and its
// formatters. Amounts are shopspring decimals; float64 only appears at the
// metrics boundary where root-finding needs it.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Finite substitutes 0 for NaN and ±Inf
func Finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// FromFloat converts a float to a decimal, mapping non-finite values to zero
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(Finite(f))
}

// ToFloat converts a decimal to float64 for numeric routines
func ToFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// Floats converts a decimal series to float64
func Floats(ds []decimal.Decimal) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = d.InexactFloat64()
	}
	return out
}

// SafeDiv divides a by b, returning zero when b is zero
func SafeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

// SafeDivFloat divides a by b, returning zero for a zero divisor or a non-finite result
func SafeDivFloat(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return Finite(a / b)
}

// Monthly converts an annual amount to monthly
func Monthly(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(twelve)
}

// Annual converts a monthly amount to annual
func Annual(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(twelve)
}

// MonthlyFromAnnualPSF converts an annual per-square-foot rate into a monthly amount
func MonthlyFromAnnualPSF(ratePSF, rsf decimal.Decimal) decimal.Decimal {
	return ratePSF.Mul(rsf).Div(twelve)
}

// Percent converts a fraction (0.03) into percentage points (3)
func Percent(fraction decimal.Decimal) decimal.Decimal {
	return fraction.Mul(hundred)
}

// Round rounds to cents
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Sum adds a series of amounts
func Sum(ds ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range ds {
		total = total.Add(d)
	}
	return total
}

// Min returns the smaller of two amounts
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Format renders an amount as dollars with two decimals
func Format(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
