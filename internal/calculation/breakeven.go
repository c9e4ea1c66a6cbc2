package calculation

import (
	"fmt"

	"github.com/leasecalc/lease-economics/internal/domain"
	"github.com/shopspring/decimal"
)

var breakEvenTolerance = decimal.NewFromFloat(0.01)

// CalculateCumulativeBreakEven finds the first crossover (if any) between the
// cumulative net cash flow of two annual series. Series are aligned by index
// and truncated to the shorter one. An exact tie in the first year is treated
// as trivial. Returns nil, nil when the series never cross.
func CalculateCumulativeBreakEven(linesA, linesB []domain.AnnualLine) (*domain.CumulativeBreakEvenResult, error) {
	if len(linesA) == 0 || len(linesB) == 0 {
		return nil, fmt.Errorf("one or both annual series are empty")
	}
	n := min(len(linesA), len(linesB))

	cumA := decimal.Zero
	cumB := decimal.Zero
	for i := 0; i < n; i++ {
		yearA := linesA[i].NetCashFlow
		prevDiff := cumA.Sub(cumB)
		cumA = cumA.Add(yearA)
		cumB = cumB.Add(linesB[i].NetCashFlow)
		currDiff := cumA.Sub(cumB)

		if currDiff.Abs().LessThan(breakEvenTolerance) {
			if i == 0 {
				continue
			}
			// exact tie at year end
			return &domain.CumulativeBreakEvenResult{
				YearIndex:        linesA[i].YearIndex + 1,
				CalendarYear:     float64(linesA[i].Year + 1),
				Fraction:         decimal.NewFromInt(1),
				CumulativeAmount: cumA,
				BreakEvenMonth:   12,
				BreakEvenYear:    linesA[i].Year,
			}, nil
		}

		if i > 0 && prevDiff.Mul(currDiff).IsNegative() {
			// diff(t) = prevDiff + t·(currDiff − prevDiff); solve diff(t) = 0
			t := prevDiff.Neg().Div(currDiff.Sub(prevDiff))
			if t.IsNegative() {
				t = decimal.Zero
			} else if t.GreaterThan(one) {
				t = one
			}
			month := int(t.InexactFloat64() * 12)
			if month < 1 {
				month = 1
			}
			if month > 12 {
				month = 12
			}
			return &domain.CumulativeBreakEvenResult{
				YearIndex:        linesA[i].YearIndex + 1,
				CalendarYear:     float64(linesA[i].Year) + t.InexactFloat64(),
				Fraction:         t,
				CumulativeAmount: cumA.Sub(yearA).Add(yearA.Mul(t)),
				BreakEvenMonth:   month,
				BreakEvenYear:    linesA[i].Year,
			}, nil
		}
	}
	return nil, nil
}
