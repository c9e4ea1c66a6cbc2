package calculation

import (
	"errors"
	"math"

	"github.com/leasecalc/lease-economics/internal/domain"
	"github.com/leasecalc/lease-economics/pkg/money"
)

// MetricsInput is the float view of a run that the metrics library reads
type MetricsInput struct {
	AnnualNet    []float64 // net cash flow per calendar year
	MonthlyNet   []float64 // net cash flow per month, one-time costs in month 0
	OneTimeCosts float64   // unfinanced one-time costs charged in month 0
	TermMonths   int
	RSF          float64
	LandlordCost float64 // TI allowance + commission + other costs
	Granularity  domain.Granularity
}

// EffectiveRentPSF is total net cash flow per RSF per year of term
func EffectiveRentPSF(totalNet, rsf, termYears float64) float64 {
	return money.SafeDivFloat(totalNet, rsf*termYears)
}

// PaybackPeriod returns the number of periods until cumulative cash flow
// first crosses from negative to non-negative, interpolated linearly within
// the crossing period. A cumulative total of exactly zero at a boundary pays
// back at the start of the following period. A series whose cumulative total
// is never negative has paid back immediately and returns 0. It returns nil
// for an empty series or one that goes negative and never recovers.
func PaybackPeriod(cashFlows []float64) *float64 {
	cumulative := 0.0
	wentNegative := false
	for i, cf := range cashFlows {
		prev := cumulative
		cumulative += cf
		if prev < 0 && cumulative >= 0 {
			fraction := money.SafeDivFloat(-prev, cf)
			p := float64(i) + fraction
			return &p
		}
		if cumulative < 0 {
			wentNegative = true
		}
	}
	if len(cashFlows) == 0 || wentNegative {
		return nil
	}
	immediate := 0.0
	return &immediate
}

// CashOnCash is first-year operating cash flow over landlord cost
func CashOnCash(yearOneCashFlow, landlordCost float64) float64 {
	return money.SafeDivFloat(yearOneCashFlow, landlordCost)
}

// YieldOnCost is average annual operating cash flow over landlord cost
func YieldOnCost(totalOperating, termYears, landlordCost float64) float64 {
	return money.SafeDivFloat(money.SafeDivFloat(totalOperating, termYears), landlordCost)
}

// EquityMultiple is total operating cash flow returned per dollar of landlord cost
func EquityMultiple(totalOperating, landlordCost float64) float64 {
	return money.SafeDivFloat(totalOperating, landlordCost)
}

// MonthlyRate converts an annual rate to the equivalent compounded monthly rate
func MonthlyRate(annual float64) float64 {
	return money.Finite(math.Pow(1+annual, 1.0/12) - 1)
}

// AnnualizeMonthlyRate converts a monthly rate to its compounded annual equivalent
func AnnualizeMonthlyRate(monthly float64) float64 {
	return money.Finite(math.Pow(1+monthly, 12) - 1)
}

// CalculateMetrics computes the full metrics set. It never fails: an IRR that
// cannot be found is reported as 0 with IRRFound false, and every ratio with a
// zero denominator is 0.
func CalculateMetrics(in MetricsInput, cfg MetricsConfig) domain.Metrics {
	termYears := float64(in.TermMonths) / 12
	total := sum(in.AnnualNet)
	if len(in.AnnualNet) == 0 {
		total = sum(in.MonthlyNet)
	}

	operating := make([]float64, len(in.MonthlyNet))
	copy(operating, in.MonthlyNet)
	if len(operating) > 0 {
		operating[0] += in.OneTimeCosts
	}
	yearOne := sum(operating[:min(12, len(operating))])
	totalOperating := sum(operating)

	m := domain.Metrics{
		EffectiveRentPSF: EffectiveRentPSF(total, in.RSF, termYears),
		CashOnCash:       CashOnCash(yearOne, in.LandlordCost),
		YieldOnCost:      YieldOnCost(totalOperating, termYears, in.LandlordCost),
		EquityMultiple:   EquityMultiple(totalOperating, in.LandlordCost),
		TotalNetCashFlow: money.Finite(total),
	}

	var irr float64
	var err error
	if in.Granularity == domain.GranularityMonthly {
		m.NPV = NPV(in.MonthlyNet, MonthlyRate(cfg.DiscountRate))
		irr, err = IRR(in.MonthlyNet, cfg)
		irr = AnnualizeMonthlyRate(irr)
		if p := PaybackPeriod(in.MonthlyNet); p != nil {
			years := *p / 12
			m.PaybackYears = &years
		}
	} else {
		m.NPV = NPV(in.AnnualNet, cfg.DiscountRate)
		irr, err = IRR(in.AnnualNet, cfg)
		m.PaybackYears = PaybackPeriod(in.AnnualNet)
	}

	var notFound *IRRNotFoundError
	switch {
	case err == nil:
		m.IRR = money.Finite(irr)
		m.IRRFound = true
	case errors.As(err, &notFound):
		m.IRR = 0
	}
	return m
}

func sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}
