package calculation

import (
	"github.com/leasecalc/lease-economics/internal/domain"
	"github.com/leasecalc/lease-economics/pkg/money"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// compound returns (1+rate)^periods for a non-negative whole number of periods.
// Repeated multiplication keeps the result exact in decimal.
func compound(rate decimal.Decimal, periods int) decimal.Decimal {
	factor := one
	step := one.Add(rate)
	for i := 0; i < periods; i++ {
		factor = factor.Mul(step)
	}
	return factor
}

// effectiveEscalation applies an annual cap; a zero cap means uncapped
func effectiveEscalation(rate, cap decimal.Decimal) decimal.Decimal {
	if cap.IsPositive() {
		return money.Min(rate, cap)
	}
	return rate
}

// BaseRateAt returns the contractual annual PSF rate for month. Rows may
// overlap; the first row containing the month wins. A month no row covers
// has a zero rate.
func BaseRateAt(rows []domain.RentScheduleRow, month int) decimal.Decimal {
	for _, r := range rows {
		if r.Contains(month) {
			return r.RatePSFAnnual
		}
	}
	return decimal.Zero
}

// EscalationFactor returns the multiplier applied to the base rate at month.
// Fixed escalation compounds once per lease year from commencement. Custom
// periods compound on their own anniversaries and only within the period,
// so a new period starts again from the unescalated base rate.
func EscalationFactor(esc domain.EscalationSchedule, month int) decimal.Decimal {
	if month < 0 {
		return one
	}
	if esc.Mode == domain.EscalationCustom {
		for _, p := range esc.Periods {
			if month >= p.StartMonth && month <= p.EndMonth {
				return compound(p.Rate, (month-p.StartMonth)/12)
			}
		}
		return one
	}
	return compound(esc.Rate, month/12)
}

// EscalatedRateAt returns the escalation-adjusted annual PSF rate for month
func EscalatedRateAt(lease *domain.LeaseTerms, month int) decimal.Decimal {
	return BaseRateAt(lease.RentSchedule, month).Mul(EscalationFactor(lease.Escalation, month))
}
