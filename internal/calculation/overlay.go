package calculation

import (
	"github.com/leasecalc/lease-economics/internal/domain"
	"github.com/leasecalc/lease-economics/pkg/money"
	"github.com/shopspring/decimal"
)

// OperatingCharge returns the monthly operating pass-through for a lease year.
// Full-service rent already includes operating expenses, so the overlay is zero.
func OperatingCharge(lease *domain.LeaseTerms, leaseYear int) decimal.Decimal {
	if lease.LeaseType == domain.LeaseTypeFullService {
		return decimal.Zero
	}
	op := lease.Operating
	if op.BasePSFAnnual.IsZero() {
		return decimal.Zero
	}
	rate := effectiveEscalation(op.Escalation, op.EscalationCap)
	return money.MonthlyFromAnnualPSF(op.BasePSFAnnual, lease.RSF).Mul(compound(rate, leaseYear))
}

// ParkingCharge returns the monthly parking charge for a lease year
func ParkingCharge(lease *domain.LeaseTerms, leaseYear int) decimal.Decimal {
	p := lease.Parking
	if p.Spaces <= 0 || p.RatePerSpaceMonthly.IsZero() {
		return decimal.Zero
	}
	rate := effectiveEscalation(p.Escalation, p.EscalationCap)
	return p.RatePerSpaceMonthly.Mul(decimal.NewFromInt(int64(p.Spaces))).Mul(compound(rate, leaseYear))
}
