package calculation

import (
	"github.com/leasecalc/lease-economics/internal/domain"
	"github.com/leasecalc/lease-economics/pkg/dateutil"
	"github.com/leasecalc/lease-economics/pkg/money"
	"github.com/shopspring/decimal"
)

// BuildRentSchedule produces one record per month of the timeline. It is a
// pure function of its inputs and returns a fresh slice on every call.
func BuildRentSchedule(timeline domain.LeaseTimeline, lease *domain.LeaseTerms) []domain.MonthlyRecord {
	records := make([]domain.MonthlyRecord, timeline.TermMonths)
	for m := 0; m < timeline.TermMonths; m++ {
		leaseYear := m / 12
		rate := EscalatedRateAt(lease, m)
		base := money.MonthlyFromAnnualPSF(rate, lease.RSF)
		operating := OperatingCharge(lease, leaseYear)
		parking := ParkingCharge(lease, leaseYear)

		free := decimal.Zero
		if abated, appliesTo := abatementAt(lease.Abatement, m); abated {
			free = freeRentCredit(base, operating, appliesTo)
		}

		records[m] = domain.MonthlyRecord{
			Month:         m,
			LeaseYear:     leaseYear,
			StartDate:     dateutil.AddMonths(timeline.Commencement, m),
			RatePSFAnnual: rate,
			BaseRent:      base,
			FreeRent:      free,
			NetRent:       base.Add(free),
			Operating:     operating,
			Parking:       parking,
		}
	}
	return records
}

// abatementAt reports whether month is a free-rent month and what it credits
func abatementAt(ab domain.AbatementSchedule, month int) (bool, domain.AbatementAppliesTo) {
	if ab.Mode == domain.AbatementCustom {
		for _, p := range ab.Periods {
			if month >= p.StartMonth && month < p.StartMonth+p.FreeRentMonths {
				return true, appliesToOrDefault(p.AppliesTo, ab.AppliesTo)
			}
		}
		return false, ""
	}
	if month < ab.Months {
		return true, appliesToOrDefault(ab.AppliesTo, "")
	}
	return false, ""
}

func appliesToOrDefault(v, fallback domain.AbatementAppliesTo) domain.AbatementAppliesTo {
	if v != "" {
		return v
	}
	if fallback != "" {
		return fallback
	}
	return domain.AppliesToBaseOnly
}

// freeRentCredit returns the (non-positive) credit for an abated month. The
// credit is the full charge it offsets and never more than that charge.
func freeRentCredit(base, operating decimal.Decimal, appliesTo domain.AbatementAppliesTo) decimal.Decimal {
	offset := money.Max(base, decimal.Zero)
	if appliesTo == domain.AppliesToBasePlusNNN {
		offset = offset.Add(money.Max(operating, decimal.Zero))
	}
	return offset.Neg()
}

// FreeRentValue is the positive total of all free-rent credits
func FreeRentValue(records []domain.MonthlyRecord) decimal.Decimal {
	credits := make([]decimal.Decimal, len(records))
	for i, r := range records {
		credits[i] = r.FreeRent
	}
	return money.Sum(credits...).Neg()
}

// AggregateBaseRent sums contractual base rent before abatement
func AggregateBaseRent(records []domain.MonthlyRecord) decimal.Decimal {
	rents := make([]decimal.Decimal, len(records))
	for i, r := range records {
		rents[i] = r.BaseRent
	}
	return money.Sum(rents...)
}

// AbatedMonths counts the records carrying a free-rent credit
func AbatedMonths(records []domain.MonthlyRecord) int {
	n := 0
	for _, r := range records {
		if r.IsAbated() {
			n++
		}
	}
	return n
}
