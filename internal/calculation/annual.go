package calculation

import (
	"github.com/leasecalc/lease-economics/internal/domain"
	"github.com/shopspring/decimal"
)

// AnnualInput carries the monthly schedule plus the one-time costs that are
// not financed. Financed costs reach the annual view through Amortization.
type AnnualInput struct {
	Records          []domain.MonthlyRecord
	Amortization     []domain.AmortizationRow
	TIShortfall      decimal.Decimal
	TransactionCosts decimal.Decimal
}

// AggregateAnnual groups the monthly schedule by calendar year. One-time
// costs land in the first year. Net cash flow is the subtotal plus the
// (non-positive) abatement, less one-time and amortized costs.
func AggregateAnnual(in AnnualInput) []domain.AnnualLine {
	var lines []domain.AnnualLine
	index := map[int]int{}

	for _, r := range in.Records {
		year := r.StartDate.Year()
		i, ok := index[year]
		if !ok {
			lines = append(lines, domain.AnnualLine{
				Year:             year,
				YearIndex:        len(lines),
				BaseRent:         decimal.Zero,
				Operating:        decimal.Zero,
				Parking:          decimal.Zero,
				Abatement:        decimal.Zero,
				TIShortfall:      decimal.Zero,
				TransactionCosts: decimal.Zero,
				AmortizedCost:    decimal.Zero,
			})
			i = len(lines) - 1
			index[year] = i
		}
		line := &lines[i]
		line.Months++
		line.BaseRent = line.BaseRent.Add(r.BaseRent)
		line.Operating = line.Operating.Add(r.Operating)
		line.Parking = line.Parking.Add(r.Parking)
		line.Abatement = line.Abatement.Add(r.FreeRent)
		if r.Month < len(in.Amortization) {
			line.AmortizedCost = line.AmortizedCost.Add(in.Amortization[r.Month].Payment)
		}
	}

	if len(lines) > 0 {
		lines[0].TIShortfall = in.TIShortfall
		lines[0].TransactionCosts = in.TransactionCosts
	}
	for i := range lines {
		l := &lines[i]
		l.Subtotal = l.BaseRent.Add(l.Operating).Add(l.Parking)
		l.NetCashFlow = l.Subtotal.Add(l.Abatement).
			Sub(l.TIShortfall).
			Sub(l.TransactionCosts).
			Sub(l.AmortizedCost)
	}
	return lines
}

// NetCashFlows extracts the annual net cash-flow series
func NetCashFlows(lines []domain.AnnualLine) []decimal.Decimal {
	out := make([]decimal.Decimal, len(lines))
	for i, l := range lines {
		out[i] = l.NetCashFlow
	}
	return out
}

// MonthlyNetCashFlows builds the same net series at monthly resolution, with
// one-time costs charged in month 0
func MonthlyNetCashFlows(in AnnualInput) []decimal.Decimal {
	out := make([]decimal.Decimal, len(in.Records))
	for i, r := range in.Records {
		cf := r.BaseRent.Add(r.FreeRent).Add(r.Operating).Add(r.Parking)
		if r.Month < len(in.Amortization) {
			cf = cf.Sub(in.Amortization[r.Month].Payment)
		}
		if i == 0 {
			cf = cf.Sub(in.TIShortfall).Sub(in.TransactionCosts)
		}
		out[i] = cf
	}
	return out
}
