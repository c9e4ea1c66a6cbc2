package calculation

import (
	"fmt"

	"github.com/leasecalc/lease-economics/internal/domain"
	"github.com/leasecalc/lease-economics/pkg/money"
	"github.com/shopspring/decimal"
)

// TerminationInput is the precomputed state a fee lookup reads from
type TerminationInput struct {
	Records      []domain.MonthlyRecord
	Amortization []domain.AmortizationRow
	RSF          decimal.Decimal
	Option       domain.TerminationOption
}

// TerminationFee prices ending the lease at month under in.Option. The fee
// is penalty months of the month's base rent, plus the per-RSF penalty, plus
// whatever financed balance has not yet been recovered.
func TerminationFee(in TerminationInput, month int) (domain.TerminationComponents, error) {
	if month < 0 || month >= len(in.Records) {
		return domain.TerminationComponents{}, &InvalidTermError{
			Months: month,
			Reason: fmt.Sprintf("termination month must be in [0, %d)", len(in.Records)),
		}
	}
	current := in.Records[month].BaseRent
	penaltyRent := in.Option.PenaltyMonths.Mul(current)
	rsfPenalty := decimal.Zero
	if in.Option.BaseRentPenaltyPSF != nil {
		rsfPenalty = in.Option.BaseRentPenaltyPSF.Mul(in.RSF)
	}
	unamortized := UnamortizedAt(in.Amortization, month)
	total := money.Sum(penaltyRent, rsfPenalty, unamortized)

	return domain.TerminationComponents{
		Month:              month,
		CurrentMonthlyRent: current,
		PenaltyMonths:      in.Option.PenaltyMonths,
		PenaltyRent:        penaltyRent,
		RSFPenalty:         rsfPenalty,
		UnamortizedBalance: unamortized,
		TotalFee:           total,
		EquivalentMonths:   money.SafeDiv(total, current),
		InWindow:           in.Option.InWindow(month),
		NoticeServable:     in.Option.NoticeServable(month),
	}, nil
}

// FeeSeries prices termination at every month of the term
func FeeSeries(in TerminationInput) []domain.TerminationComponents {
	fees := make([]domain.TerminationComponents, 0, len(in.Records))
	for m := range in.Records {
		fee, err := TerminationFee(in, m)
		if err != nil {
			break
		}
		fees = append(fees, fee)
	}
	return fees
}

// FeeAtMonth looks up the fee for a run's termination option by label
func FeeAtMonth(result *domain.ScenarioResult, label string, month int) (domain.TerminationComponents, error) {
	for _, sched := range result.Termination {
		if sched.Option.Label != label {
			continue
		}
		return TerminationFee(TerminationInput{
			Records:      result.Monthly,
			Amortization: result.Amortization,
			RSF:          result.RSF,
			Option:       sched.Option,
		}, month)
	}
	return domain.TerminationComponents{}, fmt.Errorf("termination option %q not found in scenario %q", label, result.Name)
}
