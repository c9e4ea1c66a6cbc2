package output

import (
	"sort"

	"github.com/leasecalc/lease-economics/internal/domain"
	"github.com/leasecalc/lease-economics/pkg/money"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName     string
	NPV              decimal.Decimal
	EffectiveRentPSF decimal.Decimal
	// NPVChange and PercentageChange compare against the first scenario
	NPVChange        decimal.Decimal
	PercentageChange decimal.Decimal
}

// AnalyzeScenarios picks the scenario with the highest NPV. Ties keep the
// scenario listed first. NPVs are compared in cents, so float noise below a
// cent does not break a tie.
func AnalyzeScenarios(results *domain.ScenarioComparison) Recommendation {
	if results == nil || len(results.Scenarios) == 0 {
		return Recommendation{}
	}
	type ranked struct {
		name string
		npv  decimal.Decimal
		rent decimal.Decimal
	}
	ranks := make([]ranked, 0, len(results.Scenarios))
	for _, sc := range results.Scenarios {
		ranks = append(ranks, ranked{
			name: sc.Name,
			npv:  money.Round(money.FromFloat(sc.Metrics.NPV)),
			rent: money.Round(money.FromFloat(sc.Metrics.EffectiveRentPSF)),
		})
	}
	baseline := ranks[0].npv
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].npv.GreaterThan(ranks[j].npv) })
	best := ranks[0]
	delta := best.npv.Sub(baseline)
	pct := decimal.Zero
	if !baseline.IsZero() {
		pct = delta.Div(baseline.Abs()).Mul(decimalHundred)
	}
	return Recommendation{
		ScenarioName:     best.name,
		NPV:              best.npv,
		EffectiveRentPSF: best.rent,
		NPVChange:        delta,
		PercentageChange: pct,
	}
}
