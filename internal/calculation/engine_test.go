package calculation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leasecalc/lease-economics/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func financedLease() *domain.LeaseTerms {
	lease := threeYearLease()
	lease.Name = "Case B"
	lease.TI = domain.TIAllowance{AllowancePSF: d(50), ActualCostPSF: d(60)}
	lease.TransactionCosts = domain.TransactionCosts{LeasingCommissionRate: d(0.04), LegalFees: d(5000)}
	lease.Financing = domain.FinancingFlags{AmortizeTIShortfall: true, Method: domain.AmortizationPresentValue, InterestRate: dp(0.06)}
	lease.TerminationOptions = []domain.TerminationOption{sixMonthPenalty()}
	return lease
}

func TestRunScenario(t *testing.T) {
	ce := NewCalculationEngine()
	settings := domain.CashFlowSettings{DiscountRate: d(0.08), Granularity: domain.GranularityAnnual}

	res, err := ce.RunScenario(context.Background(), financedLease(), settings)
	require.NoError(t, err)

	assert.Equal(t, "Case B", res.Name)
	assert.Len(t, res.Monthly, 36)
	assert.Len(t, res.Amortization, 36)
	assert.Len(t, res.Annual, 3)
	require.Len(t, res.Termination, 1)
	assert.Len(t, res.Termination[0].Fees, 36)

	// the financed shortfall is recovered through amortization, not charged up front
	assert.True(t, res.Annual[0].TIShortfall.IsZero())
	assert.True(t, res.Annual[0].TransactionCosts.Equal(d(41000)))
	assert.True(t, res.Annual[0].AmortizedCost.IsPositive())
	assert.True(t, res.Costs.FinancedPrincipal.Equal(d(100000)))

	fee0 := res.Termination[0].Fees[0]
	assert.True(t, fee0.TotalFee.Equal(fee0.PenaltyRent.Add(d(100000))))

	total := decimal.Zero
	for _, l := range res.Annual {
		total = total.Add(l.NetCashFlow)
	}
	assert.InDelta(t, total.InexactFloat64(), res.Metrics.TotalNetCashFlow, 1e-6)
	assert.Greater(t, res.Metrics.NPV, 0.0)
	assert.Greater(t, res.Metrics.EffectiveRentPSF, 0.0)
}

func TestRunScenarioUsesDefaultFinancingRate(t *testing.T) {
	lease := financedLease()
	lease.Financing.InterestRate = nil
	res, err := NewCalculationEngine().RunScenario(context.Background(), lease, domain.CashFlowSettings{DiscountRate: d(0.08)})
	require.NoError(t, err)
	assert.InDelta(t, 100000*0.08/12, res.Amortization[0].Interest.InexactFloat64(), 1e-6)
}

func TestRunScenarioErrors(t *testing.T) {
	ce := NewCalculationEngine()

	lease := threeYearLease()
	lease.Term = &domain.LeaseTerm{}
	_, err := ce.RunScenario(context.Background(), lease, domain.CashFlowSettings{})
	var tErr *InvalidTermError
	assert.True(t, errors.As(err, &tErr))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ce.RunScenario(ctx, threeYearLease(), domain.CashFlowSettings{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunScenarios(t *testing.T) {
	SetRunIDFunc(func() string { return "run-1" })
	SetNowFunc(func() time.Time { return date(2025, time.March, 1) })
	t.Cleanup(func() {
		SetRunIDFunc(uuid.NewString)
		SetNowFunc(time.Now)
	})

	two := 2
	config := &domain.Configuration{
		Lease:    *threeYearLease(),
		Settings: domain.CashFlowSettings{DiscountRate: d(0.08), Granularity: domain.GranularityAnnual},
		Scenarios: []domain.Scenario{
			{Name: "Base Case"},
			{Name: "Rent +$2", RentDeltaPSF: d(2)},
			{Name: "Free Rent", FreeRentMonths: &two},
		},
	}
	ce := NewCalculationEngine()
	ce.MaxParallel = 2

	cmp, err := ce.RunScenarios(context.Background(), config)
	require.NoError(t, err)
	assert.Equal(t, "run-1", cmp.RunID)
	assert.Equal(t, date(2025, time.March, 1), cmp.GeneratedAt)
	require.Len(t, cmp.Scenarios, 3)
	assert.Equal(t, "Base Case", cmp.Scenarios[0].Name)
	assert.Equal(t, "Rent +$2", cmp.Scenarios[1].Name)
	assert.Equal(t, "Free Rent", cmp.Scenarios[2].Name)
	assert.Equal(t, "Rent +$2", cmp.BestNPVScenario)
	assert.Equal(t, "Rent +$2", cmp.BestEffectiveRent)
	assert.NotEmpty(t, cmp.Assumptions)
	// higher rent every year means the cumulative lines never cross
	assert.Nil(t, cmp.BreakEven)
	assert.InDelta(t, 26666.67, cmp.Scenarios[1].Monthly[0].BaseRent.InexactFloat64(), 0.01)
	assert.Equal(t, 2, AbatedMonths(cmp.Scenarios[2].Monthly))
}

func TestRunScenariosBaseCaseOnly(t *testing.T) {
	config := &domain.Configuration{
		Lease:    *threeYearLease(),
		Settings: domain.CashFlowSettings{DiscountRate: d(0.08)},
	}
	config.Lease.Name = ""
	exp := date(2028, time.March, 31)
	config.Lease.Expiration = &exp

	cmp, err := NewCalculationEngine().RunScenarios(context.Background(), config)
	require.NoError(t, err)
	require.Len(t, cmp.Scenarios, 1)
	assert.Equal(t, BaseCaseName, cmp.Scenarios[0].Name)
	assert.Equal(t, BaseCaseName, cmp.BestNPVScenario)
	assert.NotEmpty(t, cmp.RunID)
	require.Len(t, cmp.ConsistencyWarnings, 1)
	assert.Contains(t, cmp.ConsistencyWarnings[0], BaseCaseName)
}

func TestRunScenariosPropagatesErrors(t *testing.T) {
	config := &domain.Configuration{Lease: *threeYearLease()}
	config.Lease.Term = nil
	_, err := NewCalculationEngine().RunScenarios(context.Background(), config)
	var tErr *InvalidTermError
	assert.True(t, errors.As(err, &tErr))
}
