package integration

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leasecalc/lease-economics/internal/calculation"
	"github.com/leasecalc/lease-economics/internal/config"
	"github.com/leasecalc/lease-economics/internal/domain"
)

const exampleConfig = "../testdata/example_config.yaml"

func runExample(t *testing.T) (*domain.Configuration, *domain.ScenarioComparison) {
	t.Helper()
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(exampleConfig)
	require.NoError(t, err)

	results, err := calculation.NewCalculationEngine().RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	return cfg, results
}

func TestEndToEndCalculation(t *testing.T) {
	cfg, results := runExample(t)
	require.Len(t, cfg.Scenarios, 3)
	require.Len(t, results.Scenarios, 3)

	for i, sc := range results.Scenarios {
		assert.Equal(t, cfg.Scenarios[i].Name, sc.Name, "input order is preserved")
		assert.Equal(t, 84, sc.Timeline.TermMonths)
		assert.Len(t, sc.Monthly, 84)
		assert.Equal(t, 3, sc.Timeline.AbatementMonths)

		months := 0
		for _, l := range sc.Annual {
			months += l.Months
		}
		assert.Equal(t, 84, months, "annual lines cover every month")
		assert.Equal(t, 2025, sc.Annual[0].Year)
		assert.Equal(t, 10, sc.Annual[0].Months)

		m := sc.Metrics
		for _, v := range []float64{m.NPV, m.IRR, m.EffectiveRentPSF, m.CashOnCash, m.YieldOnCost, m.EquityMultiple} {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		}
	}

	assert.NotEmpty(t, results.RunID)
	assert.NotEmpty(t, results.BestNPVScenario)
	assert.NotEmpty(t, results.Assumptions)
}

func TestFinancedCostsAreNotChargedUpFront(t *testing.T) {
	_, results := runExample(t)
	sc := results.Scenarios[0]

	assert.True(t, sc.Costs.FinancedPrincipal.IsPositive())
	require.Len(t, sc.Amortization, 84)
	assert.True(t, sc.Amortization[83].EndingBalance.IsZero())

	first := sc.Annual[0]
	assert.True(t, first.TIShortfall.IsZero())
	assert.True(t, first.TransactionCosts.IsZero())
	assert.True(t, first.AmortizedCost.IsPositive())
}

func TestCustomAbatementPlacement(t *testing.T) {
	_, results := runExample(t)
	monthly := results.Scenarios[0].Monthly

	for m, rec := range monthly {
		switch m {
		case 0, 1, 24:
			assert.True(t, rec.IsAbated(), "month %d should be free", m)
		default:
			assert.False(t, rec.IsAbated(), "month %d should not be free", m)
		}
	}
	// month 24 also credits the operating charge
	assert.True(t, monthly[24].Operating.IsPositive())
	assert.True(t, monthly[24].FreeRent.Equal(monthly[24].BaseRent.Add(monthly[24].Operating).Neg()))
	assert.True(t, monthly[0].FreeRent.Equal(monthly[0].BaseRent.Neg()))
}

func TestScenarioOverrides(t *testing.T) {
	_, results := runExample(t)
	base, richer, hurdle := results.Scenarios[0], results.Scenarios[1], results.Scenarios[2]

	assert.True(t, richer.Costs.TIShortfall.IsZero(), "allowance now covers the build cost")
	assert.True(t, richer.Monthly[3].RatePSFAnnual.Equal(base.Monthly[3].RatePSFAnnual.Add(decimal.NewFromFloat(1.5))))

	// same cash flows, higher discount rate
	assert.InDelta(t, base.Metrics.TotalNetCashFlow, hurdle.Metrics.TotalNetCashFlow, 1e-6)
	assert.Less(t, hurdle.Metrics.NPV, base.Metrics.NPV)
}

func TestTerminationSchedule(t *testing.T) {
	_, results := runExample(t)
	sc := results.Scenarios[0]
	require.Len(t, sc.Termination, 1)

	fees := sc.Termination[0].Fees
	require.NotEmpty(t, fees)
	for _, f := range fees {
		assert.Equal(t, f.Month >= 42 && f.Month <= 54, f.InWindow, "month %d", f.Month)
		assert.Equal(t, f.Month <= 42, f.NoticeServable, "month %d", f.Month)
		assert.False(t, f.TotalFee.IsNegative())
	}

	fee, err := calculation.FeeAtMonth(&sc, "Year 4 Termination", 42)
	require.NoError(t, err)
	assert.True(t, fee.InWindow)
	assert.True(t, fee.UnamortizedBalance.IsPositive())
}

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(exampleConfig)
	require.NoError(t, err)
	assert.NoError(t, parser.ValidateConfiguration(cfg))
	assert.Empty(t, parser.Warnings(cfg))
}
