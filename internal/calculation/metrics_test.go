package calculation

import (
	"errors"
	"math"
	"testing"

	"github.com/leasecalc/lease-economics/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNPVDiscountsFirstFlowOnePeriod(t *testing.T) {
	tests := []struct {
		name string
		cfs  []float64
		rate float64
		want float64
	}{
		{name: "single flow", cfs: []float64{110}, rate: 0.10, want: 100},
		{name: "two flows", cfs: []float64{110, 121}, rate: 0.10, want: 200},
		{name: "zero rate sums", cfs: []float64{-50, 20, 30}, rate: 0, want: 0},
		{name: "empty", cfs: nil, rate: 0.08, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NPV(tt.cfs, tt.rate), 1e-9)
		})
	}
}

func TestNPVNonFinite(t *testing.T) {
	assert.Equal(t, 0.0, NPV([]float64{100}, -1))
}

func TestIRRRoundTrip(t *testing.T) {
	cfg := DefaultMetricsConfig()
	series := [][]float64{
		{-1000, 300, 300, 300, 300},
		{-100000, 12000, 12000, 12000, 12000, 12000, 12000, 12000, 12000, 12000, 112000},
		{-500, 100, 200, 300},
	}
	for _, cfs := range series {
		rate, err := IRR(cfs, cfg)
		require.NoError(t, err)
		assert.InDelta(t, 0, NPV(cfs, rate), 1e-4, "series %v rate %g", cfs, rate)
	}

	rate, err := IRR(series[0], cfg)
	require.NoError(t, err)
	assert.InDelta(t, 0.077138, rate, 1e-5)
	// a bond priced at par yields its coupon
	rate, err = IRR(series[1], cfg)
	require.NoError(t, err)
	assert.InDelta(t, 0.12, rate, 1e-6)
}

func TestNewtonAndBisectionAgree(t *testing.T) {
	cfs := []float64{-1000, 300, 300, 300, 300}
	newton, ok := NewtonIRR(cfs, 0.1, 100, 1e-6, -0.99, 0.99)
	require.True(t, ok)
	bisect, ok := BisectionIRR(cfs, 200, 1e-9, -0.99, 0.99)
	require.True(t, ok)
	assert.InDelta(t, newton, bisect, 1e-6)
}

func TestIRRFallsBackToBisection(t *testing.T) {
	cfs := []float64{-1000, 300, 300, 300, 300}
	// from a guess near the upper bound the first Newton step overshoots past 0.99
	_, ok := NewtonIRR(cfs, 0.98, 100, 1e-6, -0.99, 0.99)
	require.False(t, ok)

	cfg := DefaultMetricsConfig()
	cfg.IRRInitialGuess = 0.98
	rate, err := IRR(cfs, cfg)
	require.NoError(t, err)
	assert.InDelta(t, 0.077138, rate, 1e-4)
}

func TestIRRNotFound(t *testing.T) {
	cfg := DefaultMetricsConfig()
	for _, cfs := range [][]float64{{100, 100, 100}, {-100, -100}, nil} {
		_, err := IRR(cfs, cfg)
		var notFound *IRRNotFoundError
		assert.True(t, errors.As(err, &notFound), "series %v", cfs)
	}
	_, ok := BisectionIRR([]float64{100, 100}, 100, 1e-6, -0.99, 0.99)
	assert.False(t, ok)
}

func TestPaybackPeriod(t *testing.T) {
	tests := []struct {
		name string
		cfs  []float64
		want *float64
	}{
		{name: "interpolated", cfs: []float64{-100, 40, 80}, want: ptr(2.75)},
		{name: "first year", cfs: []float64{-100, 200}, want: ptr(1.5)},
		// Cumulative lands on exactly zero at the end of the third period;
		// payback is taken as the start of the fourth (3.0), not mid-period.
		{name: "exact zero at boundary", cfs: []float64{-100, 50, 50, 50}, want: ptr(3)},
		{name: "never recovers", cfs: []float64{-100, 10, 10}, want: nil},
		{name: "never negative pays back immediately", cfs: []float64{100, 100}, want: ptr(0)},
		{name: "all zero", cfs: []float64{0, 0}, want: ptr(0)},
		{name: "empty", cfs: nil, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PaybackPeriod(tt.cfs)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func ptr(f float64) *float64 { return &f }

func TestRatiosAreSafe(t *testing.T) {
	assert.Equal(t, 0.0, EffectiveRentPSF(1000, 0, 3))
	assert.Equal(t, 0.0, EffectiveRentPSF(1000, 100, 0))
	assert.InDelta(t, 30.0, EffectiveRentPSF(900000, 10000, 3), 1e-9)
	assert.Equal(t, 0.0, CashOnCash(1000, 0))
	assert.Equal(t, 0.0, YieldOnCost(1000, 0, 100))
	assert.Equal(t, 0.0, EquityMultiple(1000, 0))
	assert.InDelta(t, 0.5, CashOnCash(50, 100), 1e-12)
	assert.InDelta(t, 0.25, YieldOnCost(75, 3, 100), 1e-12)
	assert.InDelta(t, 2.0, EquityMultiple(200, 100), 1e-12)
}

func TestRateConversions(t *testing.T) {
	m := MonthlyRate(0.12)
	assert.InDelta(t, 0.009488793, m, 1e-9)
	assert.InDelta(t, 0.12, AnnualizeMonthlyRate(m), 1e-12)
	assert.Equal(t, 0.0, MonthlyRate(0))
}

func TestCalculateMetrics(t *testing.T) {
	cfg := DefaultMetricsConfig()

	t.Run("degenerate input never yields NaN", func(t *testing.T) {
		m := CalculateMetrics(MetricsInput{}, cfg)
		for _, v := range []float64{m.NPV, m.IRR, m.EffectiveRentPSF, m.CashOnCash, m.YieldOnCost, m.EquityMultiple} {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
			assert.Equal(t, 0.0, v)
		}
		assert.False(t, m.IRRFound)
		assert.Nil(t, m.PaybackYears)
	})

	t.Run("annual granularity", func(t *testing.T) {
		in := MetricsInput{
			AnnualNet:    []float64{-1000, 300, 300, 300, 300},
			MonthlyNet:   []float64{-1000, 300, 300, 300, 300},
			OneTimeCosts: 1100,
			TermMonths:   60,
			RSF:          10,
			LandlordCost: 1000,
			Granularity:  domain.GranularityAnnual,
		}
		m := CalculateMetrics(in, cfg)
		assert.True(t, m.IRRFound)
		assert.InDelta(t, 0.077138, m.IRR, 1e-5)
		assert.InDelta(t, NPV(in.AnnualNet, 0.08), m.NPV, 1e-9)
		assert.InDelta(t, 200, m.TotalNetCashFlow, 1e-9)
		assert.InDelta(t, 4, m.EffectiveRentPSF, 1e-9)
		require.NotNil(t, m.PaybackYears)
		assert.InDelta(t, 4+1.0/3, *m.PaybackYears, 1e-9)
		// operating flows add the one-time cost back to month 0
		assert.InDelta(t, 1.3, m.EquityMultiple, 1e-9)
	})

	t.Run("all-positive series reports IRR not found", func(t *testing.T) {
		m := CalculateMetrics(MetricsInput{AnnualNet: []float64{100, 100}, TermMonths: 24, RSF: 1}, cfg)
		assert.False(t, m.IRRFound)
		assert.Equal(t, 0.0, m.IRR)
		require.NotNil(t, m.PaybackYears)
		assert.Equal(t, 0.0, *m.PaybackYears)
	})

	t.Run("monthly granularity annualizes", func(t *testing.T) {
		monthly := make([]float64, 13)
		monthly[0] = -1200
		for i := 1; i < 13; i++ {
			monthly[i] = 110
		}
		in := MetricsInput{MonthlyNet: monthly, AnnualNet: []float64{0}, TermMonths: 13, RSF: 1, Granularity: domain.GranularityMonthly}
		m := CalculateMetrics(in, cfg)
		require.True(t, m.IRRFound)
		monthlyIRR, err := IRR(monthly, cfg)
		require.NoError(t, err)
		assert.InDelta(t, AnnualizeMonthlyRate(monthlyIRR), m.IRR, 1e-12)
		assert.InDelta(t, NPV(monthly, MonthlyRate(0.08)), m.NPV, 1e-9)
		require.NotNil(t, m.PaybackYears)
		assert.InDelta(t, (11+100.0/110)/12, *m.PaybackYears, 1e-9)
	})
}
