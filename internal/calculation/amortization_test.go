package calculation

import (
	"errors"
	"testing"

	"github.com/leasecalc/lease-economics/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmortizeErrors(t *testing.T) {
	_, err := Amortize(d(-1), 12, domain.AmortizationStraightLine, d(0))
	var pErr *InvalidPrincipalError
	assert.True(t, errors.As(err, &pErr))

	for _, months := range []int{0, -12} {
		_, err = Amortize(d(1000), months, domain.AmortizationPresentValue, d(0.06))
		var tErr *InvalidTermError
		assert.True(t, errors.As(err, &tErr), "term %d", months)
	}
}

func TestAmortizeZeroPrincipal(t *testing.T) {
	rows, err := Amortize(decimal.Zero, 36, domain.AmortizationPresentValue, d(0.06))
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestAmortizeStraightLine(t *testing.T) {
	rows, err := Amortize(d(120000), 36, domain.AmortizationStraightLine, d(0.06))
	require.NoError(t, err)
	require.Len(t, rows, 36)

	total := decimal.Zero
	for i, r := range rows {
		assert.Equal(t, i, r.Month)
		assert.True(t, r.Interest.IsZero(), "month %d interest %s", i, r.Interest)
		assert.True(t, r.Principal.Equal(r.Payment))
		if i > 0 {
			assert.True(t, r.BeginningBalance.Equal(rows[i-1].EndingBalance))
		}
		total = total.Add(r.Principal)
	}
	assert.True(t, rows[0].Payment.Equal(d(120000).Div(d(36))))
	assert.True(t, rows[35].EndingBalance.IsZero())
	assert.True(t, total.Equal(d(120000)))
}

func TestAmortizePresentValue(t *testing.T) {
	principal := d(100000)
	rows, err := Amortize(principal, 36, domain.AmortizationPresentValue, d(0.06))
	require.NoError(t, err)
	require.Len(t, rows, 36)

	assert.InDelta(t, 3042.1937, rows[0].Payment.InexactFloat64(), 1e-3)
	assert.InDelta(t, 500.0, rows[0].Interest.InexactFloat64(), 1e-9)

	totalPrincipal := decimal.Zero
	for i, r := range rows {
		assert.True(t, r.Payment.Sub(r.Interest).Sub(r.Principal).Abs().LessThan(d(1e-6)), "month %d", i)
		assert.True(t, r.EndingBalance.LessThan(r.BeginningBalance), "month %d balance must fall", i)
		assert.False(t, r.EndingBalance.IsNegative())
		totalPrincipal = totalPrincipal.Add(r.Principal)
	}
	assert.InDelta(t, 0, rows[35].EndingBalance.InexactFloat64(), 1e-6)
	assert.InDelta(t, 3042.1937, rows[35].Payment.InexactFloat64(), 1e-3)
	assert.True(t, totalPrincipal.Equal(principal))
}

func TestAmortizePresentValueZeroRateFallsBack(t *testing.T) {
	pv, err := Amortize(d(36000), 36, domain.AmortizationPresentValue, decimal.Zero)
	require.NoError(t, err)
	sl, err := Amortize(d(36000), 36, domain.AmortizationStraightLine, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, sl, pv)
	assert.True(t, pv[0].Payment.Equal(d(1000)))
}

func TestFinancedPrincipal(t *testing.T) {
	ti, free, tx := d(100000), d(50000), d(20000)
	tests := []struct {
		name  string
		flags domain.FinancingFlags
		want  float64
	}{
		{name: "nothing financed", flags: domain.FinancingFlags{}, want: 0},
		{name: "ti only", flags: domain.FinancingFlags{AmortizeTIShortfall: true}, want: 100000},
		{name: "free rent only", flags: domain.FinancingFlags{AmortizeFreeRent: true}, want: 50000},
		{name: "ti and transaction", flags: domain.FinancingFlags{AmortizeTIShortfall: true, AmortizeTransactionCosts: true}, want: 120000},
		{name: "everything", flags: domain.FinancingFlags{AmortizeTIShortfall: true, AmortizeFreeRent: true, AmortizeTransactionCosts: true}, want: 170000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinancedPrincipal(tt.flags, ti, free, tx)
			assert.True(t, got.Equal(d(tt.want)), "got %s", got)
		})
	}
}

func TestUnamortizedAt(t *testing.T) {
	rows, err := Amortize(d(1200), 12, domain.AmortizationStraightLine, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, UnamortizedAt(rows, 0).Equal(d(1200)))
	assert.True(t, UnamortizedAt(rows, 1).Equal(d(1100)))
	assert.True(t, UnamortizedAt(rows, 12).IsZero())
	assert.True(t, UnamortizedAt(rows, 40).IsZero())
	assert.True(t, UnamortizedAt(nil, 3).IsZero())
}

func TestComputeCostBasis(t *testing.T) {
	lease := threeYearLease()
	lease.TI = domain.TIAllowance{AllowancePSF: d(50), ActualCostPSF: d(60)}
	lease.TransactionCosts = domain.TransactionCosts{LeasingCommissionRate: d(0.04), LegalFees: d(5000)}
	lease.Abatement.Months = 2
	lease.Financing = domain.FinancingFlags{AmortizeTIShortfall: true}

	costs := ComputeCostBasis(lease, mustSchedule(lease))
	assert.True(t, costs.TIAllowance.Equal(d(500000)))
	assert.True(t, costs.TIShortfall.Equal(d(100000)))
	assert.True(t, costs.FreeRentValue.Equal(d(50000)))
	// commission is on contractual base rent before free rent
	assert.True(t, costs.LeasingCommission.Equal(d(36000)), "got %s", costs.LeasingCommission)
	assert.True(t, costs.TransactionCosts.Equal(d(41000)))
	assert.True(t, costs.FinancedPrincipal.Equal(d(100000)))
	assert.True(t, costs.TotalLandlordCost.Equal(d(541000)))
}

func TestTIShortfallNeverNegative(t *testing.T) {
	ti := domain.TIAllowance{AllowancePSF: d(60), ActualCostPSF: d(50)}
	assert.True(t, ti.ShortfallPSF().IsZero())
}
