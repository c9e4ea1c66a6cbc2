package calculation

import (
	"github.com/leasecalc/lease-economics/internal/domain"
	"github.com/shopspring/decimal"
)

// interestPlaces bounds the scale of per-row interest so balances do not
// accumulate digits across long schedules.
const interestPlaces = 10

// Amortize spreads principal over termMonths. straight_line reduces the
// balance by an equal share each month with no interest; present_value pays
// a level payment at annualRate/12 per month. A non-positive rate degrades
// present_value to straight_line. The final row always closes the balance to
// exactly zero. A zero principal yields an empty schedule.
func Amortize(principal decimal.Decimal, termMonths int, method domain.AmortizationMethod, annualRate decimal.Decimal) ([]domain.AmortizationRow, error) {
	if principal.IsNegative() {
		return nil, &InvalidPrincipalError{Principal: principal.StringFixed(2)}
	}
	if termMonths <= 0 {
		return nil, &InvalidTermError{Months: termMonths, Reason: "amortization term must be positive"}
	}
	if principal.IsZero() {
		return []domain.AmortizationRow{}, nil
	}

	monthlyRate := annualRate.Div(decimal.NewFromInt(12))
	if method != domain.AmortizationPresentValue || !monthlyRate.IsPositive() {
		return straightLine(principal, termMonths), nil
	}
	return presentValue(principal, termMonths, monthlyRate), nil
}

func straightLine(principal decimal.Decimal, termMonths int) []domain.AmortizationRow {
	rows := make([]domain.AmortizationRow, termMonths)
	step := principal.Div(decimal.NewFromInt(int64(termMonths)))
	balance := principal
	for m := 0; m < termMonths; m++ {
		reduction := step
		if m == termMonths-1 {
			reduction = balance
		}
		rows[m] = domain.AmortizationRow{
			Month:            m,
			BeginningBalance: balance,
			Payment:          reduction,
			Interest:         decimal.Zero,
			Principal:        reduction,
			EndingBalance:    balance.Sub(reduction),
		}
		balance = rows[m].EndingBalance
	}
	return rows
}

func presentValue(principal decimal.Decimal, termMonths int, monthlyRate decimal.Decimal) []domain.AmortizationRow {
	payment := LevelPayment(principal, monthlyRate, termMonths)
	rows := make([]domain.AmortizationRow, termMonths)
	balance := principal
	for m := 0; m < termMonths; m++ {
		interest := balance.Mul(monthlyRate).Round(interestPlaces)
		reduction := payment.Sub(interest)
		pay := payment
		if m == termMonths-1 || reduction.GreaterThan(balance) {
			reduction = balance
			pay = balance.Add(interest)
		}
		rows[m] = domain.AmortizationRow{
			Month:            m,
			BeginningBalance: balance,
			Payment:          pay,
			Interest:         interest,
			Principal:        reduction,
			EndingBalance:    balance.Sub(reduction),
		}
		balance = rows[m].EndingBalance
	}
	return rows
}

// LevelPayment is principal × r / (1 − (1+r)^−n)
func LevelPayment(principal, monthlyRate decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths <= 0 {
		return decimal.Zero
	}
	if !monthlyRate.IsPositive() {
		return principal.Div(decimal.NewFromInt(int64(termMonths)))
	}
	growth := decimal.NewFromInt(1)
	step := growth.Add(monthlyRate)
	for i := 0; i < termMonths; i++ {
		growth = growth.Mul(step).Round(28)
	}
	// r·g/(g−1) is the same as r/(1−g⁻¹) without a second division
	return principal.Mul(monthlyRate).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
}

// UnamortizedAt returns the balance still owed if the lease ends at month.
// Before any payment (month 0) the full principal is owed.
func UnamortizedAt(rows []domain.AmortizationRow, month int) decimal.Decimal {
	if len(rows) == 0 {
		return decimal.Zero
	}
	if month <= 0 {
		return rows[0].BeginningBalance
	}
	if month-1 >= len(rows) {
		return decimal.Zero
	}
	return rows[month-1].EndingBalance
}

// ComputeCostBasis totals the one-time deal costs and the financed principal
func ComputeCostBasis(lease *domain.LeaseTerms, records []domain.MonthlyRecord) domain.CostBasis {
	tiAllowance := lease.TI.AllowancePSF.Mul(lease.RSF)
	tiShortfall := lease.TI.ShortfallPSF().Mul(lease.RSF)
	freeRent := FreeRentValue(records)
	commission := lease.TransactionCosts.LeasingCommissionRate.Mul(AggregateBaseRent(records))
	transaction := commission.Add(lease.TransactionCosts.LegalFees).Add(lease.TransactionCosts.OtherCosts)

	return domain.CostBasis{
		TIAllowance:       tiAllowance,
		TIShortfall:       tiShortfall,
		FreeRentValue:     freeRent,
		LeasingCommission: commission,
		TransactionCosts:  transaction,
		FinancedPrincipal: FinancedPrincipal(lease.Financing, tiShortfall, freeRent, transaction),
		TotalLandlordCost: tiAllowance.Add(transaction),
	}
}

// FinancedPrincipal sums the components selected by the financing flags
func FinancedPrincipal(flags domain.FinancingFlags, tiShortfall, freeRentValue, transactionCosts decimal.Decimal) decimal.Decimal {
	principal := decimal.Zero
	if flags.AmortizeTIShortfall {
		principal = principal.Add(tiShortfall)
	}
	if flags.AmortizeFreeRent {
		principal = principal.Add(freeRentValue)
	}
	if flags.AmortizeTransactionCosts {
		principal = principal.Add(transactionCosts)
	}
	return principal
}
