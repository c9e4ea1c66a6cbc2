package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaseTimeline is the canonical month-indexed view of a lease term
type LeaseTimeline struct {
	Commencement    time.Time `json:"commencement"`
	Expiration      time.Time `json:"expiration"`
	RentStart       time.Time `json:"rent_start"`
	TermMonths      int       `json:"term_months"`
	AbatementMonths int       `json:"abatement_months"`
	TermYears       float64   `json:"term_years"` // display only
}

// TermConsistency reports whether a stored term and a stored expiration agree.
// It is informational; nothing is corrected.
type TermConsistency struct {
	Checked           bool      `json:"checked"`
	Consistent        bool      `json:"consistent"`
	DerivedExpiration time.Time `json:"derived_expiration"`
	StoredExpiration  time.Time `json:"stored_expiration"`
	DiscrepancyDays   int       `json:"discrepancy_days"`
	Message           string    `json:"message,omitempty"`
}

// MonthlyRecord is one month of the rent schedule
type MonthlyRecord struct {
	Month     int       `json:"month"`
	LeaseYear int       `json:"lease_year"`
	StartDate time.Time `json:"start_date"`

	RatePSFAnnual decimal.Decimal `json:"rate_psf_annual"` // escalation-adjusted
	BaseRent      decimal.Decimal `json:"base_rent"`
	FreeRent      decimal.Decimal `json:"free_rent"` // <= 0
	NetRent       decimal.Decimal `json:"net_rent"`  // BaseRent + FreeRent, unfloored
	Operating     decimal.Decimal `json:"operating"`
	Parking       decimal.Decimal `json:"parking"`
}

// NetRentFloored is the presentation value of net rent
func (m MonthlyRecord) NetRentFloored() decimal.Decimal {
	if m.NetRent.IsNegative() {
		return decimal.Zero
	}
	return m.NetRent
}

// TotalDue is net rent plus the recurring overlays
func (m MonthlyRecord) TotalDue() decimal.Decimal {
	return m.NetRent.Add(m.Operating).Add(m.Parking)
}

// IsAbated reports whether the month carries a free-rent credit
func (m MonthlyRecord) IsAbated() bool {
	return m.FreeRent.IsNegative()
}

// AmortizationRow is one month of an amortization schedule
type AmortizationRow struct {
	Month            int             `json:"month"`
	BeginningBalance decimal.Decimal `json:"beginning_balance"`
	Payment          decimal.Decimal `json:"payment"`
	Interest         decimal.Decimal `json:"interest"`
	Principal        decimal.Decimal `json:"principal"`
	EndingBalance    decimal.Decimal `json:"ending_balance"`
}

// AnnualLine aggregates one calendar year of the monthly schedule
type AnnualLine struct {
	Year      int `json:"year"`
	YearIndex int `json:"year_index"`
	Months    int `json:"months"`

	BaseRent         decimal.Decimal `json:"base_rent"`
	Operating        decimal.Decimal `json:"operating"`
	Parking          decimal.Decimal `json:"parking"`
	Abatement        decimal.Decimal `json:"abatement"` // <= 0
	TIShortfall      decimal.Decimal `json:"ti_shortfall"`
	TransactionCosts decimal.Decimal `json:"transaction_costs"`
	AmortizedCost    decimal.Decimal `json:"amortized_cost"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	NetCashFlow      decimal.Decimal `json:"net_cash_flow"`
}

// TerminationComponents break down the cost of ending the lease at a month
type TerminationComponents struct {
	Month              int             `json:"month"`
	CurrentMonthlyRent decimal.Decimal `json:"current_monthly_rent"`
	PenaltyMonths      decimal.Decimal `json:"penalty_months"`
	PenaltyRent        decimal.Decimal `json:"penalty_rent"`
	RSFPenalty         decimal.Decimal `json:"rsf_penalty"`
	UnamortizedBalance decimal.Decimal `json:"unamortized_balance"`
	TotalFee           decimal.Decimal `json:"total_fee"`
	EquivalentMonths   decimal.Decimal `json:"equivalent_months"`
	InWindow           bool            `json:"in_window"`
	// NoticeServable is false once notice given this month would miss the window
	NoticeServable     bool            `json:"notice_servable"`
}

// TerminationSchedule is the precomputed fee series for one option
type TerminationSchedule struct {
	Option TerminationOption       `json:"option"`
	Fees   []TerminationComponents `json:"fees"`
}

// CostBasis collects the one-time cost components of a deal
type CostBasis struct {
	TIAllowance       decimal.Decimal `json:"ti_allowance"`
	TIShortfall       decimal.Decimal `json:"ti_shortfall"`
	FreeRentValue     decimal.Decimal `json:"free_rent_value"`
	LeasingCommission decimal.Decimal `json:"leasing_commission"`
	TransactionCosts  decimal.Decimal `json:"transaction_costs"` // commission + legal + other
	FinancedPrincipal decimal.Decimal `json:"financed_principal"`
	TotalLandlordCost decimal.Decimal `json:"total_landlord_cost"`
}

// Metrics is the investment summary of a run. Degenerate inputs yield zeros,
// never NaN or Inf.
type Metrics struct {
	NPV              float64  `json:"npv"`
	IRR              float64  `json:"irr"`
	IRRFound         bool     `json:"irr_found"`
	EffectiveRentPSF float64  `json:"effective_rent_psf"`
	PaybackYears     *float64 `json:"payback_years,omitempty"`
	CashOnCash       float64  `json:"cash_on_cash"`
	YieldOnCost      float64  `json:"yield_on_cost"`
	EquityMultiple   float64  `json:"equity_multiple"`
	TotalNetCashFlow float64  `json:"total_net_cash_flow"`
}

// ScenarioResult is everything one engine run produces
type ScenarioResult struct {
	Name         string                `json:"name"`
	Timeline     LeaseTimeline         `json:"timeline"`
	Consistency  TermConsistency       `json:"consistency"`
	Monthly      []MonthlyRecord       `json:"monthly"`
	Amortization []AmortizationRow     `json:"amortization"`
	Annual       []AnnualLine          `json:"annual"`
	Termination  []TerminationSchedule `json:"termination"`
	Costs        CostBasis             `json:"costs"`
	Metrics      Metrics               `json:"metrics"`
	Settings     CashFlowSettings      `json:"settings"`
	RSF          decimal.Decimal       `json:"rsf"`
}

// CumulativeBreakEvenResult describes where the cumulative net cash flow of
// two scenarios crosses
type CumulativeBreakEvenResult struct {
	YearIndex        int             `json:"year_index"`
	CalendarYear     float64         `json:"calendar_year"`
	Fraction         decimal.Decimal `json:"fraction_of_year"`
	CumulativeAmount decimal.Decimal `json:"cumulative_amount"`
	BreakEvenMonth   int             `json:"break_even_month"`
	BreakEvenYear    int             `json:"break_even_year"`
}

// ScenarioComparison is the result of running every scenario of a configuration
type ScenarioComparison struct {
	RunID               string                     `json:"run_id"`
	GeneratedAt         time.Time                  `json:"generated_at"`
	Scenarios           []ScenarioResult           `json:"scenarios"`
	BestNPVScenario     string                     `json:"best_npv_scenario"`
	BestEffectiveRent   string                     `json:"best_effective_rent_scenario"`
	BreakEven           *CumulativeBreakEvenResult `json:"break_even,omitempty"`
	Assumptions         []string                   `json:"assumptions"`
	ConsistencyWarnings []string                   `json:"consistency_warnings,omitempty"`
}
