package domain

import (
	"fmt"
	"time"

	"github.com/leasecalc/lease-economics/pkg/money"
	"github.com/shopspring/decimal"
)

// LeaseType distinguishes how operating expenses are billed
type LeaseType string

const (
	LeaseTypeNNN           LeaseType = "nnn"
	LeaseTypeFullService   LeaseType = "full_service"
	LeaseTypeModifiedGross LeaseType = "modified_gross"
)

// EscalationMode selects fixed or per-period escalation
type EscalationMode string

const (
	EscalationFixed  EscalationMode = "fixed"
	EscalationCustom EscalationMode = "custom"
)

// AbatementMode selects where free rent is placed
type AbatementMode string

const (
	AbatementAtCommencement AbatementMode = "at_commencement"
	AbatementCustom         AbatementMode = "custom"
)

// AbatementAppliesTo selects which charges a free-rent month credits
type AbatementAppliesTo string

const (
	AppliesToBaseOnly    AbatementAppliesTo = "base_only"
	AppliesToBasePlusNNN AbatementAppliesTo = "base_plus_nnn"
)

// AmortizationMethod selects how financed costs are spread over the term
type AmortizationMethod string

const (
	AmortizationStraightLine AmortizationMethod = "straight_line"
	AmortizationPresentValue AmortizationMethod = "present_value"
)

// Granularity selects the cash-flow series the metrics run on
type Granularity string

const (
	GranularityAnnual  Granularity = "annual"
	GranularityMonthly Granularity = "monthly"
)

// LeaseTerms is the full set of negotiated lease inputs consumed by the engine.
// Month indices throughout are 0-based offsets from commencement and ranges
// are inclusive on both ends.
type LeaseTerms struct {
	Name         string          `yaml:"name" json:"name"`
	Commencement time.Time       `yaml:"commencement" json:"commencement"`
	Expiration   *time.Time      `yaml:"expiration,omitempty" json:"expiration,omitempty"`
	Term         *LeaseTerm      `yaml:"term,omitempty" json:"term,omitempty"`
	// RentStart overrides the rent start derived from commencement and free rent
	RentStart    *time.Time      `yaml:"rent_start,omitempty" json:"rent_start,omitempty"`
	RSF          decimal.Decimal `yaml:"rsf" json:"rsf"`
	LeaseType    LeaseType       `yaml:"lease_type" json:"lease_type"`

	RentSchedule []RentScheduleRow  `yaml:"rent_schedule" json:"rent_schedule"`
	Escalation   EscalationSchedule `yaml:"escalation" json:"escalation"`
	Abatement    AbatementSchedule  `yaml:"abatement" json:"abatement"`

	Operating        OperatingSettings `yaml:"operating" json:"operating"`
	Parking          ParkingSettings   `yaml:"parking" json:"parking"`
	TransactionCosts TransactionCosts  `yaml:"transaction_costs" json:"transaction_costs"`
	TI               TIAllowance       `yaml:"ti" json:"ti"`
	Financing        FinancingFlags    `yaml:"financing" json:"financing"`

	TerminationOptions []TerminationOption `yaml:"termination_options,omitempty" json:"termination_options,omitempty"`
}

// LeaseTerm is a term expressed as years and months
type LeaseTerm struct {
	Years                  int  `yaml:"years" json:"years"`
	Months                 int  `yaml:"months" json:"months"`
	IncludeAbatementInTerm bool `yaml:"include_abatement_in_term" json:"include_abatement_in_term"`
}

// TotalMonths returns the term length before any abatement extension
func (t LeaseTerm) TotalMonths() int {
	return t.Years*12 + t.Months
}

// RentScheduleRow prices a month range at an annual per-square-foot rate
type RentScheduleRow struct {
	StartMonth    int             `yaml:"start_month" json:"start_month"`
	EndMonth      int             `yaml:"end_month" json:"end_month"`
	RatePSFAnnual decimal.Decimal `yaml:"rate_psf_annual" json:"rate_psf_annual"`
}

// Contains reports whether month falls inside the row
func (r RentScheduleRow) Contains(month int) bool {
	return month >= r.StartMonth && month <= r.EndMonth
}

// EscalationSchedule is either one fixed annual rate or a list of periods
type EscalationSchedule struct {
	Mode    EscalationMode     `yaml:"mode" json:"mode"`
	Rate    decimal.Decimal    `yaml:"rate" json:"rate"` // fraction, 0.03 = 3%
	Periods []EscalationPeriod `yaml:"periods,omitempty" json:"periods,omitempty"`
}

// EscalationPeriod applies its own annual rate from its own start month
type EscalationPeriod struct {
	StartMonth int             `yaml:"start_month" json:"start_month"`
	EndMonth   int             `yaml:"end_month" json:"end_month"`
	Rate       decimal.Decimal `yaml:"rate" json:"rate"`
}

// AbatementSchedule places free-rent months
type AbatementSchedule struct {
	Mode      AbatementMode      `yaml:"mode" json:"mode"`
	Months    int                `yaml:"months" json:"months"`
	AppliesTo AbatementAppliesTo `yaml:"applies_to" json:"applies_to"`
	Periods   []AbatementPeriod  `yaml:"periods,omitempty" json:"periods,omitempty"`
}

// AbatementPeriod grants FreeRentMonths free months starting at StartMonth,
// which must fit inside [StartMonth, EndMonth]
type AbatementPeriod struct {
	StartMonth     int                `yaml:"start_month" json:"start_month"`
	EndMonth       int                `yaml:"end_month" json:"end_month"`
	FreeRentMonths int                `yaml:"free_rent_months" json:"free_rent_months"`
	AppliesTo      AbatementAppliesTo `yaml:"applies_to" json:"applies_to"`
}

// TotalMonths returns the number of free-rent months the schedule grants
func (a AbatementSchedule) TotalMonths() int {
	if a.Mode == AbatementCustom {
		total := 0
		for _, p := range a.Periods {
			total += p.FreeRentMonths
		}
		return total
	}
	return a.Months
}

// OperatingSettings describes the recurring pass-through charge
type OperatingSettings struct {
	BasePSFAnnual decimal.Decimal `yaml:"base_psf_annual" json:"base_psf_annual"`
	Escalation    decimal.Decimal `yaml:"escalation" json:"escalation"`
	EscalationCap decimal.Decimal `yaml:"escalation_cap" json:"escalation_cap"` // 0 = uncapped
}

// ParkingSettings describes the recurring parking charge
type ParkingSettings struct {
	Spaces              int             `yaml:"spaces" json:"spaces"`
	RatePerSpaceMonthly decimal.Decimal `yaml:"rate_per_space_monthly" json:"rate_per_space_monthly"`
	Escalation          decimal.Decimal `yaml:"escalation" json:"escalation"`
	EscalationCap       decimal.Decimal `yaml:"escalation_cap" json:"escalation_cap"`
}

// TransactionCosts are the one-time deal costs
type TransactionCosts struct {
	LeasingCommissionRate decimal.Decimal `yaml:"leasing_commission_rate" json:"leasing_commission_rate"` // fraction of aggregate base rent
	LegalFees             decimal.Decimal `yaml:"legal_fees" json:"legal_fees"`
	OtherCosts            decimal.Decimal `yaml:"other_costs" json:"other_costs"`
}

// TIAllowance holds the landlord allowance and the actual build cost, both per RSF
type TIAllowance struct {
	AllowancePSF  decimal.Decimal `yaml:"allowance_psf" json:"allowance_psf"`
	ActualCostPSF decimal.Decimal `yaml:"actual_cost_psf" json:"actual_cost_psf"`
}

// ShortfallPSF is the build cost above the allowance, never negative
func (ti TIAllowance) ShortfallPSF() decimal.Decimal {
	s := ti.ActualCostPSF.Sub(ti.AllowancePSF)
	if s.IsNegative() {
		return decimal.Zero
	}
	return s
}

// FinancingFlags pick which cost components are amortized and how
type FinancingFlags struct {
	AmortizeTIShortfall      bool               `yaml:"amortize_ti_shortfall" json:"amortize_ti_shortfall"`
	AmortizeFreeRent         bool               `yaml:"amortize_free_rent" json:"amortize_free_rent"`
	AmortizeTransactionCosts bool               `yaml:"amortize_transaction_costs" json:"amortize_transaction_costs"`
	Method                   AmortizationMethod `yaml:"method" json:"method"`
	InterestRate             *decimal.Decimal   `yaml:"interest_rate,omitempty" json:"interest_rate,omitempty"`
}

// Any reports whether at least one component is financed
func (f FinancingFlags) Any() bool {
	return f.AmortizeTIShortfall || f.AmortizeFreeRent || f.AmortizeTransactionCosts
}

// TerminationOption is a negotiated right to end the lease early
type TerminationOption struct {
	Label              string           `yaml:"label" json:"label"`
	NoticeMonths       int              `yaml:"notice_months" json:"notice_months"`
	PenaltyMonths      decimal.Decimal  `yaml:"penalty_months" json:"penalty_months"`
	BaseRentPenaltyPSF *decimal.Decimal `yaml:"base_rent_penalty_psf,omitempty" json:"base_rent_penalty_psf,omitempty"`
	WindowOpenMonth    int              `yaml:"window_open_month" json:"window_open_month"`
	WindowCloseMonth   int              `yaml:"window_close_month" json:"window_close_month"`
}

// InWindow reports whether the lease can end at month under this option.
// A zero-width window (both ends 0) means the option is always open.
func (o TerminationOption) InWindow(month int) bool {
	if o.WindowOpenMonth == 0 && o.WindowCloseMonth == 0 {
		return true
	}
	return month >= o.WindowOpenMonth && month <= o.WindowCloseMonth
}

// LastNoticeMonth is the last month in which notice can still be served
func (o TerminationOption) LastNoticeMonth() int {
	return o.WindowCloseMonth - o.NoticeMonths
}

// NoticeServable reports whether notice served at month still ends the lease
// inside the window. An always-open option accepts notice at any month.
func (o TerminationOption) NoticeServable(month int) bool {
	if month < 0 {
		return false
	}
	if o.WindowOpenMonth == 0 && o.WindowCloseMonth == 0 {
		return true
	}
	return month <= o.LastNoticeMonth()
}

// CashFlowSettings configure discounting
type CashFlowSettings struct {
	DiscountRate decimal.Decimal `yaml:"discount_rate" json:"discount_rate"`
	Granularity  Granularity     `yaml:"granularity" json:"granularity"`
}

// Scenario is a named variant of the base lease
type Scenario struct {
	Name           string           `yaml:"name" json:"name"`
	RentDeltaPSF   decimal.Decimal  `yaml:"rent_delta_psf" json:"rent_delta_psf"`
	FreeRentMonths *int             `yaml:"free_rent_months,omitempty" json:"free_rent_months,omitempty"`
	TIAllowancePSF *decimal.Decimal `yaml:"ti_allowance_psf,omitempty" json:"ti_allowance_psf,omitempty"`
	DiscountRate   *decimal.Decimal `yaml:"discount_rate,omitempty" json:"discount_rate,omitempty"`
}

// Apply returns a copy of the lease with the scenario's overrides applied
func (s Scenario) Apply(base LeaseTerms) LeaseTerms {
	out := base
	out.Name = s.Name
	if !s.RentDeltaPSF.IsZero() {
		rows := make([]RentScheduleRow, len(base.RentSchedule))
		for i, r := range base.RentSchedule {
			r.RatePSFAnnual = r.RatePSFAnnual.Add(s.RentDeltaPSF)
			rows[i] = r
		}
		out.RentSchedule = rows
	}
	if s.FreeRentMonths != nil {
		ab := base.Abatement
		ab.Mode = AbatementAtCommencement
		ab.Months = *s.FreeRentMonths
		ab.Periods = nil
		if ab.AppliesTo == "" {
			ab.AppliesTo = AppliesToBaseOnly
		}
		out.Abatement = ab
	}
	if s.TIAllowancePSF != nil {
		out.TI.AllowancePSF = *s.TIAllowancePSF
	}
	return out
}

// Settings returns the cash-flow settings for the scenario
func (s Scenario) Settings(base CashFlowSettings) CashFlowSettings {
	out := base
	if s.DiscountRate != nil {
		out.DiscountRate = *s.DiscountRate
	}
	return out
}

// Configuration is the top-level input document
type Configuration struct {
	Lease     LeaseTerms       `yaml:"lease" json:"lease"`
	Settings  CashFlowSettings `yaml:"settings" json:"settings"`
	Scenarios []Scenario       `yaml:"scenarios,omitempty" json:"scenarios,omitempty"`
}

// GenerateAssumptions lists the headline inputs for report headers
func (c *Configuration) GenerateAssumptions() []string {
	out := []string{
		fmt.Sprintf("Discount rate: %.2f%% annually", money.Percent(c.Settings.DiscountRate).InexactFloat64()),
		fmt.Sprintf("Rentable area: %s RSF (%s lease)", c.Lease.RSF.StringFixed(0), c.Lease.LeaseType),
	}
	switch c.Lease.Escalation.Mode {
	case EscalationCustom:
		out = append(out, fmt.Sprintf("Escalation: %d custom periods", len(c.Lease.Escalation.Periods)))
	default:
		out = append(out, fmt.Sprintf("Escalation: %.2f%% fixed, compounding annually", money.Percent(c.Lease.Escalation.Rate).InexactFloat64()))
	}
	if c.Lease.Financing.Any() {
		out = append(out, fmt.Sprintf("Financed costs amortized by %s method", c.Lease.Financing.Method))
	}
	return out
}
