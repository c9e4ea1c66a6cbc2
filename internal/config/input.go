package config

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/leasecalc/lease-economics/internal/domain"
	"github.com/leasecalc/lease-economics/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MaxTermYears bounds the lease term the engine will accept
const MaxTermYears = 50

var (
	maxRate     = decimal.NewFromInt(1)
	maxTermDays = MaxTermYears * 366

	// DefaultDiscountRate applies when the document has no settings.discount_rate
	DefaultDiscountRate = decimal.NewFromFloat(0.08)
)

// presentKeys records optional scalars whose zero value is a legal input,
// so a default only replaces a key the document leaves out.
type presentKeys struct {
	Settings struct {
		DiscountRate *yaml.Node `yaml:"discount_rate"`
	} `yaml:"settings"`
}

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes, defaults and validates a configuration document
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var keys presentKeys
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	ApplyDefaults(&config)
	if keys.Settings.DiscountRate == nil {
		config.Settings.DiscountRate = DefaultDiscountRate
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// ApplyDefaults fills in enum fields left empty in the input document. The
// discount rate is defaulted by Parse, which can tell an explicit zero from
// a missing key.
func ApplyDefaults(config *domain.Configuration) {
	l := &config.Lease
	if l.LeaseType == "" {
		l.LeaseType = domain.LeaseTypeNNN
	}
	if l.Escalation.Mode == "" {
		l.Escalation.Mode = domain.EscalationFixed
	}
	if l.Abatement.Mode == "" {
		l.Abatement.Mode = domain.AbatementAtCommencement
	}
	if l.Abatement.AppliesTo == "" {
		l.Abatement.AppliesTo = domain.AppliesToBaseOnly
	}
	if l.Financing.Method == "" {
		l.Financing.Method = domain.AmortizationStraightLine
	}
	if config.Settings.Granularity == "" {
		config.Settings.Granularity = domain.GranularityAnnual
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateLease(&config.Lease); err != nil {
		return fmt.Errorf("lease validation failed: %w", err)
	}
	if err := ip.validateSettings(&config.Settings); err != nil {
		return fmt.Errorf("settings validation failed: %w", err)
	}

	names := map[string]bool{}
	for i, scenario := range config.Scenarios {
		if err := ip.validateScenario(i, &scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if names[scenario.Name] {
			return fmt.Errorf("scenario %d validation failed: duplicate name %q", i, scenario.Name)
		}
		names[scenario.Name] = true
	}
	return nil
}

// validateLease checks the structural shape of the lease terms. Numeric
// consistency between term and expiration is left to the engine.
func (ip *InputParser) validateLease(lease *domain.LeaseTerms) error {
	if lease.Commencement.IsZero() {
		return fmt.Errorf("commencement date is required")
	}
	if lease.Term == nil && lease.Expiration == nil {
		return fmt.Errorf("either term or expiration is required")
	}
	if lease.Term != nil {
		if lease.Term.Years < 0 || lease.Term.Months < 0 {
			return fmt.Errorf("term years and months cannot be negative")
		}
		months := lease.Term.TotalMonths()
		if months <= 0 {
			return fmt.Errorf("term must be at least one month")
		}
		if months > MaxTermYears*12 {
			return fmt.Errorf("term cannot exceed %d years", MaxTermYears)
		}
	} else {
		days := lease.Expiration.Sub(lease.Commencement) / (24 * time.Hour)
		if days < 0 {
			return fmt.Errorf("expiration cannot be before commencement")
		}
		if int(days) > maxTermDays {
			return fmt.Errorf("term cannot exceed %d years", MaxTermYears)
		}
	}
	if lease.RentStart != nil && lease.RentStart.Before(lease.Commencement) {
		return fmt.Errorf("rent start cannot be before commencement")
	}
	if !lease.RSF.IsPositive() {
		return fmt.Errorf("rsf must be positive")
	}

	switch lease.LeaseType {
	case domain.LeaseTypeNNN, domain.LeaseTypeFullService, domain.LeaseTypeModifiedGross:
	default:
		return fmt.Errorf("unknown lease type %q", lease.LeaseType)
	}

	for i, row := range lease.RentSchedule {
		if row.StartMonth < 0 || row.EndMonth < row.StartMonth {
			return fmt.Errorf("rent schedule row %d has an invalid month range [%d, %d]", i, row.StartMonth, row.EndMonth)
		}
		if row.RatePSFAnnual.IsNegative() {
			return fmt.Errorf("rent schedule row %d has a negative rate", i)
		}
	}

	if err := validateEscalation(lease.Escalation); err != nil {
		return err
	}
	if err := validateAbatement(lease.Abatement); err != nil {
		return err
	}

	if err := rateInRange("operating escalation", lease.Operating.Escalation); err != nil {
		return err
	}
	if err := rateInRange("parking escalation", lease.Parking.Escalation); err != nil {
		return err
	}
	if lease.Operating.BasePSFAnnual.IsNegative() {
		return fmt.Errorf("operating expenses cannot be negative")
	}
	if lease.Parking.Spaces < 0 || lease.Parking.RatePerSpaceMonthly.IsNegative() {
		return fmt.Errorf("parking spaces and rate cannot be negative")
	}

	if err := rateInRange("leasing commission rate", lease.TransactionCosts.LeasingCommissionRate); err != nil {
		return err
	}
	if lease.TransactionCosts.LegalFees.IsNegative() || lease.TransactionCosts.OtherCosts.IsNegative() {
		return fmt.Errorf("transaction costs cannot be negative")
	}
	if lease.TI.AllowancePSF.IsNegative() || lease.TI.ActualCostPSF.IsNegative() {
		return fmt.Errorf("TI amounts cannot be negative")
	}

	switch lease.Financing.Method {
	case domain.AmortizationStraightLine, domain.AmortizationPresentValue:
	default:
		return fmt.Errorf("unknown amortization method %q", lease.Financing.Method)
	}
	if lease.Financing.InterestRate != nil {
		if err := rateInRange("financing interest rate", *lease.Financing.InterestRate); err != nil {
			return err
		}
	}

	for i, opt := range lease.TerminationOptions {
		if err := validateTermination(i, opt); err != nil {
			return err
		}
	}
	return nil
}

func validateEscalation(esc domain.EscalationSchedule) error {
	switch esc.Mode {
	case domain.EscalationFixed:
		return rateInRange("escalation rate", esc.Rate)
	case domain.EscalationCustom:
		if len(esc.Periods) == 0 {
			return fmt.Errorf("custom escalation requires at least one period")
		}
		for i, p := range esc.Periods {
			if p.StartMonth < 0 || p.EndMonth < p.StartMonth {
				return fmt.Errorf("escalation period %d has an invalid month range [%d, %d]", i, p.StartMonth, p.EndMonth)
			}
			if i > 0 {
				if prev := esc.Periods[i-1]; p.StartMonth <= prev.EndMonth {
					return fmt.Errorf("escalation periods %d [%d, %d] and %d [%d, %d] overlap or are out of order",
						i-1, prev.StartMonth, prev.EndMonth, i, p.StartMonth, p.EndMonth)
				}
			}
			if err := rateInRange(fmt.Sprintf("escalation period %d rate", i), p.Rate); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown escalation mode %q", esc.Mode)
	}
}

func validateAbatement(ab domain.AbatementSchedule) error {
	if err := validateAppliesTo(ab.AppliesTo); err != nil {
		return err
	}
	switch ab.Mode {
	case domain.AbatementAtCommencement:
		if ab.Months < 0 {
			return fmt.Errorf("free rent months cannot be negative")
		}
	case domain.AbatementCustom:
		for i, p := range ab.Periods {
			if p.FreeRentMonths < 0 {
				return fmt.Errorf("abatement period %d has negative free rent months", i)
			}
			if p.AppliesTo != "" {
				if err := validateAppliesTo(p.AppliesTo); err != nil {
					return err
				}
			}
		}
	default:
		return fmt.Errorf("unknown abatement mode %q", ab.Mode)
	}
	return nil
}

func validateAppliesTo(v domain.AbatementAppliesTo) error {
	switch v {
	case domain.AppliesToBaseOnly, domain.AppliesToBasePlusNNN:
		return nil
	default:
		return fmt.Errorf("unknown abatement applies_to %q", v)
	}
}

func validateTermination(i int, opt domain.TerminationOption) error {
	if opt.Label == "" {
		return fmt.Errorf("termination option %d needs a label", i)
	}
	if opt.NoticeMonths < 0 || opt.PenaltyMonths.IsNegative() {
		return fmt.Errorf("termination option %q: notice and penalty cannot be negative", opt.Label)
	}
	if opt.BaseRentPenaltyPSF != nil && opt.BaseRentPenaltyPSF.IsNegative() {
		return fmt.Errorf("termination option %q: per-RSF penalty cannot be negative", opt.Label)
	}
	if opt.WindowOpenMonth < 0 || opt.WindowCloseMonth < opt.WindowOpenMonth {
		return fmt.Errorf("termination option %q has an invalid window [%d, %d]", opt.Label, opt.WindowOpenMonth, opt.WindowCloseMonth)
	}
	return nil
}

func (ip *InputParser) validateSettings(s *domain.CashFlowSettings) error {
	if err := rateInRange("discount rate", s.DiscountRate); err != nil {
		return err
	}
	switch s.Granularity {
	case domain.GranularityAnnual, domain.GranularityMonthly:
		return nil
	default:
		return fmt.Errorf("unknown granularity %q", s.Granularity)
	}
}

func (ip *InputParser) validateScenario(_ int, scenario *domain.Scenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if scenario.FreeRentMonths != nil && *scenario.FreeRentMonths < 0 {
		return fmt.Errorf("free rent months cannot be negative")
	}
	if scenario.TIAllowancePSF != nil && scenario.TIAllowancePSF.IsNegative() {
		return fmt.Errorf("TI allowance cannot be negative")
	}
	if scenario.DiscountRate != nil {
		if err := rateInRange("discount rate", *scenario.DiscountRate); err != nil {
			return err
		}
	}
	return nil
}

// rateInRange requires a fraction between 0 and 100%
func rateInRange(name string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(maxRate) {
		return fmt.Errorf("%s must be between 0 and 100%%, got %s%%", name, rate.Mul(decimal.NewFromInt(100)).StringFixed(2))
	}
	return nil
}

// Warnings reports inputs that are legal but probably unintended. Overlapping
// rent rows are allowed (the first matching row wins) and are only reported.
func (ip *InputParser) Warnings(config *domain.Configuration) []string {
	var out []string
	rows := make([]domain.RentScheduleRow, len(config.Lease.RentSchedule))
	copy(rows, config.Lease.RentSchedule)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].StartMonth < rows[j].StartMonth })

	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		switch {
		case cur.StartMonth <= prev.EndMonth:
			out = append(out, fmt.Sprintf("rent rows [%d, %d] and [%d, %d] overlap; the first listed row wins",
				prev.StartMonth, prev.EndMonth, cur.StartMonth, cur.EndMonth))
		case cur.StartMonth > prev.EndMonth+1:
			out = append(out, fmt.Sprintf("no rent row covers months %d to %d", prev.EndMonth+1, cur.StartMonth-1))
		}
	}
	if len(rows) == 0 {
		out = append(out, "rent schedule is empty; base rent will be zero")
	} else if rows[0].StartMonth > 0 {
		out = append(out, fmt.Sprintf("no rent row covers months 0 to %d", rows[0].StartMonth-1))
	}
	out = append(out, escalationCoverageWarnings(&config.Lease)...)
	if config.Lease.TI.ActualCostPSF.GreaterThan(config.Lease.TI.AllowancePSF) && !config.Lease.Financing.AmortizeTIShortfall {
		out = append(out, "TI shortfall is charged up front; set financing.amortize_ti_shortfall to spread it over the term")
	}
	return out
}

// escalationCoverageWarnings reports custom escalation periods that leave
// lease months uncovered or run past the last lease month. Uncovered months
// are charged the unescalated base rate. Periods are assumed ordered, which
// validation enforces.
func escalationCoverageWarnings(lease *domain.LeaseTerms) []string {
	periods := lease.Escalation.Periods
	if lease.Escalation.Mode != domain.EscalationCustom || len(periods) == 0 {
		return nil
	}
	var out []string
	if periods[0].StartMonth > 0 {
		out = append(out, fmt.Sprintf("no escalation period covers months 0 to %d", periods[0].StartMonth-1))
	}
	for i := 1; i < len(periods); i++ {
		if gap := periods[i-1].EndMonth + 1; periods[i].StartMonth > gap {
			out = append(out, fmt.Sprintf("no escalation period covers months %d to %d", gap, periods[i].StartMonth-1))
		}
	}

	term := termMonths(lease)
	if term <= 0 {
		return out
	}
	last := periods[len(periods)-1]
	switch {
	case last.EndMonth < term-1:
		out = append(out, fmt.Sprintf("no escalation period covers months %d to %d", last.EndMonth+1, term-1))
	case last.EndMonth > term-1:
		out = append(out, fmt.Sprintf("escalation period [%d, %d] runs past the last lease month %d",
			last.StartMonth, last.EndMonth, term-1))
	}
	return out
}

// termMonths resolves the lease length the same way the timeline does, or
// returns 0 when the document does not determine it.
func termMonths(lease *domain.LeaseTerms) int {
	switch {
	case lease.Term != nil:
		months := lease.Term.TotalMonths()
		if lease.Term.IncludeAbatementInTerm {
			months += lease.Abatement.TotalMonths()
		}
		return months
	case lease.Expiration != nil && !lease.Commencement.IsZero():
		return dateutil.MonthsBetween(dateutil.Truncate(lease.Commencement), dateutil.AddDays(dateutil.Truncate(*lease.Expiration), 1))
	default:
		return 0
	}
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	commencement := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	rate := decimal.NewFromFloat(0.06)
	rsfPenalty := decimal.NewFromInt(5)
	plusTwo := decimal.NewFromInt(2)
	sixMonths := 6
	richerTI := decimal.NewFromInt(65)

	return &domain.Configuration{
		Lease: domain.LeaseTerms{
			Name:         "Example Office Lease",
			Commencement: commencement,
			Term:         &domain.LeaseTerm{Years: 10},
			RSF:          decimal.NewFromInt(10000),
			LeaseType:    domain.LeaseTypeNNN,
			RentSchedule: []domain.RentScheduleRow{
				{StartMonth: 0, EndMonth: 119, RatePSFAnnual: decimal.NewFromInt(30)},
			},
			Escalation: domain.EscalationSchedule{Mode: domain.EscalationFixed, Rate: decimal.NewFromFloat(0.03)},
			Abatement: domain.AbatementSchedule{
				Mode:      domain.AbatementAtCommencement,
				Months:    3,
				AppliesTo: domain.AppliesToBaseOnly,
			},
			Operating: domain.OperatingSettings{
				BasePSFAnnual: decimal.NewFromInt(12),
				Escalation:    decimal.NewFromFloat(0.03),
				EscalationCap: decimal.NewFromFloat(0.05),
			},
			Parking: domain.ParkingSettings{
				Spaces:              20,
				RatePerSpaceMonthly: decimal.NewFromInt(150),
				Escalation:          decimal.NewFromFloat(0.02),
			},
			TransactionCosts: domain.TransactionCosts{
				LeasingCommissionRate: decimal.NewFromFloat(0.04),
				LegalFees:             decimal.NewFromInt(15000),
				OtherCosts:            decimal.NewFromInt(5000),
			},
			TI: domain.TIAllowance{AllowancePSF: decimal.NewFromInt(50), ActualCostPSF: decimal.NewFromInt(60)},
			Financing: domain.FinancingFlags{
				AmortizeTIShortfall: true,
				Method:              domain.AmortizationPresentValue,
				InterestRate:        &rate,
			},
			TerminationOptions: []domain.TerminationOption{
				{
					Label:              "Year 5 Early Out",
					NoticeMonths:       9,
					PenaltyMonths:      decimal.NewFromInt(6),
					BaseRentPenaltyPSF: &rsfPenalty,
					WindowOpenMonth:    54,
					WindowCloseMonth:   66,
				},
			},
		},
		Settings: domain.CashFlowSettings{
			DiscountRate: DefaultDiscountRate,
			Granularity:  domain.GranularityAnnual,
		},
		Scenarios: []domain.Scenario{
			{Name: "Base Case"},
			{Name: "Rent +$2", RentDeltaPSF: plusTwo},
			{Name: "Six Months Free", FreeRentMonths: &sixMonths, TIAllowancePSF: &richerTI},
		},
	}
}
