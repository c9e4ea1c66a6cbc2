package calculation

import (
	"context"
	"fmt"

	"github.com/leasecalc/lease-economics/internal/domain"
	"github.com/leasecalc/lease-economics/pkg/money"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// BaseCaseName labels the unmodified lease when a configuration has no scenarios
const BaseCaseName = "Base Case"

// CalculationEngine runs the lease pipeline for one or more scenarios. The
// pipeline stages are pure; the engine adds logging and parallel fan-out.
type CalculationEngine struct {
	Config      MetricsConfig
	MaxParallel int // 0 means one goroutine per scenario
	Logger      Logger
}

// NewCalculationEngine creates an engine with the default metrics conventions
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Config: DefaultMetricsConfig(),
		Logger: NopLogger{},
	}
}

// NewCalculationEngineWithConfig creates an engine with caller-supplied conventions
func NewCalculationEngineWithConfig(cfg MetricsConfig) *CalculationEngine {
	ce := NewCalculationEngine()
	ce.Config = cfg
	return ce
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// RunScenario runs the full pipeline for one lease:
// normalize → rent schedule → cost basis/amortization → annual, termination, metrics.
func (ce *CalculationEngine) RunScenario(ctx context.Context, lease *domain.LeaseTerms, settings domain.CashFlowSettings) (*domain.ScenarioResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := ce.Config.WithDiscountRate(money.ToFloat(settings.DiscountRate))

	timeline, err := NormalizeTimeline(lease, cfg)
	if err != nil {
		return nil, fmt.Errorf("normalize timeline for %q: %w", lease.Name, err)
	}
	consistency := CheckTermConsistency(lease)
	if consistency.Checked && !consistency.Consistent {
		ce.Logger.Warnf("%s: %s", lease.Name, consistency.Message)
	}

	records := BuildRentSchedule(timeline, lease)
	costs := ComputeCostBasis(lease, records)

	var amortization []domain.AmortizationRow
	if lease.Financing.Any() {
		rate := cfg.DefaultFinancingRate
		if lease.Financing.InterestRate != nil {
			rate = *lease.Financing.InterestRate
		}
		amortization, err = Amortize(costs.FinancedPrincipal, timeline.TermMonths, lease.Financing.Method, rate)
		if err != nil {
			return nil, fmt.Errorf("amortize financed costs for %q: %w", lease.Name, err)
		}
	}

	annualIn := AnnualInput{
		Records:          records,
		Amortization:     amortization,
		TIShortfall:      decimal.Zero,
		TransactionCosts: decimal.Zero,
	}
	if !lease.Financing.AmortizeTIShortfall {
		annualIn.TIShortfall = costs.TIShortfall
	}
	if !lease.Financing.AmortizeTransactionCosts {
		annualIn.TransactionCosts = costs.TransactionCosts
	}
	annual := AggregateAnnual(annualIn)

	termination := make([]domain.TerminationSchedule, 0, len(lease.TerminationOptions))
	for _, opt := range lease.TerminationOptions {
		termination = append(termination, domain.TerminationSchedule{
			Option: opt,
			Fees: FeeSeries(TerminationInput{
				Records:      records,
				Amortization: amortization,
				RSF:          lease.RSF,
				Option:       opt,
			}),
		})
	}

	metrics := CalculateMetrics(MetricsInput{
		AnnualNet:    money.Floats(NetCashFlows(annual)),
		MonthlyNet:   money.Floats(MonthlyNetCashFlows(annualIn)),
		OneTimeCosts: annualIn.TIShortfall.Add(annualIn.TransactionCosts).InexactFloat64(),
		TermMonths:   timeline.TermMonths,
		RSF:          lease.RSF.InexactFloat64(),
		LandlordCost: costs.TotalLandlordCost.InexactFloat64(),
		Granularity:  settings.Granularity,
	}, cfg)
	if !metrics.IRRFound {
		ce.Logger.Debugf("%s: no IRR in [%g, %g]", lease.Name, cfg.IRRLowerBound, cfg.IRRUpperBound)
	}

	ce.Logger.Debugf("%s: %d months, %d free, NPV %.2f, effective rent %.2f/RSF",
		lease.Name, timeline.TermMonths, AbatedMonths(records), metrics.NPV, metrics.EffectiveRentPSF)

	return &domain.ScenarioResult{
		Name:         lease.Name,
		Timeline:     timeline,
		Consistency:  consistency,
		Monthly:      records,
		Amortization: amortization,
		Annual:       annual,
		Termination:  termination,
		Costs:        costs,
		Metrics:      metrics,
		Settings:     settings,
		RSF:          lease.RSF,
	}, nil
}

// RunScenarios runs every scenario of the configuration in parallel and
// returns them in configuration order alongside a comparison summary. A
// configuration without scenarios runs the base lease alone.
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ScenarioComparison, error) {
	type job struct {
		lease    domain.LeaseTerms
		settings domain.CashFlowSettings
	}
	var jobs []job
	if len(config.Scenarios) == 0 {
		base := config.Lease
		if base.Name == "" {
			base.Name = BaseCaseName
		}
		jobs = append(jobs, job{lease: base, settings: config.Settings})
	}
	for _, s := range config.Scenarios {
		jobs = append(jobs, job{lease: s.Apply(config.Lease), settings: s.Settings(config.Settings)})
	}

	runID := runIDFunc()
	ce.Logger.Infof("run %s: %d scenario(s)", runID, len(jobs))

	results := make([]domain.ScenarioResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	if ce.MaxParallel > 0 {
		g.SetLimit(ce.MaxParallel)
	}
	for i := range jobs {
		i := i
		g.Go(func() error {
			res, err := ce.RunScenario(gctx, &jobs[i].lease, jobs[i].settings)
			if err != nil {
				return err
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		ce.Logger.Errorf("run %s failed: %v", runID, err)
		return nil, fmt.Errorf("RunScenario failed: %w", err)
	}

	comparison := &domain.ScenarioComparison{
		RunID:       runID,
		GeneratedAt: nowFunc(),
		Scenarios:   results,
		Assumptions: config.GenerateAssumptions(),
	}
	ce.analyze(comparison)
	return comparison, nil
}
