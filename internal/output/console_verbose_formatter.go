package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/leasecalc/lease-economics/internal/domain"
	"github.com/leasecalc/lease-economics/pkg/money"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "LEASE ECONOMICS ANALYSIS")
	fmt.Fprintln(&buf, "=================================================================================")
	if results.RunID != "" {
		fmt.Fprintf(&buf, "Run ID: %s\n", results.RunID)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	assumptions := results.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	if len(results.Scenarios) > 1 {
		writeScenarioComparison(&buf, results)
	}

	for i, scenario := range results.Scenarios {
		title := fmt.Sprintf("SCENARIO %d: %s", i+1, scenario.Name)
		fmt.Fprintln(&buf, title)
		fmt.Fprintln(&buf, strings.Repeat("=", len(title)))

		tl := scenario.Timeline
		fmt.Fprintln(&buf, "TIMELINE:")
		fmt.Fprintf(&buf, "  Commencement:           %s\n", tl.Commencement.Format("2006-01-02"))
		fmt.Fprintf(&buf, "  Expiration:             %s\n", tl.Expiration.Format("2006-01-02"))
		fmt.Fprintf(&buf, "  Rent Start:             %s\n", tl.RentStart.Format("2006-01-02"))
		fmt.Fprintf(&buf, "  Term:                   %d months (%.2f years)\n", tl.TermMonths, tl.TermYears)
		fmt.Fprintf(&buf, "  Abatement Months:       %d\n", tl.AbatementMonths)
		if scenario.Consistency.Checked && !scenario.Consistency.Consistent {
			fmt.Fprintf(&buf, "  WARNING: %s\n", scenario.Consistency.Message)
		}
		fmt.Fprintln(&buf)

		costs := scenario.Costs
		fmt.Fprintln(&buf, "LANDLORD COSTS:")
		fmt.Fprintf(&buf, "  TI Allowance:           %s\n", FormatCurrency(costs.TIAllowance))
		fmt.Fprintf(&buf, "  TI Shortfall:           %s\n", FormatCurrency(costs.TIShortfall))
		fmt.Fprintf(&buf, "  Free Rent Value:        %s\n", FormatCurrency(costs.FreeRentValue))
		fmt.Fprintf(&buf, "  Leasing Commission:     %s\n", FormatCurrency(costs.LeasingCommission))
		fmt.Fprintf(&buf, "  Transaction Costs:      %s\n", FormatCurrency(costs.TransactionCosts))
		fmt.Fprintf(&buf, "  Financed Principal:     %s\n", FormatCurrency(costs.FinancedPrincipal))
		fmt.Fprintf(&buf, "  TOTAL LANDLORD COST:    %s\n", FormatCurrency(costs.TotalLandlordCost))
		fmt.Fprintln(&buf)

		m := scenario.Metrics
		fmt.Fprintln(&buf, "INVESTMENT METRICS:")
		fmt.Fprintf(&buf, "  NPV:                    %s\n", FormatFloatCurrency(m.NPV))
		fmt.Fprintf(&buf, "  IRR:                    %s\n", irrString(m))
		fmt.Fprintf(&buf, "  Effective Rent:         %s/SF/yr\n", FormatFloatCurrency(m.EffectiveRentPSF))
		fmt.Fprintf(&buf, "  Payback:                %s\n", FormatPayback(m.PaybackYears))
		fmt.Fprintf(&buf, "  Cash-on-Cash:           %s\n", FormatRate(m.CashOnCash))
		fmt.Fprintf(&buf, "  Yield on Cost:          %s\n", FormatRate(m.YieldOnCost))
		fmt.Fprintf(&buf, "  Equity Multiple:        %.2fx\n", m.EquityMultiple)
		fmt.Fprintf(&buf, "  Total Net Cash Flow:    %s\n", FormatFloatCurrency(m.TotalNetCashFlow))
		fmt.Fprintln(&buf)

		writeAnnualTable(&buf, scenario.Annual)
		writeTerminationSummary(&buf, scenario.Termination)
		fmt.Fprintln(&buf)
	}

	if be := results.BreakEven; be != nil && len(results.Scenarios) >= 2 {
		fmt.Fprintln(&buf, "CUMULATIVE BREAK-EVEN")
		fmt.Fprintln(&buf, "=====================")
		fmt.Fprintf(&buf, "%s vs %s: year index %d, month %d of %d (cumulative %s)\n",
			results.Scenarios[0].Name, results.Scenarios[1].Name,
			be.YearIndex, be.BreakEvenMonth, be.BreakEvenYear, FormatCurrency(be.CumulativeAmount))
		fmt.Fprintln(&buf)
	}

	if len(results.ConsistencyWarnings) > 0 {
		fmt.Fprintln(&buf, "WARNINGS:")
		for _, w := range results.ConsistencyWarnings {
			fmt.Fprintf(&buf, "• %s\n", w)
		}
		fmt.Fprintln(&buf)
	}

	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf, "SUMMARY & RECOMMENDATIONS")
		fmt.Fprintln(&buf, "=========================")
		fmt.Fprintf(&buf, "Best NPV: %s\n", nonEmpty(results.BestNPVScenario, rec.ScenarioName))
		if results.BestEffectiveRent != "" {
			fmt.Fprintf(&buf, "Best Effective Rent: %s\n", results.BestEffectiveRent)
		}
		fmt.Fprintf(&buf, "NPV Change vs %s: %s (%s)\n", results.Scenarios[0].Name, FormatCurrency(rec.NPVChange), FormatPercentage(rec.PercentageChange))
	}

	return buf.Bytes(), nil
}

// writeScenarioComparison lines every scenario up against the first one
func writeScenarioComparison(buf *bytes.Buffer, results *domain.ScenarioComparison) {
	base := results.Scenarios[0]
	for _, sc := range results.Scenarios[1:] {
		title := fmt.Sprintf("%s vs %s", sc.Name, base.Name)
		fmt.Fprintln(buf, title)
		fmt.Fprintln(buf, strings.Repeat("=", len(title)))
		fmt.Fprintf(buf, "%-30s %15s %15s %15s\n", "METRIC", "BASE", "SCENARIO", "DIFFERENCE")
		fmt.Fprintln(buf, strings.Repeat("-", 78))
		cmpLine(buf, "NPV", money.FromFloat(base.Metrics.NPV), money.FromFloat(sc.Metrics.NPV))
		cmpLine(buf, "Effective Rent / SF", money.FromFloat(base.Metrics.EffectiveRentPSF), money.FromFloat(sc.Metrics.EffectiveRentPSF))
		cmpLine(buf, "Total Net Cash Flow", money.FromFloat(base.Metrics.TotalNetCashFlow), money.FromFloat(sc.Metrics.TotalNetCashFlow))
		cmpLine(buf, "Total Landlord Cost", base.Costs.TotalLandlordCost, sc.Costs.TotalLandlordCost)
		cmpLine(buf, "Free Rent Value", base.Costs.FreeRentValue, sc.Costs.FreeRentValue)
		fmt.Fprintln(buf)
	}
}

func writeAnnualTable(buf *bytes.Buffer, lines []domain.AnnualLine) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(buf, "ANNUAL CASH FLOW:")
	fmt.Fprintf(buf, "  %-6s %6s %16s %16s %16s %16s %16s\n", "YEAR", "MONTHS", "BASE RENT", "ABATEMENT", "OPEX+PARKING", "COSTS", "NET")
	fmt.Fprintln(buf, "  "+strings.Repeat("-", 98))
	for _, l := range lines {
		costs := l.TIShortfall.Add(l.TransactionCosts).Add(l.AmortizedCost)
		fmt.Fprintf(buf, "  %-6d %6d %16s %16s %16s %16s %16s\n",
			l.Year, l.Months,
			FormatCurrency(l.BaseRent),
			FormatCurrency(l.Abatement),
			FormatCurrency(l.Operating.Add(l.Parking)),
			FormatCurrency(costs.Neg()),
			FormatCurrency(l.NetCashFlow),
		)
	}
	fmt.Fprintln(buf)
}

func writeTerminationSummary(buf *bytes.Buffer, schedules []domain.TerminationSchedule) {
	for _, ts := range schedules {
		opt := ts.Option
		fmt.Fprintf(buf, "TERMINATION OPTION: %s\n", opt.Label)
		fmt.Fprintf(buf, "  Window:                 months %d to %d (notice %d months, last notice month %d)\n",
			opt.WindowOpenMonth, opt.WindowCloseMonth, opt.NoticeMonths, opt.LastNoticeMonth())
		if fee, ok := feeAt(ts, opt.WindowOpenMonth); ok {
			fmt.Fprintf(buf, "  Fee at Window Open:     %s (%s months of rent)\n", FormatCurrency(fee.TotalFee), fee.EquivalentMonths.StringFixed(2))
			fmt.Fprintf(buf, "    Penalty Rent:         %s\n", FormatCurrency(fee.PenaltyRent))
			fmt.Fprintf(buf, "    RSF Penalty:          %s\n", FormatCurrency(fee.RSFPenalty))
			fmt.Fprintf(buf, "    Unamortized Costs:    %s\n", FormatCurrency(fee.UnamortizedBalance))
		}
	}
}

func feeAt(ts domain.TerminationSchedule, month int) (domain.TerminationComponents, bool) {
	for _, f := range ts.Fees {
		if f.Month == month {
			return f, true
		}
	}
	return domain.TerminationComponents{}, false
}

func cmpLine(buf *bytes.Buffer, label string, base, scenario decimal.Decimal) {
	diff := scenario.Sub(base)
	fmt.Fprintf(buf, "%-30s %15s %15s %15s\n", label, FormatCurrency(base), FormatCurrency(scenario), FormatCurrency(diff))
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
