package output

import (
	"bytes"
	"fmt"

	"github.com/leasecalc/lease-economics/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "LEASE SCENARIO SUMMARY")
	fmt.Fprintln(&buf, "================================")
	if results.RunID != "" {
		fmt.Fprintf(&buf, "Run: %s\n", results.RunID)
	}
	fmt.Fprintln(&buf)
	for _, sc := range results.Scenarios {
		m := sc.Metrics
		fmt.Fprintf(&buf, "%s: NPV=%s IRR=%s EffectiveRent=%s/SF Payback=%s\n",
			sc.Name,
			FormatFloatCurrency(m.NPV),
			irrString(m),
			FormatFloatCurrency(m.EffectiveRentPSF),
			FormatPayback(m.PaybackYears),
		)
		fmt.Fprintf(&buf, "  TermMonths=%d LandlordCost=%s TotalNet=%s\n",
			sc.Timeline.TermMonths, FormatCurrency(sc.Costs.TotalLandlordCost), FormatFloatCurrency(m.TotalNetCashFlow))
	}
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (NPV Δ %s / %s)\n", rec.ScenarioName, FormatCurrency(rec.NPVChange), FormatPercentage(rec.PercentageChange))
	}
	return buf.Bytes(), nil
}

func irrString(m domain.Metrics) string {
	if !m.IRRFound {
		return "n/a"
	}
	return FormatRate(m.IRR)
}
