package output

import (
	"bytes"
	"encoding/csv"

	"github.com/leasecalc/lease-economics/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "TermMonths", "RSF", "NPV", "IRR", "IRRFound", "EffectiveRentPSF", "PaybackYears", "CashOnCash", "YieldOnCost", "EquityMultiple", "TotalNetCashFlow", "TotalLandlordCost"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range results.Scenarios {
		m := sc.Metrics
		row := []string{
			sc.Name,
			intToString(sc.Timeline.TermMonths),
			sc.RSF.String(),
			floatToString(m.NPV),
			floatToString(m.IRR),
			boolToString(m.IRRFound),
			floatToString(m.EffectiveRentPSF),
			paybackToString(m.PaybackYears),
			floatToString(m.CashOnCash),
			floatToString(m.YieldOnCost),
			floatToString(m.EquityMultiple),
			floatToString(m.TotalNetCashFlow),
			sc.Costs.TotalLandlordCost.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
