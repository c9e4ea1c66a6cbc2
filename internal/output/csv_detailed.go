package output

import (
	"bytes"
	"encoding/csv"

	"github.com/leasecalc/lease-economics/internal/domain"
)

// CSVDetailedExporter writes the annual cash flow lines of every scenario.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "YearIndex", "Year", "Months", "BaseRent", "Abatement", "Operating", "Parking", "Subtotal", "TIShortfall", "TransactionCosts", "AmortizedCost", "NetCashFlow"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range results.Scenarios {
		for _, yr := range sc.Annual {
			row := []string{
				sc.Name,
				intToString(yr.YearIndex),
				intToString(yr.Year),
				intToString(yr.Months),
				yr.BaseRent.StringFixed(2),
				yr.Abatement.StringFixed(2),
				yr.Operating.StringFixed(2),
				yr.Parking.StringFixed(2),
				yr.Subtotal.StringFixed(2),
				yr.TIShortfall.StringFixed(2),
				yr.TransactionCosts.StringFixed(2),
				yr.AmortizedCost.StringFixed(2),
				yr.NetCashFlow.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVMonthlyExporter writes the month-by-month rent schedule of every scenario.
type CSVMonthlyExporter struct{}

func (c CSVMonthlyExporter) Name() string { return "monthly-csv" }

func (c CSVMonthlyExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Month", "LeaseYear", "Date", "RatePSFAnnual", "BaseRent", "FreeRent", "NetRent", "Operating", "Parking", "TotalDue"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range results.Scenarios {
		for _, m := range sc.Monthly {
			row := []string{
				sc.Name,
				intToString(m.Month),
				intToString(m.LeaseYear),
				m.StartDate.Format("2006-01-02"),
				m.RatePSFAnnual.StringFixed(4),
				m.BaseRent.StringFixed(2),
				m.FreeRent.StringFixed(2),
				m.NetRent.StringFixed(2),
				m.Operating.StringFixed(2),
				m.Parking.StringFixed(2),
				m.TotalDue().StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVTerminationExporter writes the termination fee series of every option.
type CSVTerminationExporter struct{}

func (c CSVTerminationExporter) Name() string { return "termination-csv" }

func (c CSVTerminationExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Option", "Month", "InWindow", "NoticeServable", "CurrentMonthlyRent", "PenaltyRent", "RSFPenalty", "UnamortizedBalance", "TotalFee", "EquivalentMonths"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range results.Scenarios {
		for _, ts := range sc.Termination {
			for _, f := range ts.Fees {
				row := []string{
					sc.Name,
					ts.Option.Label,
					intToString(f.Month),
					boolToString(f.InWindow),
					boolToString(f.NoticeServable),
					f.CurrentMonthlyRent.StringFixed(2),
					f.PenaltyRent.StringFixed(2),
					f.RSFPenalty.StringFixed(2),
					f.UnamortizedBalance.StringFixed(2),
					f.TotalFee.StringFixed(2),
					f.EquivalentMonths.StringFixed(2),
				}
				if err := w.Write(row); err != nil {
					return nil, err
				}
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
