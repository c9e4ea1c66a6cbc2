package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/leasecalc/lease-economics/internal/domain"
)

// HTMLFormatter produces a self-contained HTML report with a cumulative cash flow chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"fcurr":   FormatFloatCurrency,
	"pct":     FormatPercentage,
	"rate":    FormatRate,
	"payback": FormatPayback,
	"irr":     irrString,
	"date":    func(t interface{ Format(string) string }) string { return t.Format("2006-01-02") },
	"add":     func(i, j int) int { return i + j },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

// chartSeries is the cumulative net cash flow of one scenario by calendar year
type chartSeries struct {
	Label  string    `json:"label"`
	Years  []int     `json:"years"`
	Values []float64 `json:"values"`
}

func cumulativeSeries(results *domain.ScenarioComparison) []chartSeries {
	out := make([]chartSeries, 0, len(results.Scenarios))
	for _, sc := range results.Scenarios {
		s := chartSeries{Label: sc.Name}
		var running float64
		for _, l := range sc.Annual {
			running += l.NetCashFlow.InexactFloat64()
			s.Years = append(s.Years, l.Year)
			s.Values = append(s.Values, running)
		}
		out = append(out, s)
	}
	return out
}

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	rec := AnalyzeScenarios(results)

	assumptions := results.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}

	data := struct {
		*domain.ScenarioComparison
		Recommendation Recommendation
		Assumptions    []string
		Chart          []chartSeries
	}{results, rec, assumptions, cumulativeSeries(results)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
