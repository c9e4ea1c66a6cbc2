// debug_break_even prints the cumulative net cash flow of every scenario in a
// lease file by calendar year, then the break-even between the first two.
package main

import (
	"context"
	"fmt"
	"os"

	calc "github.com/leasecalc/lease-economics/internal/calculation"
	"github.com/leasecalc/lease-economics/internal/config"
	"github.com/shopspring/decimal"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <lease-file>")
		return
	}
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	engine := calc.NewCalculationEngine()
	res, err := engine.RunScenarios(context.Background(), cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Find the minimum annual length across scenarios
	minLen := -1
	for _, s := range res.Scenarios {
		if minLen == -1 || len(s.Annual) < minLen {
			minLen = len(s.Annual)
		}
	}
	if minLen <= 0 {
		fmt.Println("no annual data")
		return
	}

	header := "Index,Year,Months"
	for i := range res.Scenarios {
		header += fmt.Sprintf(",S%d_Net,S%d_Cumulative", i+1, i+1)
	}
	fmt.Println(header)

	cum := make([]decimal.Decimal, len(res.Scenarios))
	for idx := 0; idx < minLen; idx++ {
		first := res.Scenarios[0].Annual[idx]
		row := fmt.Sprintf("%d,%d,%d", first.YearIndex, first.Year, first.Months)
		for sidx, s := range res.Scenarios {
			net := s.Annual[idx].NetCashFlow
			cum[sidx] = cum[sidx].Add(net)
			row += fmt.Sprintf(",%s,%s", net.StringFixed(0), cum[sidx].StringFixed(0))
		}
		fmt.Println(row)
	}

	if len(res.Scenarios) >= 2 {
		be, err := calc.CalculateCumulativeBreakEven(res.Scenarios[0].Annual, res.Scenarios[1].Annual)
		switch {
		case err != nil:
			fmt.Printf("\nBreakEven: error: %v\n", err)
		case be == nil:
			fmt.Printf("\nBreakEven: %s and %s never cross\n", res.Scenarios[0].Name, res.Scenarios[1].Name)
		default:
			fmt.Printf("\nBreakEven: %+v\n", *be)
		}
	}
}
