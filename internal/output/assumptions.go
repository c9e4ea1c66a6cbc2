package output

import "github.com/shopspring/decimal"

// DefaultAssumptions lists the modeling conventions rendered when a run
// carries no assumptions of its own.
var DefaultAssumptions = []string{
	"Months are numbered from 0 at commencement; schedule ranges are inclusive",
	"Base rent is annual rate per RSF divided by 12, times RSF",
	"Escalations step on lease anniversaries",
	"Free rent is a negative line against base rent",
	"NPV discounts each period from the end of the period",
	"One-time landlord costs not financed are charged in the first year",
}

var decimalHundred = decimal.NewFromInt(100)
