package output

import (
	"strconv"

	"github.com/leasecalc/lease-economics/pkg/money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency formats a decimal as USD with thousands separators and 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	v := amount.Round(2).InexactFloat64()
	if v < 0 {
		return printer.Sprintf("-$%.2f", -v)
	}
	return printer.Sprintf("$%.2f", v)
}

// FormatPercentage formats a decimal already in percentage points with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fraction (0.0771) as a percentage (7.71%)
func FormatRate(rate float64) string { return strconv.FormatFloat(rate*100, 'f', 2, 64) + "%" }

// FormatFloatCurrency formats a float amount the same way as FormatCurrency
func FormatFloatCurrency(amount float64) string {
	return FormatCurrency(money.FromFloat(amount))
}

// FormatPayback renders a payback period in years, or n/a when it never pays back
func FormatPayback(years *float64) string {
	if years == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*years, 'f', 2, 64) + " yrs"
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

func floatToString(f float64) string { return strconv.FormatFloat(f, 'f', 6, 64) }

func paybackToString(years *float64) string {
	if years == nil {
		return ""
	}
	return strconv.FormatFloat(*years, 'f', 4, 64)
}
