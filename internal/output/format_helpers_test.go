package output

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromFloat(1234.567), "$1,234.57"},
		{decimal.NewFromInt(0), "$0.00"},
		{decimal.NewFromInt(-25000), "-$25,000.00"},
		{decimal.NewFromFloat(12.5), "$12.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(tt.in))
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "12.35%", FormatPercentage(decimal.NewFromFloat(12.3456)))
	assert.Equal(t, "7.71%", FormatRate(0.077138))
}

func TestFormatPayback(t *testing.T) {
	years := 2.75
	assert.Equal(t, "2.75 yrs", FormatPayback(&years))
	assert.Equal(t, "n/a", FormatPayback(nil))
	assert.Equal(t, "", paybackToString(nil))
	assert.Equal(t, "2.7500", paybackToString(&years))
}

func TestConversionHelpers(t *testing.T) {
	assert.Equal(t, "42", intToString(42))
	assert.Equal(t, "true", boolToString(true))
	assert.Equal(t, "false", boolToString(false))
	assert.Equal(t, "0.500000", floatToString(0.5))
}
