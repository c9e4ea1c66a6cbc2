package calculation

import "github.com/shopspring/decimal"

// MetricsConfig carries the numeric conventions used by the metrics library.
// It is passed into every call so tests can override values without globals.
type MetricsConfig struct {
	DiscountRate float64
	DaysPerYear  float64
	DaysPerMonth float64

	// Termination and amortization default when the lease sets no rate
	DefaultFinancingRate decimal.Decimal

	IRRMaxIterations int
	IRRTolerance     float64
	IRRLowerBound    float64
	IRRUpperBound    float64
	IRRInitialGuess  float64
}

// DefaultMetricsConfig returns the standard conventions
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		DiscountRate:         0.08,
		DaysPerYear:          365.25,
		DaysPerMonth:         30.44,
		DefaultFinancingRate: decimal.NewFromFloat(0.08),
		IRRMaxIterations:     100,
		IRRTolerance:         1e-6,
		IRRLowerBound:        -0.99,
		IRRUpperBound:        0.99,
		IRRInitialGuess:      0.1,
	}
}

// WithDiscountRate returns a copy of the config using rate
func (c MetricsConfig) WithDiscountRate(rate float64) MetricsConfig {
	c.DiscountRate = rate
	return c
}
