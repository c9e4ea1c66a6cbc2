package calculation

import (
	"math"

	"github.com/leasecalc/lease-economics/pkg/money"
)

// bisectionFloor stops bisection once the bracket is narrower than float
// resolution allows for rates in [-1, 1].
const bisectionFloor = 1e-15

// NPV discounts cash flows at rate with the first flow discounted by one full
// period: Σ cf[i] / (1+rate)^(i+1).
func NPV(cashFlows []float64, rate float64) float64 {
	total := 0.0
	for i, cf := range cashFlows {
		total += cf / math.Pow(1+rate, float64(i+1))
	}
	return money.Finite(total)
}

// npvDerivative is d NPV / d rate under the same period convention
func npvDerivative(cashFlows []float64, rate float64) float64 {
	total := 0.0
	for i, cf := range cashFlows {
		n := float64(i + 1)
		total -= n * cf / math.Pow(1+rate, n+1)
	}
	return total
}

// NewtonIRR runs Newton-Raphson from guess. It reports false when it does not
// converge within maxIter steps, hits a flat derivative, or leaves [lower, upper].
func NewtonIRR(cashFlows []float64, guess float64, maxIter int, tol, lower, upper float64) (float64, bool) {
	rate := guess
	for i := 0; i < maxIter; i++ {
		f := NPV(cashFlows, rate)
		d := npvDerivative(cashFlows, rate)
		if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return 0, false
		}
		next := rate - f/d
		if math.IsNaN(next) || next < lower || next > upper {
			return 0, false
		}
		if math.Abs(next-rate) < tol {
			return next, true
		}
		rate = next
	}
	return 0, false
}

// BisectionIRR halves [lower, upper] until NPV at the midpoint is within tol
// of zero. It reports false when the bounds do not bracket a sign change.
func BisectionIRR(cashFlows []float64, maxIter int, tol, lower, upper float64) (float64, bool) {
	fLo := NPV(cashFlows, lower)
	fHi := NPV(cashFlows, upper)
	if fLo == 0 {
		return lower, true
	}
	if fHi == 0 {
		return upper, true
	}
	if (fLo > 0) == (fHi > 0) {
		return 0, false
	}
	lo, hi := lower, upper
	mid := lo
	for i := 0; i < maxIter; i++ {
		mid = (lo + hi) / 2
		fMid := NPV(cashFlows, mid)
		if math.Abs(fMid) < tol || (hi-lo)/2 < bisectionFloor {
			return mid, true
		}
		if (fMid > 0) == (fLo > 0) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}
	return mid, true
}

// IRR tries Newton-Raphson first and falls back to bisection over the same
// bounds. The rate is per period of the series.
func IRR(cashFlows []float64, cfg MetricsConfig) (float64, error) {
	if len(cashFlows) == 0 {
		return 0, &IRRNotFoundError{Lower: cfg.IRRLowerBound, Upper: cfg.IRRUpperBound, Reason: "empty cash-flow series"}
	}
	if rate, ok := NewtonIRR(cashFlows, cfg.IRRInitialGuess, cfg.IRRMaxIterations, cfg.IRRTolerance,
		cfg.IRRLowerBound, cfg.IRRUpperBound); ok {
		return rate, nil
	}
	// bisection gains one bit per step, so it needs more steps than Newton
	if rate, ok := BisectionIRR(cashFlows, cfg.IRRMaxIterations*2, cfg.IRRTolerance,
		cfg.IRRLowerBound, cfg.IRRUpperBound); ok {
		return rate, nil
	}
	return 0, &IRRNotFoundError{Lower: cfg.IRRLowerBound, Upper: cfg.IRRUpperBound, Reason: "no sign change between bounds"}
}
