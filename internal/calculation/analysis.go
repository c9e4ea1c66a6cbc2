package calculation

import (
	"github.com/leasecalc/lease-economics/internal/domain"
)

// analyze fills in the cross-scenario summary. Best NPV is the highest NPV
// and best effective rent the highest effective rent; ties keep the earlier
// scenario. The break-even compares the first two scenarios.
func (ce *CalculationEngine) analyze(c *domain.ScenarioComparison) {
	bestNPV, bestRent := -1, -1
	for i, s := range c.Scenarios {
		if bestNPV < 0 || s.Metrics.NPV > c.Scenarios[bestNPV].Metrics.NPV {
			bestNPV = i
		}
		if bestRent < 0 || s.Metrics.EffectiveRentPSF > c.Scenarios[bestRent].Metrics.EffectiveRentPSF {
			bestRent = i
		}
		if s.Consistency.Checked && !s.Consistency.Consistent {
			c.ConsistencyWarnings = append(c.ConsistencyWarnings, s.Name+": "+s.Consistency.Message)
		}
	}
	if bestNPV >= 0 {
		c.BestNPVScenario = c.Scenarios[bestNPV].Name
		c.BestEffectiveRent = c.Scenarios[bestRent].Name
	}

	if len(c.Scenarios) < 2 {
		return
	}
	be, err := CalculateCumulativeBreakEven(c.Scenarios[0].Annual, c.Scenarios[1].Annual)
	if err != nil {
		ce.Logger.Warnf("break-even between %q and %q: %v", c.Scenarios[0].Name, c.Scenarios[1].Name, err)
		return
	}
	c.BreakEven = be
}
