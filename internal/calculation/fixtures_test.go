package calculation

import (
	"time"

	"github.com/leasecalc/lease-economics/internal/domain"
	"github.com/shopspring/decimal"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func dp(v float64) *decimal.Decimal {
	x := decimal.NewFromFloat(v)
	return &x
}

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// threeYearLease is 10,000 RSF at $30/SF/yr, NNN, no escalation or concessions
func threeYearLease() *domain.LeaseTerms {
	return &domain.LeaseTerms{
		Name:         "Case A",
		Commencement: date(2025, time.January, 1),
		Term:         &domain.LeaseTerm{Years: 3},
		RSF:          d(10000),
		LeaseType:    domain.LeaseTypeNNN,
		RentSchedule: []domain.RentScheduleRow{
			{StartMonth: 0, EndMonth: 35, RatePSFAnnual: d(30)},
		},
		Escalation: domain.EscalationSchedule{Mode: domain.EscalationFixed},
		Abatement:  domain.AbatementSchedule{Mode: domain.AbatementAtCommencement, AppliesTo: domain.AppliesToBaseOnly},
	}
}

func mustTimeline(lease *domain.LeaseTerms) domain.LeaseTimeline {
	tl, err := NormalizeTimeline(lease, DefaultMetricsConfig())
	if err != nil {
		panic(err)
	}
	return tl
}

func mustSchedule(lease *domain.LeaseTerms) []domain.MonthlyRecord {
	return BuildRentSchedule(mustTimeline(lease), lease)
}
