package calculation

import (
	"fmt"
	"time"

	"github.com/leasecalc/lease-economics/internal/domain"
	"github.com/leasecalc/lease-economics/pkg/dateutil"
)

// NormalizeTimeline resolves commencement, term and abatement into a
// month-indexed timeline. A supplied term is authoritative; an explicit
// expiration is only used when no term is given. Rent start is derived from
// the free rent months unless the lease states it.
func NormalizeTimeline(lease *domain.LeaseTerms, cfg MetricsConfig) (domain.LeaseTimeline, error) {
	if lease.Commencement.IsZero() {
		return domain.LeaseTimeline{}, &InvalidTermError{Reason: "commencement date is required"}
	}
	commencement := dateutil.Truncate(lease.Commencement)

	abatementMonths, err := validateAbatement(lease.Abatement)
	if err != nil {
		return domain.LeaseTimeline{}, err
	}

	var termMonths int
	expiration := commencement
	switch {
	case lease.Term != nil:
		if lease.Term.Years < 0 || lease.Term.Months < 0 {
			return domain.LeaseTimeline{}, &InvalidTermError{Months: lease.Term.TotalMonths(), Reason: "years and months must not be negative"}
		}
		termMonths = lease.Term.TotalMonths()
		if termMonths <= 0 {
			return domain.LeaseTimeline{}, &InvalidTermError{Months: termMonths, Reason: "term must be at least one month"}
		}
		expiration = expirationFromTerm(commencement, *lease.Term, abatementMonths)
		if lease.Term.IncludeAbatementInTerm {
			termMonths += abatementMonths
		}
	case lease.Expiration != nil:
		stored := dateutil.Truncate(*lease.Expiration)
		if stored.Before(commencement) {
			return domain.LeaseTimeline{}, &InvalidTermError{Reason: fmt.Sprintf("expiration %s is before commencement %s",
				stored.Format(dateutil.DateLayout), commencement.Format(dateutil.DateLayout))}
		}
		termMonths = dateutil.MonthsBetween(commencement, dateutil.AddDays(stored, 1))
		if termMonths <= 0 {
			return domain.LeaseTimeline{}, &InvalidTermError{Months: termMonths, Reason: "expiration is less than one month after commencement"}
		}
		expiration = stored
	default:
		return domain.LeaseTimeline{}, &InvalidTermError{Reason: "either a term or an expiration date is required"}
	}

	if abatementMonths > termMonths {
		return domain.LeaseTimeline{}, &InvalidAbatementError{Months: abatementMonths,
			Reason: fmt.Sprintf("free rent exceeds the %d month term", termMonths)}
	}
	if lease.Abatement.Mode == domain.AbatementCustom {
		for _, p := range lease.Abatement.Periods {
			if p.StartMonth+p.FreeRentMonths > termMonths {
				return domain.LeaseTimeline{}, &InvalidAbatementError{Months: p.FreeRentMonths,
					Reason: fmt.Sprintf("period starting at month %d runs past the %d month term", p.StartMonth, termMonths)}
			}
		}
	}

	rentStart := commencement
	switch {
	case lease.RentStart != nil:
		rentStart = dateutil.Truncate(*lease.RentStart)
		if rentStart.Before(commencement) || rentStart.After(expiration) {
			return domain.LeaseTimeline{}, &InvalidTermError{Months: termMonths, Reason: fmt.Sprintf("rent start %s is outside %s to %s",
				rentStart.Format(dateutil.DateLayout), commencement.Format(dateutil.DateLayout), expiration.Format(dateutil.DateLayout))}
		}
	case lease.Abatement.Mode != domain.AbatementCustom:
		rentStart = dateutil.AddMonths(commencement, abatementMonths)
	}

	return domain.LeaseTimeline{
		Commencement:    commencement,
		Expiration:      expiration,
		RentStart:       rentStart,
		TermMonths:      termMonths,
		AbatementMonths: abatementMonths,
		TermYears:       dateutil.YearsBetween(commencement, dateutil.AddDays(expiration, 1), cfg.DaysPerYear),
	}, nil
}

// expirationFromTerm is commencement + years + months (+ abatement) - 1 day
func expirationFromTerm(commencement time.Time, term domain.LeaseTerm, abatementMonths int) time.Time {
	months := term.Months
	if term.IncludeAbatementInTerm {
		months += abatementMonths
	}
	return dateutil.AddDays(dateutil.AddYearsMonths(commencement, term.Years, months), -1)
}

// validateAbatement checks the schedule shape and returns the total free months
func validateAbatement(ab domain.AbatementSchedule) (int, error) {
	switch ab.Mode {
	case domain.AbatementCustom:
		total := 0
		for i, p := range ab.Periods {
			if p.FreeRentMonths < 0 {
				return 0, &InvalidAbatementError{Months: p.FreeRentMonths, Reason: fmt.Sprintf("period %d has negative free rent", i)}
			}
			if p.StartMonth < 0 || p.EndMonth < p.StartMonth {
				return 0, &InvalidAbatementError{Months: p.FreeRentMonths, Reason: fmt.Sprintf("period %d has an invalid month range", i)}
			}
			if span := p.EndMonth - p.StartMonth + 1; p.FreeRentMonths > span {
				return 0, &InvalidAbatementError{Months: p.FreeRentMonths,
					Reason: fmt.Sprintf("period %d grants more free months than its %d month window", i, span)}
			}
			total += p.FreeRentMonths
		}
		return total, nil
	default:
		if ab.Months < 0 {
			return 0, &InvalidAbatementError{Months: ab.Months, Reason: "free rent months must not be negative"}
		}
		return ab.Months, nil
	}
}

// CheckTermConsistency compares a stored term against a stored expiration.
// A discrepancy of up to one day counts as consistent. The result is a
// warning for the caller to surface; the timeline is never adjusted.
func CheckTermConsistency(lease *domain.LeaseTerms) domain.TermConsistency {
	if lease.Term == nil || lease.Expiration == nil || lease.Commencement.IsZero() {
		return domain.TermConsistency{}
	}
	abatementMonths := lease.Abatement.TotalMonths()
	if abatementMonths < 0 {
		abatementMonths = 0
	}
	derived := expirationFromTerm(dateutil.Truncate(lease.Commencement), *lease.Term, abatementMonths)
	stored := dateutil.Truncate(*lease.Expiration)
	diff := dateutil.DaysBetween(derived, stored)

	result := domain.TermConsistency{
		Checked:           true,
		DerivedExpiration: derived,
		StoredExpiration:  stored,
		DiscrepancyDays:   diff,
		Consistent:        diff >= -1 && diff <= 1,
	}
	if !result.Consistent {
		result.Message = fmt.Sprintf("lease term implies expiration %s but stored expiration is %s (%+d days)",
			derived.Format(dateutil.DateLayout), stored.Format(dateutil.DateLayout), diff)
	}
	return result
}
