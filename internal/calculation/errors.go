package calculation

import "fmt"

// InvalidTermError reports a lease term that cannot be computed: non-positive,
// out of range, or an expiration before commencement.
type InvalidTermError struct {
	Months int
	Reason string
}

func (e *InvalidTermError) Error() string {
	return fmt.Sprintf("invalid term (%d months): %s", e.Months, e.Reason)
}

// InvalidAbatementError reports negative free-rent months or free rent that
// does not fit inside its schedule.
type InvalidAbatementError struct {
	Months int
	Reason string
}

func (e *InvalidAbatementError) Error() string {
	return fmt.Sprintf("invalid abatement (%d months): %s", e.Months, e.Reason)
}

// InvalidPrincipalError reports a negative amortization principal
type InvalidPrincipalError struct {
	Principal string
}

func (e *InvalidPrincipalError) Error() string {
	return fmt.Sprintf("invalid principal %s: must not be negative", e.Principal)
}

// IRRNotFoundError is returned when neither Newton-Raphson nor bisection
// locates a root inside the search bounds.
type IRRNotFoundError struct {
	Lower, Upper float64
	Reason       string
}

func (e *IRRNotFoundError) Error() string {
	return fmt.Sprintf("irr not found in [%g, %g]: %s", e.Lower, e.Upper, e.Reason)
}
