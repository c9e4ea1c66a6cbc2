package dateutil

import (
	"time"
)

// DateLayout is the date format used in lease input files and reports
const DateLayout = "2006-01-02"

// Date builds a UTC midnight date
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate strips the time-of-day component and normalizes to UTC
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the month containing date
func DaysInMonth(date time.Time) int {
	return time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsEndOfMonth reports whether date falls on the last day of its month
func IsEndOfMonth(date time.Time) bool {
	return date.Day() == DaysInMonth(date)
}

// AddMonths adds months to a date, clamping to the end of the target month
// (Jan 31 + 1 month = Feb 28/29) instead of rolling into the next month the
// way time.AddDate does.
func AddMonths(date time.Time, months int) time.Time {
	firstOfTarget := time.Date(date.Year(), date.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	day := date.Day()
	if last := DaysInMonth(firstOfTarget); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}

// AddYearsMonths adds whole years and months as a single calendar offset
func AddYearsMonths(date time.Time, years, months int) time.Time {
	return AddMonths(date, years*12+months)
}

// AddDays adds a number of days to a date
func AddDays(date time.Time, days int) time.Time {
	return Truncate(date).AddDate(0, 0, days)
}

// MonthsBetween counts whole calendar months from one date to another. A
// partial trailing month is not counted unless the end date is the last day
// of its month and the start day does not fit in it.
func MonthsBetween(from, to time.Time) int {
	from, to = Truncate(from), Truncate(to)
	if to.Before(from) {
		return -MonthsBetween(to, from)
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() && !IsEndOfMonth(to) {
		months--
	}
	return months
}

// DaysBetween returns the signed number of calendar days from one date to another
func DaysBetween(from, to time.Time) int {
	d := Truncate(to).Sub(Truncate(from))
	return int(d.Hours() / 24)
}

// YearsBetween returns a fractional year count using an average-year length.
// Intended for display only; month counts come from MonthsBetween.
func YearsBetween(from, to time.Time, daysPerYear float64) float64 {
	if daysPerYear <= 0 {
		return 0
	}
	return float64(DaysBetween(from, to)) / daysPerYear
}
