package schedule

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date at UTC
// midnight. All date math in this package happens on such values, so day
// differences are exact whole days with no DST drift.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return t, nil
}

// Date builds a calendar date at UTC midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole-day difference a − b.
func DaysBetween(a, b time.Time) int {
	ua := Date(a.Year(), a.Month(), a.Day())
	ub := Date(b.Year(), b.Month(), b.Day())
	return int(ua.Sub(ub).Hours() / 24)
}

// MonthsBetween returns the whole-calendar-month difference a − b,
// ignoring the day of month.
func MonthsBetween(a, b time.Time) int {
	return (a.Year()-b.Year())*12 + int(a.Month()) - int(b.Month())
}

// MonthRange returns the first and last day of the given month.
func MonthRange(year, month int) (time.Time, time.Time) {
	first := Date(year, time.Month(month), 1)
	last := first.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return first, last
}
