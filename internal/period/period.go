// Package period implements the calendar-month window used by both the
// ledger totals and the budget utilization figures. All windows are in UTC.
package period

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Month is a calendar month token such as 2024-03.
type Month struct {
	Year  int
	Month time.Month
}

// Parse reads a YYYY-MM token. The month number must be within 01-12.
func Parse(s string) (Month, error) {
	if !monthPattern.MatchString(s) {
		return Month{}, fmt.Errorf("month %q must be in YYYY-MM format", s)
	}

	year, _ := strconv.Atoi(s[:4])
	month, _ := strconv.Atoi(s[5:])

	if month < 1 || month > 12 {
		return Month{}, fmt.Errorf("month %q is out of range", s)
	}

	return Month{Year: year, Month: time.Month(month)}, nil
}

// Of returns the month containing t, evaluated in UTC.
func Of(t time.Time) Month {
	t = t.UTC()
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Start is the first instant of the month.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the first instant of the following month. December rolls over to
// January of the next year.
func (m Month) End() time.Time {
	if m.Month == time.December {
		return time.Date(m.Year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	return time.Date(m.Year, m.Month+1, 1, 0, 0, 0, 0, time.UTC)
}

// Window returns the half-open interval [Start, End).
func (m Month) Window() (time.Time, time.Time) {
	return m.Start(), m.End()
}

// Prev returns the preceding month.
func (m Month) Prev() Month {
	return Of(m.Start().AddDate(0, 0, -1))
}
