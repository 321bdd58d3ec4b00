/*
calendar.go - Holiday calendar for working-day computation

PURPOSE:
  The leave summary needs to know which weekdays are company holidays.
  The calendar is injected configuration, not a hard-coded constant, so
  deployments can swap in their own date set.
*/
package derive

import (
	"strings"
	"time"

	"github.com/warp/hr-engine/employee"
)

// HolidayCalendar answers whether a date is a non-working holiday.
type HolidayCalendar interface {
	IsHoliday(date time.Time) bool
}

// FixedCalendar is a holiday calendar backed by an explicit date set.
type FixedCalendar struct {
	dates map[string]struct{}
}

// NewFixedCalendar builds a calendar from YYYY-MM-DD date strings.
// Malformed entries fail with InvalidDateError.
func NewFixedCalendar(dates ...string) (*FixedCalendar, error) {
	c := &FixedCalendar{dates: make(map[string]struct{}, len(dates))}
	for _, d := range dates {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return nil, &employee.InvalidDateError{Field: "holiday", Value: d}
		}
		c.dates[d] = struct{}{}
	}
	return c, nil
}

// MustFixedCalendar is NewFixedCalendar for known-good literals.
func MustFixedCalendar(dates ...string) *FixedCalendar {
	c, err := NewFixedCalendar(dates...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *FixedCalendar) IsHoliday(date time.Time) bool {
	_, ok := c.dates[date.Format(dateLayout)]
	return ok
}

// DefaultCalendar returns the stock public-holiday set.
func DefaultCalendar() *FixedCalendar {
	return MustFixedCalendar("2025-01-26", "2025-08-15", "2025-10-02")
}
