/*
Package derive computes the request-time derived view of an employee:
age, experience, work hours, computed salary, amenity eligibility and
the monthly leave summary.

PURPOSE:
  Every function here is pure: raw employee fields in, derived values
  out. Nothing is persisted and nothing touches the store.

DESIGN PRINCIPLES:
  1. Precision: hours and money go through decimal.Decimal and are
     rounded to 2 places, never accumulated as floats.
  2. Calendar-aware: age and experience use year/month/day borrowing,
     not naive day counts, so an unreached birthday does not count.
  3. Typed failures: malformed dates surface InvalidDateError. The one
     deliberate exception is work hours, which degrade to zero on
     missing or malformed clock times.

SEE ALSO:
  - calendar.go: Holiday calendar used by the leave summary
  - profile.go: Engine aggregating everything into a Profile
*/
package derive

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/hr-engine/employee"
)

// DefaultRatePerHour is the salary rate used when a record carries none.
var DefaultRatePerHour = decimal.NewFromInt(250)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// =============================================================================
// CALENDAR DIFF - Age and experience
// =============================================================================

// Experience is a normalized calendar distance: whole months are
// anchored on the start date (clamping to short months), days are
// whatever remains, so 0 <= Days < 31 and 0 <= Months < 12 always
// hold.
type Experience struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// ParseDate parses a YYYY-MM-DD field, wrapping failures as
// InvalidDateError so they reach the caller typed.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, &employee.InvalidDateError{Field: field, Value: value}
	}
	return t, nil
}

// Age returns whole years between dob and today, calendar-aware: the
// year only counts once the birthday has passed.
func Age(dob string, today time.Time) (int, error) {
	born, err := ParseDate("dob", dob)
	if err != nil {
		return 0, err
	}
	years, _, _ := calendarDiff(born, today)
	return years, nil
}

// ExperienceSince returns the normalized years/months/days elapsed
// from the joining date to today.
func ExperienceSince(dateOfJoining string, today time.Time) (Experience, error) {
	joined, err := ParseDate("date_of_joining", dateOfJoining)
	if err != nil {
		return Experience{}, err
	}
	y, m, d := calendarDiff(joined, today)
	return Experience{Years: y, Months: m, Days: d}, nil
}

// calendarDiff computes the year/month/day distance from `from` to
// `to`. Whole months are counted by advancing an anchor from `from`
// in month steps, clamping to the last day of short months (Jan 31
// plus one month anchors on Feb 28); the day count is the remainder
// past the anchor, so components are always non-negative with
// Days < 31 and Months < 12. A negative distance normalizes to zero
// components.
func calendarDiff(from, to time.Time) (years, months, days int) {
	target := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	if target.Before(time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)) {
		return 0, 0, 0
	}

	total := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	anchor := addMonthsClamped(from, total)
	if anchor.After(target) {
		total--
		anchor = addMonthsClamped(from, total)
	}

	days = int(target.Sub(anchor).Hours() / 24)
	return total / 12, total % 12, days
}

// addMonthsClamped advances t by a number of months, clamping the day
// to the target month's length. time.AddDate normalizes overflow into
// the next month instead, which is not the calendar arithmetic wanted
// here.
func addMonthsClamped(t time.Time, months int) time.Time {
	m := int(t.Month()) - 1 + months
	year := t.Year() + m/12
	m %= 12
	if m < 0 {
		m += 12
		year--
	}
	month := time.Month(m + 1)

	day := t.Day()
	// Day 0 of the following month is this month's last day.
	if last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day(); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// =============================================================================
// WORK HOURS AND SALARY
// =============================================================================

// WorkHours is the elapsed in/out delta and the portion beyond the
// standard 8-hour day, both rounded to 2 decimals.
type WorkHours struct {
	HoursWorked float64 `json:"hours_worked"`
	Overtime    float64 `json:"overtime"`
}

// Hours computes the wall-clock delta between "HH:MM" clock strings.
// An out time earlier than the in time wraps past midnight. Missing or
// malformed times degrade to {0, 0} rather than failing; clock times
// come straight off badge hardware and a bad read is an absent shift,
// not an error.
func Hours(inTime, outTime string) WorkHours {
	in, errIn := time.Parse(clockLayout, inTime)
	out, errOut := time.Parse(clockLayout, outTime)
	if inTime == "" || outTime == "" || errIn != nil || errOut != nil {
		return WorkHours{}
	}

	minutes := (out.Hour()*60 + out.Minute()) - (in.Hour()*60 + in.Minute())
	if minutes < 0 {
		minutes += 24 * 60
	}

	worked := decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(2)
	overtime := worked.Sub(decimal.NewFromInt(8))
	if overtime.IsNegative() {
		overtime = decimal.Zero
	}

	return WorkHours{
		HoursWorked: worked.InexactFloat64(),
		Overtime:    overtime.Round(2).InexactFloat64(),
	}
}

// Salary computes hours worked times the hourly rate, rounded to 2
// decimals. Pure function of Hours: the same degrade-to-zero rule
// applies.
func Salary(inTime, outTime string, ratePerHour decimal.Decimal) float64 {
	wh := Hours(inTime, outTime)
	return decimal.NewFromFloat(wh.HoursWorked).Mul(ratePerHour).Round(2).InexactFloat64()
}

// =============================================================================
// AMENITIES
// =============================================================================

// NoAmenities is the sentinel entry returned below the tenure bar.
const NoAmenities = "No amenities provided"

// amenityTenureYears is the minimum tenure for the standard kit.
const amenityTenureYears = 2

// Amenities returns the standard equipment kit once an employee has
// two full years of tenure, otherwise the single sentinel entry.
func Amenities(exp Experience) []string {
	if exp.Years >= amenityTenureYears {
		return []string{"Laptop", "Bag", "Mouse", "Headphone"}
	}
	return []string{NoAmenities}
}

// =============================================================================
// MONTHLY LEAVE SUMMARY
// =============================================================================

// LeaveSummary accounts for the calendar month containing the
// reference date, up to and including that date.
type LeaveSummary struct {
	// Month label, "YYYY-M" without zero padding.
	Month            string `json:"month"`
	TotalWorkingDays int    `json:"total_working_days"`
	PresentDays      int    `json:"present_days"`
	Leaves           int    `json:"leaves"`
}

// Leaves computes the month-to-date leave summary: working days are
// weekdays of the reference month that are not holidays and not after
// the reference date; leaves are the working days with no attendance
// record.
func Leaves(presentDays []string, ref time.Time, cal HolidayCalendar) LeaveSummary {
	year, month := ref.Year(), ref.Month()
	refDay := time.Date(year, month, ref.Day(), 0, 0, 0, 0, time.UTC)

	present := make(map[string]struct{}, len(presentDays))
	for _, d := range presentDays {
		present[d] = struct{}{}
	}

	working, missed := 0, 0
	for day := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); day.Month() == month; day = day.AddDate(0, 0, 1) {
		if day.After(refDay) {
			break
		}
		wd := day.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}
		if cal != nil && cal.IsHoliday(day) {
			continue
		}
		working++
		if _, ok := present[day.Format(dateLayout)]; !ok {
			missed++
		}
	}

	return LeaveSummary{
		Month:            monthLabel(year, month),
		TotalWorkingDays: working,
		PresentDays:      len(presentDays),
		Leaves:           missed,
	}
}

func monthLabel(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-1")
}
