/*
profile.go - Engine aggregating all derived fields into a Profile

PURPOSE:
  The per-request derived view. An Engine carries the injected pieces
  (holiday calendar, default rate, clock) so handlers and tests can
  pin them down; Profile is what the api layer shapes into sections.
*/
package derive

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/hr-engine/employee"
)

// Engine computes Profiles. Zero-ish dependencies, all injectable.
type Engine struct {
	Calendar    HolidayCalendar
	DefaultRate decimal.Decimal

	// Now is the clock; tests pin it to a fixed date.
	Now func() time.Time
}

// NewEngine returns an Engine with the given calendar and rate,
// running on the wall clock.
func NewEngine(cal HolidayCalendar, defaultRate decimal.Decimal) *Engine {
	return &Engine{Calendar: cal, DefaultRate: defaultRate, Now: time.Now}
}

// Profile is the ephemeral derived view of one employee. Computed per
// request, never persisted, never aliased to canonical state.
type Profile struct {
	Employee *employee.Employee

	Age        int
	Experience Experience
	WorkHours  WorkHours
	Salary     float64
	Amenities  []string
	Leaves     LeaveSummary
}

// Profile derives the full view for e at the engine's current time.
// Date parsing failures propagate; they are the caller's bad data, not
// something to paper over.
func (g *Engine) Profile(e *employee.Employee) (*Profile, error) {
	now := g.Now()
	view := e.Clone()

	age, err := Age(view.DOB, now)
	if err != nil {
		return nil, err
	}
	exp, err := ExperienceSince(view.DateOfJoining, now)
	if err != nil {
		return nil, err
	}

	rate := g.DefaultRate
	if view.RatePerHour > 0 {
		rate = decimal.NewFromFloat(view.RatePerHour)
	}

	return &Profile{
		Employee:   view,
		Age:        age,
		Experience: exp,
		WorkHours:  Hours(view.InTime, view.OutTime),
		Salary:     Salary(view.InTime, view.OutTime, rate),
		Amenities:  Amenities(exp),
		Leaves:     Leaves(view.PresentDays, now, g.Calendar),
	}, nil
}
