/*
Package employee defines the canonical employee record and the storage
contract that owns it.

PURPOSE:
  This package is the system of record for employee state. Everything
  presentation-side (age, experience, computed salary, leave summary)
  is derived per-request by the derive package and never stored here.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee: the canonical record, including credential hashes
  - Role: recognized role enum (HR, Manager, Team Leader, Employee)
  - Update: a partial patch applied by merge-update

OWNERSHIP:
  Store implementations exclusively own Employee instances. Every read
  returns a deep copy (Clone), so callers can never mutate canonical
  state through a returned record.

SEE ALSO:
  - store.go: Store interface
  - errors.go: Error taxonomy
  - derive/: Request-time derived fields
*/
package employee

import "slices"

// =============================================================================
// ROLE
// =============================================================================

type Role string

const (
	RoleHR         Role = "HR"
	RoleManager    Role = "Manager"
	RoleTeamLeader Role = "Team Leader"
	RoleEmployee   Role = "Employee"
)

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	switch r {
	case RoleHR, RoleManager, RoleTeamLeader, RoleEmployee:
		return true
	}
	return false
}

// =============================================================================
// EMPLOYEE - Canonical record
// =============================================================================

// Employee is the canonical employee record.
// Dates are "YYYY-MM-DD" strings, clock times are "HH:MM" strings;
// both arrive that way on the wire and are parsed only at derivation.
type Employee struct {
	ID            int
	Name          string
	DOB           string
	Role          Role
	Department    string
	DateOfJoining string

	// RatePerHour of 0 means "use the configured default rate".
	RatePerHour float64

	InTime  string
	OutTime string

	OngoingProjects   []string
	CompletedProjects []string
	EmployeeOfMonth   int
	Address           string
	Email             string

	// Credential hashes. Never included in any derived view.
	PasswordHash string
	TokenHash    string

	// PresentDays holds each attended calendar date at most once,
	// in insertion order.
	PresentDays []string
}

// Clone returns a deep copy. Slices are copied so mutations on the
// clone never reach the original.
func (e *Employee) Clone() *Employee {
	c := *e
	c.OngoingProjects = slices.Clone(e.OngoingProjects)
	c.CompletedProjects = slices.Clone(e.CompletedProjects)
	c.PresentDays = slices.Clone(e.PresentDays)
	return &c
}

// IsPresent reports whether day is already in the present-day set.
func (e *Employee) IsPresent(day string) bool {
	return slices.Contains(e.PresentDays, day)
}

// MarkPresent appends day to the present-day set. Idempotent: returns
// false without modification if the day is already recorded.
func (e *Employee) MarkPresent(day string) bool {
	if e.IsPresent(day) {
		return false
	}
	e.PresentDays = append(e.PresentDays, day)
	return true
}

// =============================================================================
// UPDATE - Partial patch for merge-update
// =============================================================================

// Update is a partial set of employee fields. Nil pointers mean
// "leave unchanged"; set pointers overwrite. The present-day history
// is deliberately absent: it is only mutated through attendance.
type Update struct {
	Name              *string
	DOB               *string
	Role              *Role
	Department        *string
	DateOfJoining     *string
	RatePerHour       *float64
	InTime            *string
	OutTime           *string
	OngoingProjects   *[]string
	CompletedProjects *[]string
	EmployeeOfMonth   *int
	Address           *string
	Email             *string
	PasswordHash      *string
	TokenHash         *string
}

// Apply shallow-merges the set fields of u into e.
func (u Update) Apply(e *Employee) {
	if u.Name != nil {
		e.Name = *u.Name
	}
	if u.DOB != nil {
		e.DOB = *u.DOB
	}
	if u.Role != nil {
		e.Role = *u.Role
	}
	if u.Department != nil {
		e.Department = *u.Department
	}
	if u.DateOfJoining != nil {
		e.DateOfJoining = *u.DateOfJoining
	}
	if u.RatePerHour != nil {
		e.RatePerHour = *u.RatePerHour
	}
	if u.InTime != nil {
		e.InTime = *u.InTime
	}
	if u.OutTime != nil {
		e.OutTime = *u.OutTime
	}
	if u.OngoingProjects != nil {
		e.OngoingProjects = slices.Clone(*u.OngoingProjects)
	}
	if u.CompletedProjects != nil {
		e.CompletedProjects = slices.Clone(*u.CompletedProjects)
	}
	if u.EmployeeOfMonth != nil {
		e.EmployeeOfMonth = *u.EmployeeOfMonth
	}
	if u.Address != nil {
		e.Address = *u.Address
	}
	if u.Email != nil {
		e.Email = *u.Email
	}
	if u.PasswordHash != nil {
		e.PasswordHash = *u.PasswordHash
	}
	if u.TokenHash != nil {
		e.TokenHash = *u.TokenHash
	}
}
