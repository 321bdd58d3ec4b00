/*
errors.go - Centralized error taxonomy for the employee system

PURPOSE:
  All domain error types in one place. The api layer maps each
  taxonomy member to a distinct HTTP status; domain and store code
  only ever return these.

ERROR CATEGORIES:
  1. Store errors       - missing / duplicate records
  2. Auth errors        - missing, invalid, or insufficient credentials
  3. Derivation errors  - malformed date fields

USAGE:
  if errors.Is(err, employee.ErrNotFound) { ... }

  var invalid *employee.InvalidDateError
  if errors.As(err, &invalid) { ... }
*/
package employee

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when the referenced employee id is absent.
	ErrNotFound = errors.New("employee not found")

	// ErrAlreadyExists is returned on insert when the id is taken.
	ErrAlreadyExists = errors.New("employee already exists")

	// ErrUnauthenticated is returned when a request carries no usable
	// credential at all.
	ErrUnauthenticated = errors.New("missing or unparseable credential")

	// ErrInvalidCredential is returned when a credential is present but
	// matches no stored hash.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrForbidden is returned when the caller is authenticated but the
	// role/ownership rules deny the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidDate is returned when a malformed date field reaches the
	// derivation engine. Clock-time parsing is exempt: work hours
	// degrade to zero instead of failing.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidRole is returned when a record carries an unrecognized role.
	ErrInvalidRole = errors.New("invalid role")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidDateError reports which field failed date parsing.
type InvalidDateError struct {
	Field string
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date in %s: %q (want YYYY-MM-DD)", e.Field, e.Value)
}

func (e *InvalidDateError) Unwrap() error { return ErrInvalidDate }

// ForbiddenError reports which operation was denied and for whom.
type ForbiddenError struct {
	Operation string
	CallerID  int
	TargetID  int
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("caller %d not authorized for %s on employee %d",
		e.CallerID, e.Operation, e.TargetID)
}

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound reports whether err indicates a missing employee.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsAuthError reports whether err belongs to the credential/authorization
// family (as opposed to store or validation failures).
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthenticated) ||
		errors.Is(err, ErrInvalidCredential) ||
		errors.Is(err, ErrForbidden)
}

// IsClientError reports whether err is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidRole)
}
