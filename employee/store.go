/*
store.go - Persistence interface for employee records

PURPOSE:
  Defines the contract between domain logic and storage. The store is
  the only owner of canonical Employee state; reads hand out deep
  copies and mutations are atomic per call.

CONCURRENCY CONTRACT:
  Implementations must support concurrent readers and serialize
  mutations (store-wide locking is acceptable). A mutation is never
  observable half-applied.

IMPLEMENTATIONS:
  - store/memory: RWMutex-guarded map, the reference implementation
  - store/sqlite: SQLite-backed, for deployments that outlive a process

SEE ALSO:
  - types.go: Employee and Update
  - errors.go: ErrNotFound / ErrAlreadyExists
*/
package employee

import (
	"context"
	"time"
)

// Store persists employee records.
type Store interface {
	// Get returns a copy of the employee, or ErrNotFound.
	Get(ctx context.Context, id int) (*Employee, error)

	// List returns copies of all employees in ascending id order.
	List(ctx context.Context) ([]*Employee, error)

	// Insert adds a new employee. Returns ErrAlreadyExists if the id
	// is taken.
	Insert(ctx context.Context, e *Employee) error

	// MergeUpdate applies a partial patch to an existing employee and
	// returns a copy of the merged record. Returns ErrNotFound if the
	// id is absent. Unset fields keep their prior values.
	MergeUpdate(ctx context.Context, id int, patch Update) (*Employee, error)

	// Delete removes an employee. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id int) error

	// RecordAttendance appends today to the employee's present-day set
	// when both clock times are non-empty. Idempotent per day; a no-op
	// when either time is missing. Returns ErrNotFound if the id is
	// absent.
	RecordAttendance(ctx context.Context, id int, inTime, outTime string, today time.Time) error

	// FindByTokenHash resolves an employee by opaque-token hash.
	// Returns ErrInvalidCredential when no record matches.
	FindByTokenHash(ctx context.Context, hash string) (*Employee, error)
}

// AttendanceDay formats a point in time as the present-day date string.
func AttendanceDay(t time.Time) string { return t.Format("2006-01-02") }
