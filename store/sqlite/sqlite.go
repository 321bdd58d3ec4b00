/*
Package sqlite provides the SQLite-backed employee.Store implementation.

PURPOSE:
  Persistence for deployments that outlive a process. The in-memory
  store in store/memory remains the reference implementation for
  tests; this one implements the same contract on disk, and the same
  patterns would apply to PostgreSQL with minor dialect changes.

SCHEMA:
  employees: one row per record. Project lists and the present-day set
  are stored as JSON arrays; clock times and dates stay the strings
  they arrive as, so derivation semantics are identical across stores.

CONCURRENCY:
  WAL mode plus a store-level mutex around mutations. Merge-update and
  attendance are read-modify-write inside a database transaction, so a
  record is never observable half-merged.

USAGE:
  store, err := sqlite.New("./data/hr.db")   // ":memory:" for tests
  defer store.Close()

SEE ALSO:
  - employee/store.go: Interface definition
  - store/memory/memory.go: In-memory implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/hr-engine/employee"
)

// Store implements employee.Store on SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New opens (and migrates) a SQLite store at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		dob TEXT NOT NULL,
		role TEXT NOT NULL,
		department TEXT NOT NULL,
		date_of_joining TEXT NOT NULL,
		rate_per_hour REAL NOT NULL DEFAULT 0,
		in_time TEXT NOT NULL DEFAULT '',
		out_time TEXT NOT NULL DEFAULT '',
		ongoing_projects_json TEXT NOT NULL DEFAULT '[]',
		completed_projects_json TEXT NOT NULL DEFAULT '[]',
		employee_of_month INTEGER NOT NULL DEFAULT 0,
		address TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL DEFAULT '',
		token_hash TEXT NOT NULL DEFAULT '',
		present_days_json TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Credential resolution hot path
	CREATE INDEX IF NOT EXISTS idx_employees_token_hash
		ON employees(token_hash) WHERE token_hash != '';
	`
	_, err := s.db.Exec(schema)
	return err
}

const employeeColumns = `id, name, dob, role, department, date_of_joining,
	rate_per_hour, in_time, out_time, ongoing_projects_json,
	completed_projects_json, employee_of_month, address, email,
	password_hash, token_hash, present_days_json`

// =============================================================================
// READS
// =============================================================================

func (s *Store) Get(ctx context.Context, id int) (*employee.Employee, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
	return scanEmployee(row)
}

func (s *Store) List(ctx context.Context) ([]*employee.Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) FindByTokenHash(ctx context.Context, hash string) (*employee.Employee, error) {
	if hash == "" {
		return nil, employee.ErrInvalidCredential
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE token_hash = ?`, hash)
	e, err := scanEmployee(row)
	if errors.Is(err, employee.ErrNotFound) {
		return nil, employee.ErrInvalidCredential
	}
	return e, err
}

// =============================================================================
// MUTATIONS
// =============================================================================

func (s *Store) Insert(ctx context.Context, e *employee.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (`+employeeColumns+`, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.DOB, string(e.Role), e.Department, e.DateOfJoining,
		e.RatePerHour, e.InTime, e.OutTime,
		marshalList(e.OngoingProjects), marshalList(e.CompletedProjects),
		e.EmployeeOfMonth, e.Address, e.Email,
		e.PasswordHash, e.TokenHash, marshalList(e.PresentDays),
		now, now,
	)
	if err != nil && isUniqueViolation(err) {
		return employee.ErrAlreadyExists
	}
	return err
}

func (s *Store) MergeUpdate(ctx context.Context, id int, patch employee.Update) (*employee.Employee, error) {
	var merged *employee.Employee
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
		e, err := scanEmployee(row)
		if err != nil {
			return err
		}
		patch.Apply(e)
		if err := updateRow(ctx, tx, e); err != nil {
			return err
		}
		merged = e
		return nil
	})
	return merged, err
}

func (s *Store) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return employee.ErrNotFound
	}
	return nil
}

func (s *Store) RecordAttendance(ctx context.Context, id int, inTime, outTime string, today time.Time) error {
	if inTime == "" || outTime == "" {
		return nil
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
		e, err := scanEmployee(row)
		if err != nil {
			return err
		}
		if !e.MarkPresent(employee.AttendanceDay(today)) {
			return nil
		}
		return updateRow(ctx, tx, e)
	})
}

// withTx runs fn inside a database transaction under the store mutex.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func updateRow(ctx context.Context, tx *sql.Tx, e *employee.Employee) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE employees SET
			name = ?, dob = ?, role = ?, department = ?, date_of_joining = ?,
			rate_per_hour = ?, in_time = ?, out_time = ?,
			ongoing_projects_json = ?, completed_projects_json = ?,
			employee_of_month = ?, address = ?, email = ?,
			password_hash = ?, token_hash = ?, present_days_json = ?,
			updated_at = ?
		WHERE id = ?`,
		e.Name, e.DOB, string(e.Role), e.Department, e.DateOfJoining,
		e.RatePerHour, e.InTime, e.OutTime,
		marshalList(e.OngoingProjects), marshalList(e.CompletedProjects),
		e.EmployeeOfMonth, e.Address, e.Email,
		e.PasswordHash, e.TokenHash, marshalList(e.PresentDays),
		time.Now().UTC().Format(time.RFC3339), e.ID,
	)
	return err
}

// =============================================================================
// SCANNING
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*employee.Employee, error) {
	var (
		e         employee.Employee
		role      string
		ongoing   string
		completed string
		present   string
	)
	err := row.Scan(
		&e.ID, &e.Name, &e.DOB, &role, &e.Department, &e.DateOfJoining,
		&e.RatePerHour, &e.InTime, &e.OutTime, &ongoing, &completed,
		&e.EmployeeOfMonth, &e.Address, &e.Email,
		&e.PasswordHash, &e.TokenHash, &present,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, employee.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan employee: %w", err)
	}

	e.Role = employee.Role(role)
	if err := json.Unmarshal([]byte(ongoing), &e.OngoingProjects); err != nil {
		return nil, fmt.Errorf("corrupt ongoing_projects_json: %w", err)
	}
	if err := json.Unmarshal([]byte(completed), &e.CompletedProjects); err != nil {
		return nil, fmt.Errorf("corrupt completed_projects_json: %w", err)
	}
	if err := json.Unmarshal([]byte(present), &e.PresentDays); err != nil {
		return nil, fmt.Errorf("corrupt present_days_json: %w", err)
	}
	return &e, nil
}

func marshalList(v []string) string {
	if v == nil {
		return "[]"
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func isUniqueViolation(err error) bool {
	// mattn/go-sqlite3 reports primary-key conflicts as "UNIQUE constraint failed".
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
