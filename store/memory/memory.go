// Package memory provides the in-memory employee.Store implementation.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/hr-engine/employee"
)

// =============================================================================
// MEMORY STORE - RWMutex-guarded map (reference implementation)
// =============================================================================

// Store keeps employees in a map keyed by id. Reads take the read
// lock and hand out clones; mutations take the write lock, so a
// record is never observable half-merged.
type Store struct {
	mu        sync.RWMutex
	employees map[int]*employee.Employee
}

func New() *Store {
	return &Store{employees: make(map[int]*employee.Employee)}
}

func (s *Store) Get(_ context.Context, id int) (*employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[id]
	if !ok {
		return nil, employee.ErrNotFound
	}
	return e.Clone(), nil
}

func (s *Store) List(_ context.Context) ([]*employee.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*employee.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) Insert(_ context.Context, e *employee.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[e.ID]; ok {
		return employee.ErrAlreadyExists
	}
	s.employees[e.ID] = e.Clone()
	return nil
}

func (s *Store) MergeUpdate(_ context.Context, id int, patch employee.Update) (*employee.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.employees[id]
	if !ok {
		return nil, employee.ErrNotFound
	}
	patch.Apply(e)
	return e.Clone(), nil
}

func (s *Store) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[id]; !ok {
		return employee.ErrNotFound
	}
	delete(s.employees, id)
	return nil
}

func (s *Store) RecordAttendance(_ context.Context, id int, inTime, outTime string, today time.Time) error {
	if inTime == "" || outTime == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.employees[id]
	if !ok {
		return employee.ErrNotFound
	}
	e.MarkPresent(employee.AttendanceDay(today))
	return nil
}

func (s *Store) FindByTokenHash(_ context.Context, hash string) (*employee.Employee, error) {
	if hash == "" {
		return nil, employee.ErrInvalidCredential
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.employees {
		if e.TokenHash != "" && e.TokenHash == hash {
			return e.Clone(), nil
		}
	}
	return nil, employee.ErrInvalidCredential
}
