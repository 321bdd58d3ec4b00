package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/hr-engine/employee"
	"github.com/warp/hr-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sample(id int) *employee.Employee {
	return &employee.Employee{
		ID:                id,
		Name:              "Asha",
		DOB:               "1990-01-01",
		Role:              employee.RoleEmployee,
		Department:        "Platform",
		DateOfJoining:     "2022-01-01",
		RatePerHour:       300,
		InTime:            "09:00",
		OutTime:           "18:00",
		OngoingProjects:   []string{"atlas", "beacon"},
		CompletedProjects: []string{"zephyr"},
		EmployeeOfMonth:   2,
		Address:           "12 MG Road",
		Email:             "asha@example.com",
		PasswordHash:      "bcrypt-blob",
		TokenHash:         "sha-blob",
		PresentDays:       []string{"2025-09-12"},
	}
}

func TestSQLite_InsertGet_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, sample(1)))

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, sample(1), got, "all fields survive the round trip")

	_, err = s.Get(ctx, 2)
	assert.ErrorIs(t, err, employee.ErrNotFound)
}

func TestSQLite_Insert_Duplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, sample(1)))
	assert.ErrorIs(t, s.Insert(ctx, sample(1)), employee.ErrAlreadyExists)
}

func TestSQLite_MergeUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, sample(1)))

	dept := "Payments"
	projects := []string{"atlas"}
	merged, err := s.MergeUpdate(ctx, 1, employee.Update{
		Department:      &dept,
		OngoingProjects: &projects,
	})
	require.NoError(t, err)
	assert.Equal(t, "Payments", merged.Department)
	assert.Equal(t, []string{"atlas"}, merged.OngoingProjects)
	assert.Equal(t, "Asha", merged.Name)

	// Persisted, not just returned
	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Payments", got.Department)

	_, err = s.MergeUpdate(ctx, 404, employee.Update{Department: &dept})
	assert.ErrorIs(t, err, employee.ErrNotFound)
}

func TestSQLite_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, sample(1)))

	require.NoError(t, s.Delete(ctx, 1))
	assert.ErrorIs(t, s.Delete(ctx, 1), employee.ErrNotFound)
}

func TestSQLite_RecordAttendance_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, sample(1)))
	today := time.Date(2025, time.September, 15, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.RecordAttendance(ctx, 1, "09:00", "18:00", today))
	require.NoError(t, s.RecordAttendance(ctx, 1, "09:00", "18:00", today))

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-09-12", "2025-09-15"}, got.PresentDays)

	// Missing time: no-op
	require.NoError(t, s.RecordAttendance(ctx, 1, "", "18:00", today.AddDate(0, 0, 1)))
	got, err = s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, got.PresentDays, 2)
}

func TestSQLite_FindByTokenHash(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, sample(1)))

	got, err := s.FindByTokenHash(ctx, "sha-blob")
	require.NoError(t, err)
	assert.Equal(t, 1, got.ID)

	_, err = s.FindByTokenHash(ctx, "unknown")
	assert.ErrorIs(t, err, employee.ErrInvalidCredential)

	_, err = s.FindByTokenHash(ctx, "")
	assert.ErrorIs(t, err, employee.ErrInvalidCredential)
}

func TestSQLite_List_Ordered(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, id := range []int{3, 1, 2} {
		require.NoError(t, s.Insert(ctx, sample(id)))
	}

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, 3, all[2].ID)
}
