package employee_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/hr-engine/employee"
)

func TestMarkPresent_Idempotent(t *testing.T) {
	e := &employee.Employee{ID: 1}

	assert.True(t, e.MarkPresent("2025-09-15"), "first mark should append")
	assert.False(t, e.MarkPresent("2025-09-15"), "second mark same day is a no-op")
	assert.Equal(t, []string{"2025-09-15"}, e.PresentDays)

	assert.True(t, e.MarkPresent("2025-09-16"))
	assert.Equal(t, []string{"2025-09-15", "2025-09-16"}, e.PresentDays, "insertion order preserved")
}

func TestClone_DeepCopiesSlices(t *testing.T) {
	e := &employee.Employee{
		ID:              1,
		OngoingProjects: []string{"atlas"},
		PresentDays:     []string{"2025-09-15"},
	}

	c := e.Clone()
	c.OngoingProjects[0] = "changed"
	c.PresentDays = append(c.PresentDays, "2025-09-16")

	assert.Equal(t, "atlas", e.OngoingProjects[0])
	assert.Len(t, e.PresentDays, 1)
}

func TestUpdate_Apply_PartialMerge(t *testing.T) {
	e := &employee.Employee{
		ID:         1,
		Name:       "Asha",
		Department: "Platform",
		InTime:     "09:00",
	}

	dept := "Payments"
	out := "18:00"
	employee.Update{Department: &dept, OutTime: &out}.Apply(e)

	assert.Equal(t, "Payments", e.Department, "supplied field overwrites")
	assert.Equal(t, "18:00", e.OutTime)
	assert.Equal(t, "Asha", e.Name, "unspecified fields retain prior values")
	assert.Equal(t, "09:00", e.InTime)
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []employee.Role{
		employee.RoleHR, employee.RoleManager, employee.RoleTeamLeader, employee.RoleEmployee,
	} {
		assert.True(t, r.Valid(), string(r))
	}
	assert.False(t, employee.Role("Intern").Valid())
}
