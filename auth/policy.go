/*
policy.go - Pure authorization predicates

PURPOSE:
  Every rule takes (caller identity, target) and answers allow/deny.
  No middleware, no control flow: handlers call these as guard clauses
  before touching the store, so a rejected write never partially
  applies.

RULES:
  create, delete          HR only
  update                  HR, or self
  personal section        HR, or self, or proof of the target's
                          own password
  professional section    HR / Manager / Team Leader, or self
  no section specified    the union of independently authorized
                          sections; none -> Forbidden
*/
package auth

import "github.com/warp/hr-engine/employee"

// Section is one of the two access-scoped views of an employee record.
type Section string

const (
	SectionPersonal     Section = "personal"
	SectionProfessional Section = "professional"
)

// ParseSection recognizes a section selector. Empty input means "no
// section specified" and is not a parse failure.
func ParseSection(s string) (Section, bool) {
	switch Section(s) {
	case SectionPersonal, SectionProfessional:
		return Section(s), true
	}
	return "", false
}

// CanCreate reports whether the caller may add employees.
func CanCreate(c Identity) bool { return c.Role == employee.RoleHR }

// CanDelete reports whether the caller may remove employees.
func CanDelete(c Identity) bool { return c.Role == employee.RoleHR }

// CanUpdate reports whether the caller may modify the target record.
func CanUpdate(c Identity, targetID int) bool {
	return c.Role == employee.RoleHR || c.EmployeeID == targetID
}

// CanList reports whether the caller may read the full directory.
func CanList(c Identity) bool { return c.Role == employee.RoleHR }

// CanViewPersonal reports whether the caller may read the target's
// personal section. Proof of the target's own password is handled by
// the caller (see CanViewPersonalWithProof).
func CanViewPersonal(c Identity, targetID int) bool {
	return c.Role == employee.RoleHR || c.EmployeeID == targetID
}

// CanViewPersonalWithProof extends CanViewPersonal with the
// password-gated variant: a caller who re-enters the target's own
// password and proves it sees the personal section.
func CanViewPersonalWithProof(c Identity, target *employee.Employee, suppliedPassword string) bool {
	if CanViewPersonal(c, target.ID) {
		return true
	}
	return suppliedPassword != "" && target.PasswordHash != "" &&
		CheckPassword(target.PasswordHash, suppliedPassword)
}

// CanViewProfessional reports whether the caller may read the target's
// professional section.
func CanViewProfessional(c Identity, targetID int) bool {
	switch c.Role {
	case employee.RoleHR, employee.RoleManager, employee.RoleTeamLeader:
		return true
	}
	return c.EmployeeID == targetID
}

// VisibleSections returns the sections the caller is independently
// authorized to see on the target. Empty means the whole read is
// forbidden.
func VisibleSections(c Identity, targetID int) []Section {
	var out []Section
	if CanViewPersonal(c, targetID) {
		out = append(out, SectionPersonal)
	}
	if CanViewProfessional(c, targetID) {
		out = append(out, SectionProfessional)
	}
	return out
}
