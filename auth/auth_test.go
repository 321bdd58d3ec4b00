package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/hr-engine/auth"
	"github.com/warp/hr-engine/employee"
	"github.com/warp/hr-engine/store/memory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer([]byte("test-secret"), time.Hour)
}

func hr() auth.Identity       { return auth.Identity{EmployeeID: 100, Role: employee.RoleHR} }
func manager() auth.Identity  { return auth.Identity{EmployeeID: 200, Role: employee.RoleManager} }
func teamLead() auth.Identity { return auth.Identity{EmployeeID: 300, Role: employee.RoleTeamLeader} }
func regular() auth.Identity  { return auth.Identity{EmployeeID: 400, Role: employee.RoleEmployee} }

// =============================================================================
// TOKEN ISSUE / PARSE
// =============================================================================

func TestTokenIssuer_RoundTrip(t *testing.T) {
	ti := newIssuer()

	token, err := ti.Issue(&employee.Employee{ID: 42, Role: employee.RoleManager})
	require.NoError(t, err)

	id, err := ti.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, 42, id.EmployeeID)
	assert.Equal(t, employee.RoleManager, id.Role)
}

func TestTokenIssuer_WrongSecret_InvalidCredential(t *testing.T) {
	token, err := newIssuer().Issue(&employee.Employee{ID: 1, Role: employee.RoleHR})
	require.NoError(t, err)

	other := auth.NewTokenIssuer([]byte("different-secret"), time.Hour)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, employee.ErrInvalidCredential)
}

func TestTokenIssuer_Expired_InvalidCredential(t *testing.T) {
	ti := newIssuer()
	ti.TTL = time.Minute

	token, err := ti.Issue(&employee.Employee{ID: 1, Role: employee.RoleHR})
	require.NoError(t, err)

	// Move the clock past expiry.
	ti.Now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = ti.Parse(token)
	assert.ErrorIs(t, err, employee.ErrInvalidCredential)
}

// =============================================================================
// RESOLVER
// =============================================================================

func TestResolver_MissingHeader_Unauthenticated(t *testing.T) {
	r := &auth.Resolver{Tokens: newIssuer(), Store: memory.New()}

	_, err := r.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, employee.ErrUnauthenticated)
}

func TestResolver_JWTBearer(t *testing.T) {
	ti := newIssuer()
	r := &auth.Resolver{Tokens: ti, Store: memory.New()}

	token, err := ti.Issue(&employee.Employee{ID: 7, Role: employee.RoleTeamLeader})
	require.NoError(t, err)

	id, err := r.Resolve(context.Background(), "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, 7, id.EmployeeID)
	assert.Equal(t, employee.RoleTeamLeader, id.Role)
}

func TestResolver_OpaqueTokenFallback(t *testing.T) {
	// GIVEN: A stored employee with a hashed opaque token
	// WHEN: The bearer value is not a valid JWT
	// THEN: It resolves via the token-hash lookup

	store := memory.New()
	require.NoError(t, store.Insert(context.Background(), &employee.Employee{
		ID:        9,
		Role:      employee.RoleHR,
		TokenHash: auth.HashToken("opaque-badge-token"),
	}))

	r := &auth.Resolver{Tokens: newIssuer(), Store: store}

	id, err := r.Resolve(context.Background(), "Bearer opaque-badge-token")
	require.NoError(t, err)
	assert.Equal(t, 9, id.EmployeeID)
	assert.Equal(t, employee.RoleHR, id.Role)
}

func TestResolver_UnknownToken_InvalidCredential(t *testing.T) {
	r := &auth.Resolver{Tokens: newIssuer(), Store: memory.New()}

	_, err := r.Resolve(context.Background(), "Bearer nobody-knows-this")
	assert.ErrorIs(t, err, employee.ErrInvalidCredential)
}

// =============================================================================
// PASSWORD HASHING
// =============================================================================

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("admin@123")
	require.NoError(t, err)

	assert.True(t, auth.CheckPassword(hash, "admin@123"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
	assert.NotEqual(t, "admin@123", hash)
}

// =============================================================================
// AUTHORIZATION PREDICATES
// =============================================================================

func TestWriteAuthorization(t *testing.T) {
	assert.True(t, auth.CanCreate(hr()))
	assert.False(t, auth.CanCreate(manager()))
	assert.False(t, auth.CanCreate(regular()))

	assert.True(t, auth.CanDelete(hr()))
	assert.False(t, auth.CanDelete(teamLead()))

	assert.True(t, auth.CanUpdate(hr(), 999), "HR updates anyone")
	assert.True(t, auth.CanUpdate(regular(), 400), "self-update allowed")
	assert.False(t, auth.CanUpdate(regular(), 401), "non-HR cannot update others")
}

func TestSectionAuthorization(t *testing.T) {
	target := 555

	// personal: HR or self only
	assert.True(t, auth.CanViewPersonal(hr(), target))
	assert.True(t, auth.CanViewPersonal(auth.Identity{EmployeeID: target, Role: employee.RoleEmployee}, target))
	assert.False(t, auth.CanViewPersonal(manager(), target))
	assert.False(t, auth.CanViewPersonal(regular(), target))

	// professional: HR, Manager, Team Leader, or self
	assert.True(t, auth.CanViewProfessional(hr(), target))
	assert.True(t, auth.CanViewProfessional(manager(), target))
	assert.True(t, auth.CanViewProfessional(teamLead(), target))
	assert.True(t, auth.CanViewProfessional(auth.Identity{EmployeeID: target, Role: employee.RoleEmployee}, target))
	assert.False(t, auth.CanViewProfessional(regular(), target))
}

func TestCanViewPersonalWithProof(t *testing.T) {
	hash, err := auth.HashPassword("target-password")
	require.NoError(t, err)
	target := &employee.Employee{ID: 555, Role: employee.RoleEmployee, PasswordHash: hash}

	assert.True(t, auth.CanViewPersonalWithProof(manager(), target, "target-password"),
		"proving the target's own password opens personal")
	assert.False(t, auth.CanViewPersonalWithProof(manager(), target, "wrong"))
	assert.False(t, auth.CanViewPersonalWithProof(manager(), target, ""))
	assert.True(t, auth.CanViewPersonalWithProof(hr(), target, ""), "HR needs no proof")
}

func TestVisibleSections_AuthorizedSubset(t *testing.T) {
	target := 555

	assert.ElementsMatch(t,
		[]auth.Section{auth.SectionPersonal, auth.SectionProfessional},
		auth.VisibleSections(hr(), target))

	assert.ElementsMatch(t,
		[]auth.Section{auth.SectionProfessional},
		auth.VisibleSections(manager(), target))

	assert.Empty(t, auth.VisibleSections(regular(), target),
		"unrelated employee sees nothing")

	assert.ElementsMatch(t,
		[]auth.Section{auth.SectionPersonal, auth.SectionProfessional},
		auth.VisibleSections(auth.Identity{EmployeeID: target, Role: employee.RoleEmployee}, target),
		"self sees both")
}

func TestParseSection(t *testing.T) {
	s, ok := auth.ParseSection("personal")
	assert.True(t, ok)
	assert.Equal(t, auth.SectionPersonal, s)

	_, ok = auth.ParseSection("payroll")
	assert.False(t, ok)
}
