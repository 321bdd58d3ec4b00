/*
Package auth establishes caller identity and decides what that
identity may do.

PURPOSE:
  Three divergent credential schemes (none, JWT role claims, opaque
  bearer-token hash) collapse here into one abstraction: a request
  resolves to an Identity{EmployeeID, Role}, and all authorization
  logic is written against that, indifferent to how it was established.

THIS FILE (auth.go):
  - Identity and JWT claims
  - TokenIssuer: signing and parsing access tokens
  - Resolver: Authorization header -> Identity, JWT first, opaque
    token-hash lookup as fallback
  - Password and token hashing primitives

SEE ALSO:
  - policy.go: Pure authorization predicates
*/
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/warp/hr-engine/employee"
)

// Identity is the authenticated actor making a request.
type Identity struct {
	EmployeeID int
	Role       employee.Role
}

// Claims are the JWT claims carried by access tokens: subject is the
// employee id, plus a role claim.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// =============================================================================
// TOKEN ISSUER - Signed access tokens
// =============================================================================

// TokenIssuer signs and parses HS256 access tokens.
type TokenIssuer struct {
	Secret []byte
	TTL    time.Duration

	// Now is the clock; tests pin it.
	Now func() time.Time
}

// NewTokenIssuer returns an issuer on the wall clock.
func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{Secret: secret, TTL: ttl, Now: time.Now}
}

// Issue signs an access token for the employee.
func (ti *TokenIssuer) Issue(e *employee.Employee) (string, error) {
	now := ti.Now()
	claims := Claims{
		Role: string(e.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(e.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.Secret)
}

// Parse validates a token string and extracts the caller identity.
// Any failure maps to ErrInvalidCredential; callers that want the
// opaque-token fallback check for that sentinel.
func (ti *TokenIssuer) Parse(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ti.Secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return ti.Now() }))
	if err != nil || !token.Valid {
		return Identity{}, employee.ErrInvalidCredential
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Identity{}, employee.ErrInvalidCredential
	}
	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return Identity{}, employee.ErrInvalidCredential
	}
	return Identity{EmployeeID: id, Role: employee.Role(claims.Role)}, nil
}

// =============================================================================
// RESOLVER - Authorization header to Identity
// =============================================================================

// Resolver turns a raw Authorization header value into an Identity.
type Resolver struct {
	Tokens *TokenIssuer
	Store  employee.Store
}

// Resolve parses the header value. A missing header is
// ErrUnauthenticated. The bearer value is tried as a JWT first; if
// that fails it is hashed and looked up as an opaque token, and a miss
// there is ErrInvalidCredential.
func (r *Resolver) Resolve(ctx context.Context, authHeader string) (Identity, error) {
	raw := strings.TrimSpace(authHeader)
	if raw == "" {
		return Identity{}, employee.ErrUnauthenticated
	}
	raw = strings.TrimPrefix(raw, "Bearer ")

	if id, err := r.Tokens.Parse(raw); err == nil {
		return id, nil
	}

	e, err := r.Store.FindByTokenHash(ctx, HashToken(raw))
	if err != nil {
		return Identity{}, employee.ErrInvalidCredential
	}
	return Identity{EmployeeID: e.ID, Role: e.Role}, nil
}

// =============================================================================
// CREDENTIAL HASHING
// =============================================================================

// HashPassword bcrypt-hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashToken hashes an opaque bearer token for storage and lookup.
// Tokens are high-entropy, so a plain SHA-256 digest suffices.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
