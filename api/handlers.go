/*
handlers.go - HTTP API handlers for the employee management system

PURPOSE:
  Exposes the employee store, derivation engine and access-control
  rules over REST. Handlers parse and validate input, run the
  authorization guard clauses, call into domain logic, and shape the
  response.

ENDPOINTS:
  POST   /api/login                      Exchange id+password for a token

  Employees (authenticated):
    GET    /api/employees                Full profiles, HR only (?id= for one)
    POST   /api/employees                Create, HR only
    GET    /api/employees/{id}           Section view (authorized subset)
    GET    /api/employees/{id}/{section} Single section (personal|professional)
    PUT    /api/employees/{id}           Merge-update, HR or self
    DELETE /api/employees/{id}           Delete, HR only

REQUEST FLOW:
  1. Resolve caller identity (middleware)
  2. Authorization guard clause - rejected writes never touch the store
  3. Store read/mutation
  4. Derivation
  5. Section shaping / serialization

ERROR HANDLING:
  Domain errors map to distinct statuses:
  - 400: invalid body, malformed dates, unknown role
  - 401: missing or invalid credential
  - 403: authenticated but not allowed
  - 404: employee not found
  - 409: duplicate id on create
  - 500: everything else

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - auth/policy.go: The authorization predicates used here
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/warp/hr-engine/auth"
	"github.com/warp/hr-engine/derive"
	"github.com/warp/hr-engine/employee"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    employee.Store
	Engine   *derive.Engine
	Tokens   *auth.TokenIssuer
	Resolver *auth.Resolver

	validate *validator.Validate

	// Now is the clock used for attendance stamping; tests pin it.
	Now func() time.Time
}

// NewHandler creates a handler wired to the given store and engine.
func NewHandler(store employee.Store, engine *derive.Engine, tokens *auth.TokenIssuer) *Handler {
	return &Handler{
		Store:    store,
		Engine:   engine,
		Tokens:   tokens,
		Resolver: &auth.Resolver{Tokens: tokens, Store: store},
		validate: validator.New(),
		Now:      time.Now,
	}
}

// =============================================================================
// AUTHENTICATION MIDDLEWARE
// =============================================================================

type ctxKey int

const callerKey ctxKey = iota

// Authenticate resolves the Authorization header to a caller identity
// and stores it on the request context. Requests with no usable
// credential stop here.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, err := h.Resolver.Resolve(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerKey, caller)))
	})
}

// CallerFrom extracts the authenticated identity set by Authenticate.
func CallerFrom(ctx context.Context) (auth.Identity, bool) {
	c, ok := ctx.Value(callerKey).(auth.Identity)
	return c, ok
}

// =============================================================================
// LOGIN
// =============================================================================

// Login exchanges id+password for a signed access token.
// POST /api/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	emp, err := h.Store.Get(r.Context(), req.ID)
	if err != nil && !employee.IsNotFound(err) {
		writeError(w, http.StatusInternalServerError, "Failed to load employee", err)
		return
	}
	if err != nil || emp.PasswordHash == "" || !auth.CheckPassword(emp.PasswordHash, req.Password) {
		// One answer for unknown id, passwordless record, and bad
		// password: no account probing.
		writeDomainError(w, employee.ErrInvalidCredential)
		return
	}

	token, err := h.Tokens.Issue(emp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue token", err)
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{AccessToken: token})
}

// =============================================================================
// EMPLOYEE CRUD
// =============================================================================

// ListEmployees returns full derived profiles, HR only.
// GET /api/employees and GET /api/employees?id=N
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFrom(r.Context())
	if !auth.CanList(caller) {
		writeDomainError(w, &employee.ForbiddenError{Operation: "list", CallerID: caller.EmployeeID})
		return
	}

	if idParam := r.URL.Query().Get("id"); idParam != "" {
		id, err := strconv.Atoi(idParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid employee id", err)
			return
		}
		emp, err := h.Store.Get(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		profile, err := h.Engine.Profile(emp)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfileDTO(profile))
		return
	}

	emps, err := h.Store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]ProfileDTO, 0, len(emps))
	for _, emp := range emps {
		profile, err := h.Engine.Profile(emp)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		dtos = append(dtos, toProfileDTO(profile))
	}
	writeJSON(w, http.StatusOK, map[string]any{"employees": dtos})
}

// CreateEmployee adds an employee, HR only.
// POST /api/employees
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFrom(r.Context())
	if !auth.CanCreate(caller) {
		writeDomainError(w, &employee.ForbiddenError{Operation: "create", CallerID: caller.EmployeeID})
		return
	}

	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input", err)
		return
	}

	role := employee.Role(req.Role)
	if !role.Valid() {
		writeDomainError(w, employee.ErrInvalidRole)
		return
	}
	if _, err := derive.ParseDate("dob", req.DOB); err != nil {
		writeDomainError(w, err)
		return
	}
	if _, err := derive.ParseDate("date_of_joining", req.DateOfJoining); err != nil {
		writeDomainError(w, err)
		return
	}

	emp := &employee.Employee{
		ID:                req.ID,
		Name:              req.Name,
		DOB:               req.DOB,
		Role:              role,
		Department:        req.Department,
		DateOfJoining:     req.DateOfJoining,
		RatePerHour:       req.RatePerHour,
		InTime:            req.InTime,
		OutTime:           req.OutTime,
		OngoingProjects:   req.OngoingProjects,
		CompletedProjects: req.CompletedProjects,
		EmployeeOfMonth:   req.EmployeeOfMonth,
		Address:           req.Address,
		Email:             req.Email,
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to hash password", err)
			return
		}
		emp.PasswordHash = hash
	}
	if req.Token != "" {
		emp.TokenHash = auth.HashToken(req.Token)
	}

	if err := h.Store.Insert(r.Context(), emp); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Store.RecordAttendance(r.Context(), emp.ID, req.InTime, req.OutTime, h.Now()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record attendance", err)
		return
	}

	h.respondWithProfile(w, r, emp.ID, http.StatusCreated)
}

// UpdateEmployee merge-updates an employee, HR or self.
// PUT /api/employees/{id}
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee id", err)
		return
	}

	caller, _ := CallerFrom(r.Context())
	if !auth.CanUpdate(caller, id) {
		writeDomainError(w, &employee.ForbiddenError{Operation: "update", CallerID: caller.EmployeeID, TargetID: id})
		return
	}

	var req UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	patch, err := buildPatch(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	merged, err := h.Store.MergeUpdate(r.Context(), id, patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	// Attendance is driven by the clock times supplied in this update,
	// not by whatever was already stored.
	in, out := "", ""
	if req.InTime != nil {
		in = *req.InTime
	}
	if req.OutTime != nil {
		out = *req.OutTime
	}
	if err := h.Store.RecordAttendance(r.Context(), merged.ID, in, out, h.Now()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record attendance", err)
		return
	}

	h.respondWithProfile(w, r, id, http.StatusOK)
}

// DeleteEmployee removes an employee, HR only.
// DELETE /api/employees/{id}
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee id", err)
		return
	}

	caller, _ := CallerFrom(r.Context())
	if !auth.CanDelete(caller) {
		writeDomainError(w, &employee.ForbiddenError{Operation: "delete", CallerID: caller.EmployeeID, TargetID: id})
		return
	}

	if err := h.Store.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// =============================================================================
// SECTION VIEWS
// =============================================================================

// GetEmployeeSections returns the personal and/or professional view.
// GET /api/employees/{id} and GET /api/employees/{id}/{section}
//
// With an explicit section the caller must be authorized for exactly
// that section. With none, the response is the union of sections the
// caller is independently authorized for; authorized for neither is
// Forbidden.
func (h *Handler) GetEmployeeSections(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee id", err)
		return
	}

	sectionParam := chi.URLParam(r, "section")
	if sectionParam == "" {
		sectionParam = r.URL.Query().Get("section")
	}
	var (
		section    auth.Section
		hasSection bool
	)
	if sectionParam != "" {
		section, hasSection = auth.ParseSection(sectionParam)
		if !hasSection {
			writeError(w, http.StatusBadRequest, "Unknown section (want personal or professional)", nil)
			return
		}
	}

	caller, _ := CallerFrom(r.Context())

	emp, err := h.Store.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var out SectionsDTO
	switch {
	case hasSection && section == auth.SectionPersonal:
		// The password-gated variant: proving the target's own
		// password opens the personal section.
		if !auth.CanViewPersonalWithProof(caller, emp, r.Header.Get("X-Password")) {
			writeDomainError(w, &employee.ForbiddenError{Operation: "view personal", CallerID: caller.EmployeeID, TargetID: id})
			return
		}
		profile, err := h.Engine.Profile(emp)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		out.Personal = toPersonalSection(profile)

	case hasSection && section == auth.SectionProfessional:
		if !auth.CanViewProfessional(caller, id) {
			writeDomainError(w, &employee.ForbiddenError{Operation: "view professional", CallerID: caller.EmployeeID, TargetID: id})
			return
		}
		profile, err := h.Engine.Profile(emp)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		out.Professional = toProfessionalSection(profile)

	default:
		visible := auth.VisibleSections(caller, id)
		if len(visible) == 0 {
			writeDomainError(w, &employee.ForbiddenError{Operation: "view", CallerID: caller.EmployeeID, TargetID: id})
			return
		}
		profile, err := h.Engine.Profile(emp)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		for _, s := range visible {
			switch s {
			case auth.SectionPersonal:
				out.Personal = toPersonalSection(profile)
			case auth.SectionProfessional:
				out.Professional = toProfessionalSection(profile)
			}
		}
	}

	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) respondWithProfile(w http.ResponseWriter, r *http.Request, id int, status int) {
	emp, err := h.Store.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	profile, err := h.Engine.Profile(emp)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, status, toProfileDTO(profile))
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

// buildPatch converts an update request into a domain patch, hashing
// any supplied credentials and rejecting bad roles/dates up front.
func buildPatch(req UpdateEmployeeRequest) (employee.Update, error) {
	patch := employee.Update{
		Name:              req.Name,
		DOB:               req.DOB,
		Department:        req.Department,
		DateOfJoining:     req.DateOfJoining,
		RatePerHour:       req.RatePerHour,
		InTime:            req.InTime,
		OutTime:           req.OutTime,
		OngoingProjects:   req.OngoingProjects,
		CompletedProjects: req.CompletedProjects,
		EmployeeOfMonth:   req.EmployeeOfMonth,
		Address:           req.Address,
		Email:             req.Email,
	}

	if req.Role != nil {
		role := employee.Role(*req.Role)
		if !role.Valid() {
			return employee.Update{}, employee.ErrInvalidRole
		}
		patch.Role = &role
	}
	if req.DOB != nil {
		if _, err := derive.ParseDate("dob", *req.DOB); err != nil {
			return employee.Update{}, err
		}
	}
	if req.DateOfJoining != nil {
		if _, err := derive.ParseDate("date_of_joining", *req.DateOfJoining); err != nil {
			return employee.Update{}, err
		}
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return employee.Update{}, err
		}
		patch.PasswordHash = &hash
	}
	if req.Token != nil && *req.Token != "" {
		tokenHash := auth.HashToken(*req.Token)
		patch.TokenHash = &tokenHash
	}
	return patch, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps the domain error taxonomy to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case employee.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Employee not found", nil)
	case errors.Is(err, employee.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "Employee with this id already exists", nil)
	case errors.Is(err, employee.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "Missing credential", nil)
	case errors.Is(err, employee.ErrInvalidCredential):
		writeError(w, http.StatusUnauthorized, "Invalid credential", nil)
	case errors.Is(err, employee.ErrForbidden):
		writeError(w, http.StatusForbidden, "Not authorized", err)
	case employee.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid input", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}
