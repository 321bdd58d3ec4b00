/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the domain model
  from the wire contract. Credential hashes never appear in any
  response type, so redaction is structural rather than a filtering
  step.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request types carry validator/v10 struct tags; handlers run the
  validator before touching domain logic.

SEE ALSO:
  - handlers.go: Uses these types
  - auth/policy.go: Which sections a caller may see
*/
package api

import (
	"github.com/warp/hr-engine/derive"
	"github.com/warp/hr-engine/employee"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// LoginRequest authenticates with employee id and password.
type LoginRequest struct {
	ID       int    `json:"id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateEmployeeRequest is the request to add an employee.
type CreateEmployeeRequest struct {
	ID                int      `json:"id" validate:"required,gt=0"`
	Name              string   `json:"name" validate:"required"`
	DOB               string   `json:"dob" validate:"required"`
	Role              string   `json:"role" validate:"required"`
	Department        string   `json:"department" validate:"required"`
	DateOfJoining     string   `json:"date_of_joining" validate:"required"`
	RatePerHour       float64  `json:"rate_per_hour" validate:"omitempty,gt=0"`
	InTime            string   `json:"in_time"`
	OutTime           string   `json:"out_time"`
	OngoingProjects   []string `json:"ongoing_project"`
	CompletedProjects []string `json:"completed_project"`
	EmployeeOfMonth   int      `json:"employee_of_month"`
	Address           string   `json:"address"`
	Email             string   `json:"email" validate:"omitempty,email"`

	// Password is bcrypt-hashed before storage; Token is stored as a
	// SHA-256 hash for opaque bearer auth. Both optional.
	Password string `json:"password"`
	Token    string `json:"token"`
}

// UpdateEmployeeRequest is a partial patch: absent fields keep their
// prior values.
type UpdateEmployeeRequest struct {
	Name              *string   `json:"name"`
	DOB               *string   `json:"dob"`
	Role              *string   `json:"role"`
	Department        *string   `json:"department"`
	DateOfJoining     *string   `json:"date_of_joining"`
	RatePerHour       *float64  `json:"rate_per_hour"`
	InTime            *string   `json:"in_time"`
	OutTime           *string   `json:"out_time"`
	OngoingProjects   *[]string `json:"ongoing_project"`
	CompletedProjects *[]string `json:"completed_project"`
	EmployeeOfMonth   *int      `json:"employee_of_month"`
	Address           *string   `json:"address"`
	Email             *string   `json:"email"`
	Password          *string   `json:"password"`
	Token             *string   `json:"token"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// LoginResponse carries the signed access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// EmployeeDTO is the stored record with credentials redacted.
type EmployeeDTO struct {
	ID                int      `json:"id"`
	Name              string   `json:"name"`
	DOB               string   `json:"dob"`
	Role              string   `json:"role"`
	Department        string   `json:"department"`
	DateOfJoining     string   `json:"date_of_joining"`
	RatePerHour       float64  `json:"rate_per_hour,omitempty"`
	InTime            string   `json:"in_time"`
	OutTime           string   `json:"out_time"`
	OngoingProjects   []string `json:"ongoing_project"`
	CompletedProjects []string `json:"completed_project"`
	EmployeeOfMonth   int      `json:"employee_of_month"`
	Address           string   `json:"address"`
	Email             string   `json:"email"`
	PresentDays       []string `json:"present_days"`
}

// ProfileDTO is the record plus every derived field, the shape the
// original full-profile listing returns.
type ProfileDTO struct {
	EmployeeDTO

	Age            int                 `json:"age"`
	Experience     derive.Experience   `json:"experience"`
	WorkHours      derive.WorkHours    `json:"work_hours"`
	SalaryComputed float64             `json:"salary_computed"`
	Amenities      []string            `json:"amenities"`
	LeaveInfo      derive.LeaveSummary `json:"leave_info"`
}

// PersonalSectionDTO is the personal view of an employee.
type PersonalSectionDTO struct {
	ID            int               `json:"id"`
	Name          string            `json:"name"`
	DOB           string            `json:"dob"`
	Age           int               `json:"age"`
	Department    string            `json:"department"`
	DateOfJoining string            `json:"date_of_joining"`
	Experience    derive.Experience `json:"experience"`
	Address       string            `json:"address"`
	Email         string            `json:"email"`
}

// ProfessionalSectionDTO is the professional view of an employee.
type ProfessionalSectionDTO struct {
	Amenities         []string            `json:"amenities"`
	InTime            string              `json:"in_time"`
	OutTime           string              `json:"out_time"`
	WorkHours         derive.WorkHours    `json:"work_hours"`
	Salary            float64             `json:"salary"`
	LeaveInfo         derive.LeaveSummary `json:"leave_info"`
	OngoingProjects   []string            `json:"ongoing_project"`
	CompletedProjects []string            `json:"completed_project"`
	EmployeeOfMonth   int                 `json:"employee_of_month"`
}

// SectionsDTO wraps whichever sections the caller may see.
type SectionsDTO struct {
	Personal     *PersonalSectionDTO     `json:"personal,omitempty"`
	Professional *ProfessionalSectionDTO `json:"professional,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// MAPPING
// =============================================================================

func toEmployeeDTO(e *employee.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:                e.ID,
		Name:              e.Name,
		DOB:               e.DOB,
		Role:              string(e.Role),
		Department:        e.Department,
		DateOfJoining:     e.DateOfJoining,
		RatePerHour:       e.RatePerHour,
		InTime:            e.InTime,
		OutTime:           e.OutTime,
		OngoingProjects:   orEmpty(e.OngoingProjects),
		CompletedProjects: orEmpty(e.CompletedProjects),
		EmployeeOfMonth:   e.EmployeeOfMonth,
		Address:           e.Address,
		Email:             e.Email,
		PresentDays:       orEmpty(e.PresentDays),
	}
}

func toProfileDTO(p *derive.Profile) ProfileDTO {
	return ProfileDTO{
		EmployeeDTO:    toEmployeeDTO(p.Employee),
		Age:            p.Age,
		Experience:     p.Experience,
		WorkHours:      p.WorkHours,
		SalaryComputed: p.Salary,
		Amenities:      p.Amenities,
		LeaveInfo:      p.Leaves,
	}
}

func toPersonalSection(p *derive.Profile) *PersonalSectionDTO {
	e := p.Employee
	return &PersonalSectionDTO{
		ID:            e.ID,
		Name:          e.Name,
		DOB:           e.DOB,
		Age:           p.Age,
		Department:    e.Department,
		DateOfJoining: e.DateOfJoining,
		Experience:    p.Experience,
		Address:       e.Address,
		Email:         e.Email,
	}
}

func toProfessionalSection(p *derive.Profile) *ProfessionalSectionDTO {
	e := p.Employee
	return &ProfessionalSectionDTO{
		Amenities:         p.Amenities,
		InTime:            e.InTime,
		OutTime:           e.OutTime,
		WorkHours:         p.WorkHours,
		Salary:            p.Salary,
		LeaveInfo:         p.Leaves,
		OngoingProjects:   orEmpty(e.OngoingProjects),
		CompletedProjects: orEmpty(e.CompletedProjects),
		EmployeeOfMonth:   e.EmployeeOfMonth,
	}
}

// orEmpty keeps list fields as [] rather than null on the wire.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
