package employee

import (
	"github.com/cmlabs-hris/hrms-lite/internal/domain/page"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
)

const (
	FieldEmployeeID = "employee_id"
	FieldFullName   = "full_name"
	FieldEmail      = "email"
	FieldDepartment = "department"
)

// CreateEmployeeRequest is both the add-employee form state and the POST body.
type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   FieldEmployeeID,
			Message: "Employee ID is required.",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   FieldFullName,
			Message: "Full name is required.",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   FieldEmail,
			Message: "Email is required.",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   FieldEmail,
			Message: "Enter a valid email address.",
		})
	}

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   FieldDepartment,
			Message: "Department is required.",
		})
	} else if !validator.IsInSlice(r.Department, Departments) {
		errs = append(errs, validator.ValidationError{
			Field:   FieldDepartment,
			Message: "Select a valid department.",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Set writes a single form field. It reports false for unknown field names.
func (r *CreateEmployeeRequest) Set(field, value string) bool {
	switch field {
	case FieldEmployeeID:
		r.EmployeeID = value
	case FieldFullName:
		r.FullName = value
	case FieldEmail:
		r.Email = value
	case FieldDepartment:
		r.Department = value
	default:
		return false
	}
	return true
}

// ListPageView is the render model of the employee list page.
type ListPageView struct {
	State      page.State `json:"state"`
	Error      string     `json:"error,omitempty"`
	Query      string     `json:"query"`
	Total      int        `json:"total"`
	Employees  []Employee `json:"employees"`
	DeletingID *int64     `json:"deleting_id,omitempty"`
}

// AddPageView is the render model of the add-employee page.
type AddPageView struct {
	Form        CreateEmployeeRequest `json:"form"`
	Errors      validator.FieldErrors `json:"errors"`
	Submitting  bool                  `json:"submitting"`
	Departments []string              `json:"departments"`
}

// CreateResult tells the caller where to go after a successful submission.
type CreateResult struct {
	Employee   Employee `json:"employee"`
	RedirectTo string   `json:"redirect_to"`
}
