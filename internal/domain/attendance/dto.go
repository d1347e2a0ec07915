package attendance

import (
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/page"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/datetime"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
)

const (
	FieldEmployeeID = "employee_id"
	FieldDate       = "date"
	FieldStatus     = "status"
)

// ========================================
// MARK ATTENDANCE
// ========================================

// MarkAttendanceRequest is both the mark-attendance form state and the POST
// body. Date travels as typed by the user and is checked by Validate.
type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     Status `json:"status"`
}

// NewMarkAttendanceRequest returns the form defaults: today, Present.
func NewMarkAttendanceRequest(today datetime.Date) MarkAttendanceRequest {
	return MarkAttendanceRequest{
		Date:   today.String(),
		Status: StatusPresent,
	}
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{
			Field:   FieldEmployeeID,
			Message: "Select an employee.",
		})
	}

	if r.Date == "" {
		errs = append(errs, validator.ValidationError{
			Field:   FieldDate,
			Message: "Select a date.",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   FieldDate,
			Message: "Enter a valid date.",
		})
	}

	if r.Status == "" {
		errs = append(errs, validator.ValidationError{
			Field:   FieldStatus,
			Message: "Select a status.",
		})
	} else if !r.Status.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   FieldStatus,
			Message: "Select a valid status.",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Set writes a single form field. It reports false for unknown field names.
func (r *MarkAttendanceRequest) Set(field, value string) bool {
	switch field {
	case FieldEmployeeID:
		r.EmployeeID = value
	case FieldDate:
		r.Date = value
	case FieldStatus:
		r.Status = Status(value)
	default:
		return false
	}
	return true
}

// ========================================
// PAGE VIEW
// ========================================

// RecordView is an attendance row with its display name resolved.
type RecordView struct {
	Attendance
	EmployeeName string `json:"employee_name"`
}

type PageView struct {
	State       page.State            `json:"state"`
	Error       string                `json:"error,omitempty"`
	Employees   []employee.Employee   `json:"employees"`
	Filter      string                `json:"filter"`
	Records     []RecordView          `json:"records"`
	Form        MarkAttendanceRequest `json:"form"`
	FormErrors  validator.FieldErrors `json:"form_errors"`
	Submitting  bool                  `json:"submitting"`
	Statuses    []Status              `json:"statuses"`
	CanMark     bool                  `json:"can_mark"`
	FilterLabel string                `json:"filter_label,omitempty"`
}

// Resolve pairs each record with the employee name found in employees.
func Resolve(records []Attendance, employees []employee.Employee) []RecordView {
	out := make([]RecordView, len(records))
	for i, rec := range records {
		out[i] = RecordView{
			Attendance:   rec,
			EmployeeName: employee.NameOf(employees, rec.EmployeeID),
		}
	}
	return out
}
