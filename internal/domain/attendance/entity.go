package attendance

import "github.com/cmlabs-hris/hrms-lite/internal/pkg/datetime"

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// Statuses lists the choices offered by the mark-attendance form.
var Statuses = []Status{StatusPresent, StatusAbsent}

func (s Status) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Attendance is one (employee, date, status) fact. EmployeeID references
// employee.Employee.EmployeeID, not the numeric identity.
type Attendance struct {
	ID         int64               `json:"id"`
	EmployeeID string              `json:"employee_id"`
	Date       datetime.Date       `json:"date"`
	Status     Status              `json:"status"`
	CreatedAt  *datetime.Timestamp `json:"created_at,omitempty"`
}
