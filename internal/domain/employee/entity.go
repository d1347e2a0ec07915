package employee

import "github.com/cmlabs-hris/hrms-lite/internal/pkg/datetime"

// Employee is the server's view of an employee. ID is the numeric database
// identity; EmployeeID is the human-chosen label that attendance records
// reference.
type Employee struct {
	ID         int64               `json:"id"`
	EmployeeID string              `json:"employee_id"`
	FullName   string              `json:"full_name"`
	Email      string              `json:"email"`
	Department string              `json:"department"`
	CreatedAt  *datetime.Timestamp `json:"created_at,omitempty"`
}

// Departments is the fixed choice list offered by the add-employee form.
var Departments = []string{
	"Engineering",
	"Product",
	"Design",
	"Marketing",
	"Sales",
	"Human Resources",
	"Finance",
	"Operations",
	"Customer Support",
	"Legal",
}
