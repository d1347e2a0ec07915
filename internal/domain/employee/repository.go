package employee

import "context"

// EmployeeRepository is the remote employee collection exposed by the HRMS API.
type EmployeeRepository interface {
	List(ctx context.Context) ([]Employee, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error)
	// Delete removes the employee with the given database id and returns the
	// server's confirmation message.
	Delete(ctx context.Context, id int64) (string, error)
}
