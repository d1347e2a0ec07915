package attendance

import "context"

// AttendanceRepository is the remote attendance collection exposed by the HRMS API.
type AttendanceRepository interface {
	List(ctx context.Context) ([]Attendance, error)
	// ListByEmployee is the scoped fetch for one employee label
	ListByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
	Mark(ctx context.Context, req MarkAttendanceRequest) (Attendance, error)
}
