package restapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/apiclient"
)

type attendanceRepository struct {
	client *apiclient.Client
}

func NewAttendanceRepository(client *apiclient.Client) attendance.AttendanceRepository {
	return &attendanceRepository{client: client}
}

func (r *attendanceRepository) List(ctx context.Context) ([]attendance.Attendance, error) {
	var resp listResponse[attendance.Attendance]
	if err := r.client.Do(ctx, http.MethodGet, "/api/attendance", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return resp.items(), nil
}

func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	var resp listResponse[attendance.Attendance]
	path := "/api/attendance/" + url.PathEscape(employeeID)
	if err := r.client.Do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list attendance for employee %s: %w", employeeID, err)
	}
	return resp.items(), nil
}

// Mark posts the form as-is. Unlike the reads, the backend answers with the
// bare record rather than an envelope.
func (r *attendanceRepository) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.Attendance, error) {
	var created attendance.Attendance
	if err := r.client.Do(ctx, http.MethodPost, "/api/attendance", req, &created); err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to mark attendance for employee %s: %w", req.EmployeeID, err)
	}
	return created, nil
}
