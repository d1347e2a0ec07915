// Package servicetest holds in-memory fakes of the backend repositories and
// the notifier for page controller tests.
package servicetest

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/notification"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/datetime"
)

type EmployeeRepo struct {
	mu        sync.Mutex
	Employees []employee.Employee
	ListErr   error
	CreateErr error
	DeleteErr error

	Lists   int
	Created []employee.CreateEmployeeRequest
	Deleted []int64

	// BeforeCreate runs before Create answers; tests use it to hold a
	// request in flight.
	BeforeCreate func()
	BeforeDelete func()
}

func (r *EmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lists++
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	return append([]employee.Employee{}, r.Employees...), nil
}

func (r *EmployeeRepo) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if r.BeforeCreate != nil {
		r.BeforeCreate()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Created = append(r.Created, req)
	if r.CreateErr != nil {
		return employee.Employee{}, r.CreateErr
	}
	e := employee.Employee{
		ID:         int64(len(r.Employees) + 100),
		EmployeeID: req.EmployeeID,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
	}
	r.Employees = append(r.Employees, e)
	return e, nil
}

func (r *EmployeeRepo) Delete(ctx context.Context, id int64) (string, error) {
	if r.BeforeDelete != nil {
		r.BeforeDelete()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Deleted = append(r.Deleted, id)
	if r.DeleteErr != nil {
		return "", r.DeleteErr
	}
	return "Employee deleted successfully.", nil
}

// Fetch is one scripted answer of the attendance fake. A non-nil Gate is
// waited on before answering.
type Fetch struct {
	Records []attendance.Attendance
	Err     error
	Gate    chan struct{}
}

type AttendanceRepo struct {
	mu      sync.Mutex
	Records []attendance.Attendance
	ListErr error
	MarkErr error

	// Scripted answers consumed in call order by ListByEmployee, keyed by
	// employee label. Without a script the fake filters Records.
	Scoped map[string][]Fetch
	// Scripted answers for List; without a script List returns Records.
	All []Fetch

	Marked        []attendance.MarkAttendanceRequest
	ScopedQueries []string
	Lists         int

	// BeforeMark runs before Mark answers.
	BeforeMark func()
}

func (r *AttendanceRepo) List(ctx context.Context) ([]attendance.Attendance, error) {
	r.mu.Lock()
	r.Lists++
	if len(r.All) > 0 {
		f := r.All[0]
		r.All = r.All[1:]
		r.mu.Unlock()
		return f.answer(ctx)
	}
	defer r.mu.Unlock()
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	return append([]attendance.Attendance{}, r.Records...), nil
}

func (r *AttendanceRepo) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	r.mu.Lock()
	r.ScopedQueries = append(r.ScopedQueries, employeeID)
	if script := r.Scoped[employeeID]; len(script) > 0 {
		f := script[0]
		r.Scoped[employeeID] = script[1:]
		r.mu.Unlock()
		return f.answer(ctx)
	}
	defer r.mu.Unlock()
	out := []attendance.Attendance{}
	for _, rec := range r.Records {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ListCalls reports how many unscoped reads have started.
func (r *AttendanceRepo) ListCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Lists
}

// ScopedCalls reports how many scoped reads have started.
func (r *AttendanceRepo) ScopedCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ScopedQueries)
}

func (r *AttendanceRepo) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.Attendance, error) {
	if r.BeforeMark != nil {
		r.BeforeMark()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Marked = append(r.Marked, req)
	if r.MarkErr != nil {
		return attendance.Attendance{}, r.MarkErr
	}
	rec := attendance.Attendance{
		ID:         int64(len(r.Records) + 1),
		EmployeeID: req.EmployeeID,
		Status:     req.Status,
	}
	if date, err := datetime.ParseDate(req.Date); err == nil {
		rec.Date = date
	}
	r.Records = append(r.Records, rec)
	return rec, nil
}

func (f Fetch) answer(ctx context.Context) ([]attendance.Attendance, error) {
	if f.Gate != nil {
		select {
		case <-f.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Records, nil
}

// Notifier records every notification it is given.
type Notifier struct {
	mu       sync.Mutex
	Received []notification.Notification
}

func (n *Notifier) Success(ctx context.Context, message string) {
	n.add(notification.KindSuccess, message)
}

func (n *Notifier) Error(ctx context.Context, message string) {
	n.add(notification.KindError, message)
}

func (n *Notifier) add(kind notification.Kind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Received = append(n.Received, notification.Notification{Kind: kind, Message: message, CreatedAt: time.Now()})
}

// Messages returns the received messages of kind in order.
func (n *Notifier) Messages(kind notification.Kind) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, r := range n.Received {
		if r.Kind == kind {
			out = append(out, r.Message)
		}
	}
	return out
}

// Clock is a fixed clock.
type Clock struct {
	At time.Time
}

func (c Clock) Now() time.Time {
	return c.At
}
