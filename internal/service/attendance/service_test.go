package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/notification"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/page"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/datetime"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-lite/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clock = servicetest.Clock{At: time.Date(2024, time.March, 4, 10, 0, 0, 0, time.Local)}

func rec(id int64, employeeID, date string, status attendance.Status) attendance.Attendance {
	return attendance.Attendance{ID: id, EmployeeID: employeeID, Date: datetime.MustParseDate(date), Status: status}
}

type fixture struct {
	emps     *servicetest.EmployeeRepo
	att      *servicetest.AttendanceRepo
	notifier *servicetest.Notifier
	svc      attendance.PageService
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		emps: &servicetest.EmployeeRepo{Employees: []employee.Employee{
			{ID: 1, EmployeeID: "EMP001", FullName: "Jane Doe"},
			{ID: 3, EmployeeID: "EMP003", FullName: "Ana Putri"},
		}},
		att: &servicetest.AttendanceRepo{Records: []attendance.Attendance{
			rec(1, "EMP001", "2024-03-01", attendance.StatusPresent),
			rec(2, "EMP003", "2024-03-01", attendance.StatusAbsent),
			rec(3, "GHOST", "2024-03-02", attendance.StatusPresent),
		}},
		notifier: &servicetest.Notifier{},
	}
	f.svc = NewPageService(f.emps, f.att, f.notifier, clock, nil, opts...)
	return f
}

func (f *fixture) load(t *testing.T) {
	t.Helper()
	require.NoError(t, f.svc.Load(context.Background()))
}

func recordIDs(view attendance.PageView) []int64 {
	out := make([]int64, 0, len(view.Records))
	for _, r := range view.Records {
		out = append(out, r.ID)
	}
	return out
}

func TestPage_LoadResolvesNamesAndDefaultsForm(t *testing.T) {
	f := newFixture(t)
	f.load(t)

	view := f.svc.View()
	assert.Equal(t, page.StateReady, view.State)
	assert.True(t, view.CanMark)
	assert.Equal(t, []int64{1, 2, 3}, recordIDs(view))
	assert.Equal(t, "Jane Doe", view.Records[0].EmployeeName)
	assert.Equal(t, "GHOST", view.Records[2].EmployeeName)
	assert.Equal(t, "2024-03-04", view.Form.Date)
	assert.Equal(t, attendance.StatusPresent, view.Form.Status)
	assert.Equal(t, attendance.Statuses, view.Statuses)
}

func TestPage_LoadFailureDiscardsBoth(t *testing.T) {
	f := newFixture(t)
	f.emps.ListErr = errors.New("down")

	require.Error(t, f.svc.Load(context.Background()))

	view := f.svc.View()
	assert.Equal(t, page.StateError, view.State)
	assert.Equal(t, "Failed to load data.", view.Error)
	assert.Empty(t, view.Records)
	assert.Empty(t, view.Employees)
	assert.False(t, view.CanMark)

	_, err := f.svc.Submit(context.Background())
	assert.ErrorIs(t, err, page.ErrPageNotReady)
	assert.ErrorIs(t, f.svc.ChangeFilter(context.Background(), "EMP001"), page.ErrPageNotReady)

	f.emps.ListErr = nil
	require.NoError(t, f.svc.Retry(context.Background()))
	assert.Equal(t, page.StateReady, f.svc.View().State)
}

func TestPage_ChangeFilterReplacesCollection(t *testing.T) {
	f := newFixture(t)
	f.load(t)

	require.NoError(t, f.svc.ChangeFilter(context.Background(), "EMP003"))
	view := f.svc.View()
	assert.Equal(t, []int64{2}, recordIDs(view))
	assert.Equal(t, "EMP003", view.Filter)
	assert.Equal(t, "Ana Putri", view.FilterLabel)

	f.att.Scoped = map[string][]servicetest.Fetch{"EMP001": {{Records: []attendance.Attendance{}}}}
	require.NoError(t, f.svc.ChangeFilter(context.Background(), "EMP001"))
	assert.Empty(t, f.svc.View().Records, "an empty scoped result replaces the held set")

	require.NoError(t, f.svc.ChangeFilter(context.Background(), ""))
	assert.Equal(t, []int64{1, 2, 3}, recordIDs(f.svc.View()))
	assert.Empty(t, f.svc.View().FilterLabel)
}

func TestPage_ChangeFilterFailureKeepsRecords(t *testing.T) {
	f := newFixture(t)
	f.load(t)

	f.att.Scoped = map[string][]servicetest.Fetch{"EMP001": {{Err: errors.New("down")}}}
	err := f.svc.ChangeFilter(context.Background(), "EMP001")

	var actionErr *page.ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, []int64{1, 2, 3}, recordIDs(f.svc.View()))
	assert.Equal(t, page.StateReady, f.svc.View().State)
	assert.Equal(t, []string{"Failed to fetch attendance for this employee."}, f.notifier.Messages(notification.KindError))

	f.att.All = []servicetest.Fetch{{Err: errors.New("down")}}
	require.Error(t, f.svc.ChangeFilter(context.Background(), ""))
	assert.Equal(t, "Failed to fetch records.", f.notifier.Messages(notification.KindError)[1])
}

func TestPage_SlowerOlderFilterResponseIsDiscarded(t *testing.T) {
	f := newFixture(t)
	f.load(t)

	gate := make(chan struct{})
	f.att.Scoped = map[string][]servicetest.Fetch{
		"EMP001": {{Gate: gate, Err: errors.New("late failure")}},
		"EMP003": {{Records: []attendance.Attendance{rec(2, "EMP003", "2024-03-01", attendance.StatusAbsent)}}},
	}

	slow := make(chan error, 1)
	go func() { slow <- f.svc.ChangeFilter(context.Background(), "EMP001") }()
	require.Eventually(t, func() bool {
		return f.att.ScopedCalls() == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, f.svc.ChangeFilter(context.Background(), "EMP003"))
	close(gate)
	require.NoError(t, <-slow, "stale response is dropped, not reported")

	view := f.svc.View()
	assert.Equal(t, "EMP003", view.Filter)
	assert.Equal(t, []int64{2}, recordIDs(view))
	assert.Empty(t, f.notifier.Messages(notification.KindError))
}

func TestPage_SubmitValidatesLocally(t *testing.T) {
	f := newFixture(t)
	f.load(t)

	require.NoError(t, f.svc.SetField(attendance.FieldDate, ""))
	_, err := f.svc.Submit(context.Background())

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Empty(t, f.att.Marked)

	errs := f.svc.View().FormErrors
	assert.Equal(t, "Select an employee.", errs[attendance.FieldEmployeeID])
	assert.Equal(t, "Select a date.", errs[attendance.FieldDate])
	assert.False(t, errs.Has(attendance.FieldStatus))

	require.NoError(t, f.svc.SetField(attendance.FieldEmployeeID, "EMP001"))
	errs = f.svc.View().FormErrors
	assert.False(t, errs.Has(attendance.FieldEmployeeID))
	assert.True(t, errs.Has(attendance.FieldDate))

	assert.ErrorIs(t, f.svc.SetField("note", "x"), page.ErrUnknownField)
}

func TestPage_SubmitMarksAndRefetchesCurrentScope(t *testing.T) {
	var marked []attendance.Attendance
	f := newFixture(t, OnMarked(func(a attendance.Attendance) { marked = append(marked, a) }))
	f.load(t)
	require.NoError(t, f.svc.ChangeFilter(context.Background(), "EMP003"))

	require.NoError(t, f.svc.SetField(attendance.FieldEmployeeID, "EMP003"))
	require.NoError(t, f.svc.SetField(attendance.FieldStatus, string(attendance.StatusPresent)))
	got, err := f.svc.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "EMP003", got.EmployeeID)

	require.Len(t, f.att.Marked, 1)
	assert.Equal(t, attendance.MarkAttendanceRequest{EmployeeID: "EMP003", Date: "2024-03-04", Status: attendance.StatusPresent}, f.att.Marked[0])
	assert.Equal(t, []string{"EMP003", "EMP003"}, f.att.ScopedQueries)

	view := f.svc.View()
	assert.Len(t, view.Records, 2, "scoped refetch includes the new record")
	assert.Equal(t, "", view.Form.EmployeeID)
	assert.Equal(t, "2024-03-04", view.Form.Date)
	assert.False(t, view.Submitting)
	assert.Equal(t, []string{"Attendance marked successfully!"}, f.notifier.Messages(notification.KindSuccess))
	assert.Len(t, marked, 1)
}

func TestPage_SubmitFailureLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	f.load(t)
	f.att.MarkErr = &apiclient.Error{StatusCode: 409, Detail: apiclient.Detail{
		Kind:    apiclient.DetailObject,
		Message: "Attendance for EMP001 on 2024-03-04 already marked.",
	}}

	require.NoError(t, f.svc.SetField(attendance.FieldEmployeeID, "EMP001"))
	_, err := f.svc.Submit(context.Background())

	var actionErr *page.ActionError
	require.ErrorAs(t, err, &actionErr)
	view := f.svc.View()
	assert.Equal(t, page.StateReady, view.State)
	assert.Equal(t, "EMP001", view.Form.EmployeeID, "form is kept for correction")
	assert.Equal(t, []int64{1, 2, 3}, recordIDs(view))
	assert.Equal(t, []string{"Attendance for EMP001 on 2024-03-04 already marked."}, f.notifier.Messages(notification.KindError))

	f.att.MarkErr = errors.New("EOF")
	_, err = f.svc.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to mark attendance.", f.notifier.Messages(notification.KindError)[1])
}

func TestPage_ReloadDuringMarkEndsReady(t *testing.T) {
	f := newFixture(t)
	f.load(t)

	markGate := make(chan struct{})
	loadGate := make(chan struct{})
	reloaded := []attendance.Attendance{
		rec(1, "EMP001", "2024-03-01", attendance.StatusPresent),
		rec(4, "EMP001", "2024-03-04", attendance.StatusPresent),
	}
	f.att.BeforeMark = func() { <-markGate }
	f.att.All = []servicetest.Fetch{{Records: reloaded, Gate: loadGate}}

	require.NoError(t, f.svc.SetField(attendance.FieldEmployeeID, "EMP001"))
	submitted := make(chan error, 1)
	go func() {
		_, err := f.svc.Submit(context.Background())
		submitted <- err
	}()
	require.Eventually(t, func() bool {
		return f.svc.View().Submitting
	}, time.Second, 5*time.Millisecond)

	loaded := make(chan error, 1)
	go func() { loaded <- f.svc.Load(context.Background()) }()
	require.Eventually(t, func() bool {
		return f.att.ListCalls() == 2
	}, time.Second, 5*time.Millisecond)

	close(markGate)
	require.NoError(t, <-submitted)
	assert.Equal(t, page.StateLoading, f.svc.View().State)
	assert.Equal(t, 2, f.att.ListCalls(), "no refetch while the page reloads")

	close(loadGate)
	require.NoError(t, <-loaded)

	view := f.svc.View()
	assert.Equal(t, page.StateReady, view.State)
	assert.Equal(t, []int64{1, 4}, recordIDs(view))
	assert.NoError(t, f.svc.EnsureLoaded(context.Background()))
	assert.ErrorIs(t, f.svc.Retry(context.Background()), page.ErrRetryNotAllowed)
	assert.Equal(t, []string{"Attendance marked successfully!"}, f.notifier.Messages(notification.KindSuccess))
}

func TestPage_ReloadDiscardsInFlightRefetch(t *testing.T) {
	f := newFixture(t)
	f.load(t)
	require.NoError(t, f.svc.ChangeFilter(context.Background(), "EMP003"))

	gate := make(chan struct{})
	f.att.Scoped = map[string][]servicetest.Fetch{
		"EMP003": {{Gate: gate, Err: errors.New("late failure")}},
	}

	require.NoError(t, f.svc.SetField(attendance.FieldEmployeeID, "EMP003"))
	submitted := make(chan error, 1)
	go func() {
		_, err := f.svc.Submit(context.Background())
		submitted <- err
	}()
	require.Eventually(t, func() bool {
		return f.att.ScopedCalls() == 2
	}, time.Second, 5*time.Millisecond)

	f.load(t)
	close(gate)
	require.NoError(t, <-submitted)

	view := f.svc.View()
	assert.Equal(t, page.StateReady, view.State)
	assert.Equal(t, "", view.Filter)
	assert.Equal(t, []int64{1, 2, 3, 4}, recordIDs(view))
	assert.Empty(t, f.notifier.Messages(notification.KindError), "superseded failure is not reported")
}

func TestPage_NoEmployeesCannotMark(t *testing.T) {
	f := newFixture(t)
	f.emps.Employees = nil
	f.load(t)

	view := f.svc.View()
	assert.Equal(t, page.StateReady, view.State)
	assert.False(t, view.CanMark)
}
