package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/page"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/datetime"
	"github.com/cmlabs-hris/hrms-lite/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = servicetest.Clock{At: time.Date(2024, time.January, 2, 9, 0, 0, 0, time.Local)}

func fixtures() (*servicetest.EmployeeRepo, *servicetest.AttendanceRepo) {
	emps := &servicetest.EmployeeRepo{}
	for i := 1; i <= 7; i++ {
		emps.Employees = append(emps.Employees, employee.Employee{ID: int64(i), EmployeeID: "EMP00" + string(rune('0'+i))})
	}
	att := &servicetest.AttendanceRepo{Records: []attendance.Attendance{
		{ID: 1, EmployeeID: "EMP001", Date: datetime.MustParseDate("2024-01-01"), Status: attendance.StatusPresent},
		{ID: 2, EmployeeID: "EMP002", Date: datetime.MustParseDate("2024-01-02"), Status: attendance.StatusAbsent},
		{ID: 3, EmployeeID: "EMP003", Date: datetime.MustParseDate("2024-01-02"), Status: attendance.StatusPresent},
	}}
	return emps, att
}

func TestDashboard_StartsLoading(t *testing.T) {
	emps, att := fixtures()
	svc := NewDashboardService(emps, att, today, nil)

	view := svc.View()
	assert.Equal(t, page.StateLoading, view.State)
	assert.Empty(t, view.RecentEmployees)
}

func TestDashboard_LoadReady(t *testing.T) {
	emps, att := fixtures()
	svc := NewDashboardService(emps, att, today, nil)

	require.NoError(t, svc.Load(context.Background()))

	view := svc.View()
	assert.Equal(t, page.StateReady, view.State)
	assert.Equal(t, "2024-01-02", view.Date.String())
	assert.Equal(t, dashboard.Summary{TotalEmployees: 7, TodayEntries: 2, PresentToday: 1, AbsentToday: 1}, view.Summary)
	require.Len(t, view.RecentEmployees, dashboard.RecentLimit)
	assert.Equal(t, int64(1), view.RecentEmployees[0].ID)
}

func TestDashboard_EitherFailureDiscardsBoth(t *testing.T) {
	emps, att := fixtures()
	att.ListErr = errors.New("boom")
	svc := NewDashboardService(emps, att, today, nil)

	require.Error(t, svc.Load(context.Background()))

	view := svc.View()
	assert.Equal(t, page.StateError, view.State)
	assert.Equal(t, "Failed to load dashboard data.", view.Error)
	assert.Equal(t, dashboard.Summary{}, view.Summary)
	assert.Empty(t, view.RecentEmployees)
}

func TestDashboard_RetryOnlyFromError(t *testing.T) {
	emps, att := fixtures()
	svc := NewDashboardService(emps, att, today, nil)
	ctx := context.Background()

	require.NoError(t, svc.Load(ctx))
	assert.ErrorIs(t, svc.Retry(ctx), page.ErrRetryNotAllowed)

	emps.ListErr = errors.New("down")
	require.Error(t, svc.Load(ctx))
	assert.Equal(t, page.StateError, svc.View().State)

	emps.ListErr = nil
	require.NoError(t, svc.Retry(ctx))
	assert.Equal(t, page.StateReady, svc.View().State)
}

func TestDashboard_EnsureLoadedOnceUntilInvalidated(t *testing.T) {
	emps, att := fixtures()
	svc := NewDashboardService(emps, att, today, nil)
	ctx := context.Background()

	require.NoError(t, svc.EnsureLoaded(ctx))
	require.NoError(t, svc.EnsureLoaded(ctx))
	assert.Equal(t, 1, emps.Lists)

	svc.Invalidate()
	require.NoError(t, svc.EnsureLoaded(ctx))
	assert.Equal(t, 2, emps.Lists)
}
