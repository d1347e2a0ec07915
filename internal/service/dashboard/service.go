package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/page"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/datetime"
	"golang.org/x/sync/errgroup"
)

const loadFailedMessage = "Failed to load dashboard data."

type DashboardServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	clock          datetime.Clock
	logger         *slog.Logger

	mu        sync.Mutex
	state     page.State
	errMsg    string
	started   bool
	stale     bool
	loads     page.Sequencer
	today     datetime.Date
	employees []employee.Employee
	records   []attendance.Attendance
}

func NewDashboardService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	clock datetime.Clock,
	logger *slog.Logger,
) dashboard.DashboardService {
	if clock == nil {
		clock = datetime.SystemClock
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		clock:          clock,
		logger:         logger,
		state:          page.StateLoading,
	}
}

// Load implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Load(ctx context.Context) error {
	s.mu.Lock()
	seq := s.begin()
	s.mu.Unlock()
	return s.fetch(ctx, seq)
}

// EnsureLoaded implements dashboard.DashboardService.
func (s *DashboardServiceImpl) EnsureLoaded(ctx context.Context) error {
	s.mu.Lock()
	if s.started && !s.stale {
		s.mu.Unlock()
		return nil
	}
	seq := s.begin()
	s.mu.Unlock()
	return s.fetch(ctx, seq)
}

// Invalidate implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Invalidate() {
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
}

// Retry implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Retry(ctx context.Context) error {
	s.mu.Lock()
	if s.state != page.StateError {
		s.mu.Unlock()
		return page.ErrRetryNotAllowed
	}
	seq := s.begin()
	s.mu.Unlock()
	return s.fetch(ctx, seq)
}

// begin moves the page to loading. Callers hold s.mu.
func (s *DashboardServiceImpl) begin() uint64 {
	s.started = true
	s.stale = false
	s.state = page.StateLoading
	s.errMsg = ""
	return s.loads.Next()
}

func (s *DashboardServiceImpl) fetch(ctx context.Context, seq uint64) error {
	var (
		employees []employee.Employee
		records   []attendance.Attendance
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := s.employeeRepo.List(gCtx)
		if err != nil {
			return err
		}
		employees = list
		return nil
	})

	g.Go(func() error {
		list, err := s.attendanceRepo.List(gCtx)
		if err != nil {
			return err
		}
		records = list
		return nil
	})

	err := g.Wait()
	today := datetime.Today(s.clock)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loads.Apply(seq) {
		return nil
	}
	if err != nil {
		s.state = page.StateError
		s.errMsg = loadFailedMessage
		s.employees = nil
		s.records = nil
		s.logger.ErrorContext(ctx, "dashboard load failed", slog.String("error", err.Error()))
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	s.state = page.StateReady
	s.today = today
	s.employees = employees
	s.records = records
	return nil
}

// View implements dashboard.DashboardService.
func (s *DashboardServiceImpl) View() dashboard.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := dashboard.View{
		State:           s.state,
		Error:           s.errMsg,
		RecentEmployees: []employee.Employee{},
	}
	if s.state != page.StateReady {
		return view
	}

	view.Date = s.today
	view.Summary = dashboard.Summarize(s.employees, s.records, s.today)
	view.RecentEmployees = employee.Recent(s.employees, dashboard.RecentLimit)
	return view
}
