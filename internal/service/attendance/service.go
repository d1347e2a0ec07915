package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/notification"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/page"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/datetime"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

const (
	loadFailedMessage        = "Failed to load data."
	fetchAllFailedMessage    = "Failed to fetch records."
	fetchScopedFailedMessage = "Failed to fetch attendance for this employee."
	markFailedMessage        = "Failed to mark attendance."
	markedMessage            = "Attendance marked successfully!"
)

// Option configures the attendance page.
type Option func(*PageServiceImpl)

// OnMarked registers a callback run after attendance is marked.
func OnMarked(fn func(attendance.Attendance)) Option {
	return func(s *PageServiceImpl) {
		s.onMarked = fn
	}
}

type PageServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	notifier       notification.Notifier
	clock          datetime.Clock
	logger         *slog.Logger
	onMarked       func(attendance.Attendance)

	mu      sync.Mutex
	state   page.State
	errMsg  string
	started bool
	stale   bool
	loads   page.Sequencer
	// records tags filter and post-mark fetches; a page load supersedes
	// every one of them issued before it
	records    page.Sequencer
	employees  []employee.Employee
	held       []attendance.Attendance
	filter     string
	form       attendance.MarkAttendanceRequest
	formErrs   validator.FieldErrors
	submitting bool
}

func NewPageService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	notifier notification.Notifier,
	clock datetime.Clock,
	logger *slog.Logger,
	opts ...Option,
) attendance.PageService {
	if clock == nil {
		clock = datetime.SystemClock
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &PageServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		notifier:       notifier,
		clock:          clock,
		logger:         logger,
		state:          page.StateLoading,
		form:           attendance.NewMarkAttendanceRequest(datetime.Today(clock)),
		formErrs:       validator.FieldErrors{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PageServiceImpl) Load(ctx context.Context) error {
	s.mu.Lock()
	seq := s.begin()
	s.mu.Unlock()
	return s.fetchAll(ctx, seq)
}

func (s *PageServiceImpl) EnsureLoaded(ctx context.Context) error {
	s.mu.Lock()
	if s.started && !s.stale {
		s.mu.Unlock()
		return nil
	}
	seq := s.begin()
	s.mu.Unlock()
	return s.fetchAll(ctx, seq)
}

func (s *PageServiceImpl) Invalidate() {
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
}

func (s *PageServiceImpl) Retry(ctx context.Context) error {
	s.mu.Lock()
	if s.state != page.StateError {
		s.mu.Unlock()
		return page.ErrRetryNotAllowed
	}
	seq := s.begin()
	s.mu.Unlock()
	return s.fetchAll(ctx, seq)
}

// begin resets the page as a fresh visit would. Callers hold s.mu.
func (s *PageServiceImpl) begin() uint64 {
	s.started = true
	s.stale = false
	s.state = page.StateLoading
	s.errMsg = ""
	s.filter = ""
	s.form = attendance.NewMarkAttendanceRequest(datetime.Today(s.clock))
	s.formErrs = validator.FieldErrors{}
	s.supersedeScopeFetches()
	return s.loads.Next()
}

// supersedeScopeFetches marks every record fetch issued so far as stale.
// Callers hold s.mu.
func (s *PageServiceImpl) supersedeScopeFetches() {
	s.records.Apply(s.records.Next())
}

func (s *PageServiceImpl) fetchAll(ctx context.Context, seq uint64) error {
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

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loads.Apply(seq) {
		return nil
	}
	if err != nil {
		s.state = page.StateError
		s.errMsg = loadFailedMessage
		s.employees = nil
		s.held = nil
		s.logger.ErrorContext(ctx, "attendance page load failed", slog.String("error", err.Error()))
		return fmt.Errorf("failed to load attendance page: %w", err)
	}

	s.state = page.StateReady
	s.employees = employees
	s.held = records
	s.filter = ""
	s.supersedeScopeFetches()
	return nil
}

// fetchScope reads the records for employeeID, or all records when it is
// empty, and applies them unless a newer fetch or a page load already
// landed. Stale failures are dropped without a notification.
func (s *PageServiceImpl) fetchScope(ctx context.Context, seq uint64, employeeID string) error {
	s.mu.Lock()
	if s.records.Stale(seq) || s.state != page.StateReady {
		s.mu.Unlock()
		s.logger.DebugContext(ctx, "skipped superseded attendance fetch", slog.Uint64("seq", seq))
		return nil
	}
	s.mu.Unlock()

	var (
		records []attendance.Attendance
		err     error
		failMsg string
	)
	if employeeID == "" {
		records, err = s.attendanceRepo.List(ctx)
		failMsg = fetchAllFailedMessage
	} else {
		records, err = s.attendanceRepo.ListByEmployee(ctx, employeeID)
		failMsg = fetchScopedFailedMessage
	}

	s.mu.Lock()
	if s.state != page.StateReady || !s.records.Apply(seq) {
		s.mu.Unlock()
		s.logger.DebugContext(ctx, "discarded stale attendance response", slog.Uint64("seq", seq))
		return nil
	}
	if err == nil {
		s.held = records
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.WarnContext(ctx, "attendance fetch failed",
			slog.String("employee_id", employeeID),
			slog.String("error", err.Error()),
		)
		s.notifier.Error(ctx, failMsg)
		return &page.ActionError{Message: failMsg, Err: err}
	}
	return nil
}

func (s *PageServiceImpl) ChangeFilter(ctx context.Context, employeeID string) error {
	s.mu.Lock()
	if s.state != page.StateReady {
		s.mu.Unlock()
		return page.ErrPageNotReady
	}
	s.filter = employeeID
	seq := s.records.Next()
	s.mu.Unlock()

	return s.fetchScope(ctx, seq, employeeID)
}

func (s *PageServiceImpl) SetField(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.form.Set(field, value) {
		return page.ErrUnknownField
	}
	s.formErrs.Clear(field)
	return nil
}

// Submit marks attendance and then refetches the current filter scope. A
// failed refetch is reported on its own; the mark itself still succeeded.
// When a page load started meanwhile the refetch is skipped.
func (s *PageServiceImpl) Submit(ctx context.Context) (attendance.Attendance, error) {
	s.mu.Lock()
	if s.state != page.StateReady {
		s.mu.Unlock()
		return attendance.Attendance{}, page.ErrPageNotReady
	}
	if s.submitting {
		s.mu.Unlock()
		return attendance.Attendance{}, page.ErrSubmissionPending
	}
	req := s.form
	if err := req.Validate(); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			s.formErrs = verrs.ToMap()
		}
		s.mu.Unlock()
		return attendance.Attendance{}, err
	}
	s.formErrs = validator.FieldErrors{}
	s.submitting = true
	s.mu.Unlock()

	marked, err := s.attendanceRepo.Mark(ctx, req)
	if err != nil {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()

		msg := apiclient.MessageOr(err, markFailedMessage)
		s.logger.WarnContext(ctx, "mark attendance failed",
			slog.String("employee_id", req.EmployeeID),
			slog.String("date", req.Date),
			slog.String("error", err.Error()),
		)
		s.notifier.Error(ctx, msg)
		return attendance.Attendance{}, &page.ActionError{Message: msg, Err: err}
	}

	s.notifier.Success(ctx, markedMessage)
	if s.onMarked != nil {
		s.onMarked(marked)
	}

	s.mu.Lock()
	scope := s.filter
	seq := s.records.Next()
	s.mu.Unlock()

	// the refetch error is already surfaced as a notification
	_ = s.fetchScope(ctx, seq, scope)

	s.mu.Lock()
	s.submitting = false
	s.form.EmployeeID = ""
	s.mu.Unlock()

	return marked, nil
}

func (s *PageServiceImpl) View() attendance.PageView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := attendance.PageView{
		State:      s.state,
		Error:      s.errMsg,
		Employees:  []employee.Employee{},
		Filter:     s.filter,
		Records:    []attendance.RecordView{},
		Form:       s.form,
		FormErrors: s.formErrs.Clone(),
		Submitting: s.submitting,
		Statuses:   attendance.Statuses,
	}
	if s.state != page.StateReady {
		return view
	}

	view.Employees = append(view.Employees, s.employees...)
	view.Records = attendance.Resolve(s.held, s.employees)
	view.CanMark = len(s.employees) > 0
	if s.filter != "" {
		view.FilterLabel = employee.NameOf(s.employees, s.filter)
	}
	return view
}
