package employee

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/notification"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/page"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/apiclient"
)

const (
	loadFailedMessage   = "Failed to load employees."
	deleteFailedMessage = "Failed to delete employee."
)

// ListOption configures the employee list page.
type ListOption func(*ListPageServiceImpl)

// OnDeleted registers a callback run after an employee is deleted.
func OnDeleted(fn func(employee.Employee)) ListOption {
	return func(s *ListPageServiceImpl) {
		s.onDeleted = fn
	}
}

type ListPageServiceImpl struct {
	repo      employee.EmployeeRepository
	notifier  notification.Notifier
	logger    *slog.Logger
	onDeleted func(employee.Employee)

	mu        sync.Mutex
	state     page.State
	errMsg    string
	started   bool
	stale     bool
	loads     page.Sequencer
	employees []employee.Employee
	deleting  *int64
}

func NewListPageService(repo employee.EmployeeRepository, notifier notification.Notifier, logger *slog.Logger, opts ...ListOption) employee.ListPageService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &ListPageServiceImpl{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		state:    page.StateLoading,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ListPageServiceImpl) Load(ctx context.Context) error {
	s.mu.Lock()
	seq := s.begin()
	s.mu.Unlock()
	return s.fetch(ctx, seq)
}

func (s *ListPageServiceImpl) EnsureLoaded(ctx context.Context) error {
	s.mu.Lock()
	if s.started && !s.stale {
		s.mu.Unlock()
		return nil
	}
	seq := s.begin()
	s.mu.Unlock()
	return s.fetch(ctx, seq)
}

func (s *ListPageServiceImpl) Invalidate() {
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
}

func (s *ListPageServiceImpl) Retry(ctx context.Context) error {
	s.mu.Lock()
	if s.state != page.StateError {
		s.mu.Unlock()
		return page.ErrRetryNotAllowed
	}
	seq := s.begin()
	s.mu.Unlock()
	return s.fetch(ctx, seq)
}

func (s *ListPageServiceImpl) begin() uint64 {
	s.started = true
	s.stale = false
	s.state = page.StateLoading
	s.errMsg = ""
	return s.loads.Next()
}

func (s *ListPageServiceImpl) fetch(ctx context.Context, seq uint64) error {
	list, err := s.repo.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loads.Apply(seq) {
		return nil
	}
	if err != nil {
		s.state = page.StateError
		s.errMsg = loadFailedMessage
		s.employees = nil
		s.logger.ErrorContext(ctx, "employee list load failed", slog.String("error", err.Error()))
		return fmt.Errorf("failed to load employees: %w", err)
	}

	s.state = page.StateReady
	s.employees = list
	return nil
}

func (s *ListPageServiceImpl) View(query string) employee.ListPageView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := employee.ListPageView{
		State:     s.state,
		Error:     s.errMsg,
		Query:     query,
		Employees: []employee.Employee{},
	}
	if s.deleting != nil {
		id := *s.deleting
		view.DeletingID = &id
	}
	if s.state != page.StateReady {
		return view
	}

	view.Total = len(s.employees)
	view.Employees = append(view.Employees, employee.Filter(s.employees, query)...)
	return view
}

// Delete is called once the user has confirmed. The held list is pruned by
// identity on success and left untouched on failure.
func (s *ListPageServiceImpl) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	if s.state != page.StateReady {
		s.mu.Unlock()
		return page.ErrPageNotReady
	}
	if s.deleting != nil {
		s.mu.Unlock()
		return page.ErrSubmissionPending
	}
	target, ok := employee.FindByID(s.employees, id)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("employee with id %d: %w", id, employee.ErrEmployeeNotFound)
	}
	s.deleting = &id
	s.mu.Unlock()

	_, err := s.repo.Delete(ctx, id)

	s.mu.Lock()
	s.deleting = nil
	if err == nil {
		s.employees = employee.RemoveByID(s.employees, id)
	}
	s.mu.Unlock()

	if err != nil {
		msg := apiclient.MessageOr(err, deleteFailedMessage)
		s.logger.WarnContext(ctx, "employee delete failed",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		s.notifier.Error(ctx, msg)
		return &page.ActionError{Message: msg, Err: err}
	}

	s.notifier.Success(ctx, `Employee "`+target.FullName+`" deleted.`)
	if s.onDeleted != nil {
		s.onDeleted(target)
	}
	return nil
}
