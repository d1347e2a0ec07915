package employee

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/notification"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/page"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
)

const (
	createFailedMessage = "Failed to add employee."
	createdMessage      = "Employee added successfully!"

	// ListPath is where a successful submission sends the user.
	ListPath = "/employees"
)

// AddOption configures the add-employee page.
type AddOption func(*AddPageServiceImpl)

// OnCreated registers a callback run after an employee is created.
func OnCreated(fn func(employee.Employee)) AddOption {
	return func(s *AddPageServiceImpl) {
		s.onCreated = fn
	}
}

type AddPageServiceImpl struct {
	repo      employee.EmployeeRepository
	notifier  notification.Notifier
	logger    *slog.Logger
	onCreated func(employee.Employee)

	mu         sync.Mutex
	form       employee.CreateEmployeeRequest
	errs       validator.FieldErrors
	submitting bool
}

func NewAddPageService(repo employee.EmployeeRepository, notifier notification.Notifier, logger *slog.Logger, opts ...AddOption) employee.AddPageService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &AddPageServiceImpl{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		errs:     validator.FieldErrors{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AddPageServiceImpl) View() employee.AddPageView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return employee.AddPageView{
		Form:        s.form,
		Errors:      s.errs.Clone(),
		Submitting:  s.submitting,
		Departments: employee.Departments,
	}
}

func (s *AddPageServiceImpl) SetField(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.form.Set(field, value) {
		return page.ErrUnknownField
	}
	s.errs.Clear(field)
	return nil
}

func (s *AddPageServiceImpl) Submit(ctx context.Context) (employee.CreateResult, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return employee.CreateResult{}, page.ErrSubmissionPending
	}
	req := s.form
	if err := req.Validate(); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			s.errs = verrs.ToMap()
		}
		s.mu.Unlock()
		return employee.CreateResult{}, err
	}
	s.errs = validator.FieldErrors{}
	s.submitting = true
	s.mu.Unlock()

	created, err := s.repo.Create(ctx, req)

	s.mu.Lock()
	s.submitting = false
	if err == nil {
		// the form is left behind on navigation; the next visit starts blank
		s.form = employee.CreateEmployeeRequest{}
	}
	s.mu.Unlock()

	if err != nil {
		msg := apiclient.MessageOr(err, createFailedMessage)
		s.logger.WarnContext(ctx, "employee create failed",
			slog.String("employee_id", req.EmployeeID),
			slog.String("error", err.Error()),
		)
		s.notifier.Error(ctx, msg)
		return employee.CreateResult{}, &page.ActionError{Message: msg, Err: err}
	}

	s.notifier.Success(ctx, createdMessage)
	if s.onCreated != nil {
		s.onCreated(created)
	}
	return employee.CreateResult{Employee: created, RedirectTo: ListPath}, nil
}
