package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/page"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var actionErr *page.ActionError
	hasAction := errors.As(err, &actionErr)

	switch {
	// Page state errors
	case errors.Is(err, page.ErrPageNotReady):
		Conflict(w, "Page is not ready")
	case errors.Is(err, page.ErrSubmissionPending):
		Conflict(w, "A submission is already in progress")
	case errors.Is(err, page.ErrRetryNotAllowed):
		Conflict(w, "Retry is only available after a failed load")
	case errors.Is(err, page.ErrUnknownField):
		BadRequest(w, "Unknown form field", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		if hasAction {
			NotFound(w, actionErr.Message)
			return
		}
		NotFound(w, "Employee not found")

	// Backend failures
	case hasAction:
		BadGateway(w, actionErr.Message)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
