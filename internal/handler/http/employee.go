package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/page"
	"github.com/cmlabs-hris/hrms-lite/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	// List page
	List(w http.ResponseWriter, r *http.Request)
	Retry(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	// Add-employee form
	GetForm(w http.ResponseWriter, r *http.Request)
	UpdateField(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	listService employee.ListPageService
	addService  employee.AddPageService
	logger      *slog.Logger
}

func NewEmployeeHandler(listService employee.ListPageService, addService employee.AddPageService, logger *slog.Logger) EmployeeHandler {
	return &employeeHandlerImpl{
		listService: listService,
		addService:  addService,
		logger:      logger,
	}
}

// List handles GET /ui/employees?q=
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var err error
	if getBoolQueryParam(r, "reload", false) {
		err = h.listService.Load(r.Context())
	} else {
		err = h.listService.EnsureLoaded(r.Context())
	}
	if err != nil {
		h.logger.DebugContext(r.Context(), "employee list served after failed load", slog.String("error", err.Error()))
	}

	response.Success(w, h.listService.View(r.URL.Query().Get("q")))
}

// Retry handles POST /ui/employees/retry
func (h *employeeHandlerImpl) Retry(w http.ResponseWriter, r *http.Request) {
	if err := h.listService.Retry(r.Context()); errors.Is(err, page.ErrRetryNotAllowed) {
		response.HandleError(w, err)
		return
	}

	response.Success(w, h.listService.View(r.URL.Query().Get("q")))
}

// Delete handles DELETE /ui/employees/{id}
func (h *employeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid employee id", nil)
		return
	}

	if err := h.listService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted", h.listService.View(r.URL.Query().Get("q")))
}

// GetForm handles GET /ui/employees/new
func (h *employeeHandlerImpl) GetForm(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.addService.View())
}

// UpdateField handles PATCH /ui/employees/new
func (h *employeeHandlerImpl) UpdateField(w http.ResponseWriter, r *http.Request) {
	var req FieldUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.addService.SetField(req.Field, req.Value); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, h.addService.View())
}

// Submit handles POST /ui/employees/new
func (h *employeeHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	result, err := h.addService.Submit(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee added successfully!", result)
}
