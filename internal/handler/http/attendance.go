package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/page"
	"github.com/cmlabs-hris/hrms-lite/internal/handler/http/response"
)

type AttendanceHandler interface {
	GetPage(w http.ResponseWriter, r *http.Request)
	Retry(w http.ResponseWriter, r *http.Request)
	// ChangeFilter scopes the record list to one employee, "" for everyone
	ChangeFilter(w http.ResponseWriter, r *http.Request)
	UpdateField(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.PageService
	logger            *slog.Logger
}

func NewAttendanceHandler(attendanceService attendance.PageService, logger *slog.Logger) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService, logger: logger}
}

// MarkResult is the body of a successful mark: the new record and the
// refreshed page.
type MarkResult struct {
	Record attendance.Attendance `json:"record"`
	Page   attendance.PageView   `json:"page"`
}

// GetPage handles GET /ui/attendance
func (h *attendanceHandlerImpl) GetPage(w http.ResponseWriter, r *http.Request) {
	var err error
	if getBoolQueryParam(r, "reload", false) {
		err = h.attendanceService.Load(r.Context())
	} else {
		err = h.attendanceService.EnsureLoaded(r.Context())
	}
	if err != nil {
		h.logger.DebugContext(r.Context(), "attendance page served after failed load", slog.String("error", err.Error()))
	}

	response.Success(w, h.attendanceService.View())
}

// Retry handles POST /ui/attendance/retry
func (h *attendanceHandlerImpl) Retry(w http.ResponseWriter, r *http.Request) {
	if err := h.attendanceService.Retry(r.Context()); errors.Is(err, page.ErrRetryNotAllowed) {
		response.HandleError(w, err)
		return
	}

	response.Success(w, h.attendanceService.View())
}

// ChangeFilter handles PUT /ui/attendance/filter
func (h *attendanceHandlerImpl) ChangeFilter(w http.ResponseWriter, r *http.Request) {
	var req FilterUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.attendanceService.ChangeFilter(r.Context(), req.EmployeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, h.attendanceService.View())
}

// UpdateField handles PATCH /ui/attendance/form
func (h *attendanceHandlerImpl) UpdateField(w http.ResponseWriter, r *http.Request) {
	var req FieldUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.attendanceService.SetField(req.Field, req.Value); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, h.attendanceService.View())
}

// Mark handles POST /ui/attendance
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	record, err := h.attendanceService.Submit(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance marked successfully!", MarkResult{
		Record: record,
		Page:   h.attendanceService.View(),
	})
}
