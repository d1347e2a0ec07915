package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/page"
	"github.com/cmlabs-hris/hrms-lite/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard returns the dashboard view, loading it on first access
	GetDashboard(w http.ResponseWriter, r *http.Request)
	// Retry reloads a dashboard whose load failed
	Retry(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	logger           *slog.Logger
}

func NewDashboardHandler(dashboardService dashboard.DashboardService, logger *slog.Logger) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService, logger: logger}
}

// GetDashboard handles GET /ui/dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	var err error
	if getBoolQueryParam(r, "reload", false) {
		err = h.dashboardService.Load(r.Context())
	} else {
		err = h.dashboardService.EnsureLoaded(r.Context())
	}
	if err != nil {
		// the failure is part of the view
		h.logger.DebugContext(r.Context(), "dashboard view served after failed load", slog.String("error", err.Error()))
	}

	response.Success(w, h.dashboardService.View())
}

// Retry handles POST /ui/dashboard/retry
func (h *dashboardHandlerImpl) Retry(w http.ResponseWriter, r *http.Request) {
	// a failed reload is reported through the view, like the first load
	if err := h.dashboardService.Retry(r.Context()); errors.Is(err, page.ErrRetryNotAllowed) {
		response.HandleError(w, err)
		return
	}

	response.Success(w, h.dashboardService.View())
}
