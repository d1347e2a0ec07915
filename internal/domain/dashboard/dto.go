package dashboard

import (
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/page"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/datetime"
)

// Summary holds the stat cards of the dashboard.
type Summary struct {
	TotalEmployees int `json:"total_employees"`
	TodayEntries   int `json:"today_entries"`
	PresentToday   int `json:"present_today"`
	AbsentToday    int `json:"absent_today"`
}

// View is the render model of the dashboard page.
type View struct {
	State           page.State          `json:"state"`
	Error           string              `json:"error,omitempty"`
	Date            datetime.Date       `json:"date"`
	Summary         Summary             `json:"summary"`
	RecentEmployees []employee.Employee `json:"recent_employees"`
}
