package dashboard

import (
	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/datetime"
)

// RecentLimit is how many employees the dashboard lists.
const RecentLimit = 5

// Summarize derives the stat cards. today is passed in so the result does not
// depend on the clock.
func Summarize(employees []employee.Employee, records []attendance.Attendance, today datetime.Date) Summary {
	s := Summary{TotalEmployees: len(employees)}
	for _, rec := range records {
		if rec.Date != today {
			continue
		}
		s.TodayEntries++
		switch rec.Status {
		case attendance.StatusPresent:
			s.PresentToday++
		case attendance.StatusAbsent:
			s.AbsentToday++
		}
	}
	return s
}
