package dashboard

import "context"

// DashboardService defines the interface for the dashboard page
type DashboardService interface {
	// Load fetches employees and attendance together; the page is ready only
	// when both succeed
	Load(ctx context.Context) error
	EnsureLoaded(ctx context.Context) error
	Invalidate()
	Retry(ctx context.Context) error
	View() View
}
