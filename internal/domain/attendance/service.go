package attendance

import "context"

// PageService drives the attendance page: the mark form and the filtered
// record list.
type PageService interface {
	Load(ctx context.Context) error
	EnsureLoaded(ctx context.Context) error
	Invalidate()
	Retry(ctx context.Context) error
	View() PageView
	// ChangeFilter replaces the held records with a fresh fetch for
	// employeeID, or for everyone when employeeID is empty
	ChangeFilter(ctx context.Context, employeeID string) error
	SetField(field, value string) error
	Submit(ctx context.Context) (Attendance, error)
}
