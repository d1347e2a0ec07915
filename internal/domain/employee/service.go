package employee

import "context"

// ListPageService drives the employee list page.
type ListPageService interface {
	// Load fetches the employee collection, moving the page to ready or error
	Load(ctx context.Context) error
	// EnsureLoaded loads on first access or after Invalidate
	EnsureLoaded(ctx context.Context) error
	// Invalidate marks the held collection as outdated
	Invalidate()
	// Retry reloads a page that is in the error state
	Retry(ctx context.Context) error
	// View renders the held collection filtered by query
	View(query string) ListPageView
	// Delete removes a confirmed employee on the server and prunes it locally
	Delete(ctx context.Context, id int64) error
}

// AddPageService drives the add-employee form.
type AddPageService interface {
	View() AddPageView
	// SetField edits one form field and clears only that field's error
	SetField(field, value string) error
	// Submit validates locally and creates the employee on success
	Submit(ctx context.Context) (CreateResult, error)
}
