package employee

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/notification"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/page"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hrms-lite/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *servicetest.EmployeeRepo {
	return &servicetest.EmployeeRepo{Employees: []employee.Employee{
		{ID: 5, EmployeeID: "EMP005", FullName: "Jane Doe", Email: "jane@x.com", Department: "Engineering"},
		{ID: 7, EmployeeID: "EMP007", FullName: "Bob Lee", Email: "bob@x.com", Department: "Sales"},
		{ID: 9, EmployeeID: "EMP009", FullName: "Carla Diaz", Email: "carla@x.com", Department: "Legal"},
	}}
}

func ids(list []employee.Employee) []int64 {
	out := make([]int64, 0, len(list))
	for _, e := range list {
		out = append(out, e.ID)
	}
	return out
}

func loadedList(t *testing.T, repo *servicetest.EmployeeRepo, notifier *servicetest.Notifier, opts ...ListOption) employee.ListPageService {
	t.Helper()
	svc := NewListPageService(repo, notifier, nil, opts...)
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

func TestListPage_LoadAndFilter(t *testing.T) {
	svc := loadedList(t, seeded(), &servicetest.Notifier{})

	view := svc.View("")
	assert.Equal(t, page.StateReady, view.State)
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, []int64{5, 7, 9}, ids(view.Employees))

	view = svc.View("SALES")
	assert.Equal(t, []int64{7}, ids(view.Employees))
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, "SALES", view.Query)
}

func TestListPage_LoadFailure(t *testing.T) {
	repo := seeded()
	repo.ListErr = errors.New("down")
	svc := NewListPageService(repo, &servicetest.Notifier{}, nil)

	require.Error(t, svc.Load(context.Background()))
	view := svc.View("")
	assert.Equal(t, page.StateError, view.State)
	assert.Equal(t, "Failed to load employees.", view.Error)
	assert.Empty(t, view.Employees)

	repo.ListErr = nil
	require.NoError(t, svc.Retry(context.Background()))
	assert.Equal(t, page.StateReady, svc.View("").State)
}

func TestListPage_DeletePrunesWithoutRefetch(t *testing.T) {
	repo := seeded()
	notifier := &servicetest.Notifier{}
	var deleted []string
	svc := loadedList(t, repo, notifier, OnDeleted(func(e employee.Employee) { deleted = append(deleted, e.EmployeeID) }))

	require.NoError(t, svc.Delete(context.Background(), 7))

	assert.Equal(t, []int64{5, 9}, ids(svc.View("").Employees))
	assert.Equal(t, 1, repo.Lists, "delete must not refetch")
	assert.Equal(t, []int64{7}, repo.Deleted)
	assert.Equal(t, []string{`Employee "Bob Lee" deleted.`}, notifier.Messages(notification.KindSuccess))
	assert.Equal(t, []string{"EMP007"}, deleted)
}

func TestListPage_DeleteFailureLeavesListUnchanged(t *testing.T) {
	repo := seeded()
	notifier := &servicetest.Notifier{}
	svc := loadedList(t, repo, notifier)

	repo.DeleteErr = errors.New("connection reset")
	err := svc.Delete(context.Background(), 7)

	var actionErr *page.ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, "Failed to delete employee.", actionErr.Message)
	assert.Equal(t, []int64{5, 7, 9}, ids(svc.View("").Employees))
	assert.Equal(t, page.StateReady, svc.View("").State)
	assert.Equal(t, []string{"Failed to delete employee."}, notifier.Messages(notification.KindError))
}

func TestListPage_DeleteFailureUsesBackendDetail(t *testing.T) {
	repo := seeded()
	notifier := &servicetest.Notifier{}
	svc := loadedList(t, repo, notifier)

	repo.DeleteErr = &apiclient.Error{StatusCode: 500, Detail: apiclient.Detail{Kind: apiclient.DetailObject, Message: "Database is locked."}}
	require.Error(t, svc.Delete(context.Background(), 5))
	assert.Equal(t, []string{"Database is locked."}, notifier.Messages(notification.KindError))
}

func TestListPage_DeleteGuards(t *testing.T) {
	repo := seeded()
	svc := NewListPageService(repo, &servicetest.Notifier{}, nil)
	assert.ErrorIs(t, svc.Delete(context.Background(), 5), page.ErrPageNotReady)

	require.NoError(t, svc.Load(context.Background()))
	assert.ErrorIs(t, svc.Delete(context.Background(), 42), employee.ErrEmployeeNotFound)
	assert.Empty(t, repo.Deleted)
}

func TestListPage_SecondDeleteWhilePendingRejected(t *testing.T) {
	repo := seeded()
	entered := make(chan struct{})
	release := make(chan struct{})
	repo.BeforeDelete = func() {
		close(entered)
		<-release
	}
	svc := loadedList(t, repo, &servicetest.Notifier{})

	done := make(chan error, 1)
	go func() { done <- svc.Delete(context.Background(), 5) }()
	<-entered

	view := svc.View("")
	require.NotNil(t, view.DeletingID)
	assert.Equal(t, int64(5), *view.DeletingID)
	assert.ErrorIs(t, svc.Delete(context.Background(), 9), page.ErrSubmissionPending)

	close(release)
	require.NoError(t, <-done)
	assert.Nil(t, svc.View("").DeletingID)
}
