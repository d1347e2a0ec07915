package restapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/apiclient"
)

type employeeRepositoryImpl struct {
	client *apiclient.Client
}

func NewEmployeeRepository(client *apiclient.Client) employee.EmployeeRepository {
	return &employeeRepositoryImpl{client: client}
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	var resp listResponse[employee.Employee]
	if err := r.client.Do(ctx, http.MethodGet, "/api/employees", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return resp.items(), nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	var resp singleResponse[employee.Employee]
	if err := r.client.Do(ctx, http.MethodPost, "/api/employees", req, &resp); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee %s: %w", req.EmployeeID, err)
	}
	return resp.Data, nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id int64) (string, error) {
	var resp messageResponse
	path := "/api/employees/" + strconv.FormatInt(id, 10)
	if err := r.client.Do(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		if apiclient.StatusCode(err) == http.StatusNotFound {
			return "", fmt.Errorf("failed to delete employee with id %d: %w: %w", id, employee.ErrEmployeeNotFound, err)
		}
		return "", fmt.Errorf("failed to delete employee with id %d: %w", id, err)
	}
	return resp.Message, nil
}
