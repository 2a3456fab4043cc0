package employee

import "context"

// EmployeeService is the employee directory.
type EmployeeService interface {
	Add(ctx context.Context, req AddEmployeeRequest) (EmployeeResponse, error)
	Modify(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Remove(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
}
