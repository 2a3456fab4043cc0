package employee

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/allocation"
	"github.com/cmlabs-hris/bench-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/bench-backend-go/internal/domain/skill"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/validator"
)

// InitialBenchDetails is the details text of the allocation recorded when an
// employee is added.
const InitialBenchDetails = "Initial bench assignment"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

type EmployeeServiceImpl struct {
	tx             database.Transactor
	employeeRepo   employee.EmployeeRepository
	allocationRepo allocation.AllocationRepository
	skillService   skill.SkillService
	metrics        *metrics.Metrics
	clock          Clock
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	allocationRepo allocation.AllocationRepository,
	skillService skill.SkillService,
	m *metrics.Metrics,
	clock Clock,
) employee.EmployeeService {
	if clock == nil {
		clock = realClock{}
	}
	return &EmployeeServiceImpl{
		tx:             tx,
		employeeRepo:   employeeRepo,
		allocationRepo: allocationRepo,
		skillService:   skillService,
		metrics:        m,
		clock:          clock,
	}
}

// today is the current calendar day in UTC, comparable with parsed dates.
func (s *EmployeeServiceImpl) today() time.Time {
	y, m, d := s.clock.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Add implements employee.EmployeeService. The employee, its skills and its
// initial bench allocation are written in one transaction.
func (s *EmployeeServiceImpl) Add(ctx context.Context, req employee.AddEmployeeRequest) (employee.EmployeeResponse, error) {
	fields, err := req.Validate()
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if fields.BenchStartDate.Before(s.today()) {
		return employee.EmployeeResponse{}, employee.ErrBenchStartInPast
	}

	var created employee.EmployeeWithDetails
	err = s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		if err := s.checkUnique(ctx, fields, nil); err != nil {
			return err
		}

		newEmployee, err := s.employeeRepo.Create(ctx, employee.Employee{
			Name:           fields.Name,
			Email:          fields.Email,
			JobRoleID:      fields.JobRoleID,
			CurrentStatus:  allocation.StatusBench,
			BenchStartDate: fields.BenchStartDate,
			BenchEndDate:   fields.BenchEndDate,
		})
		if err != nil {
			return apperror.Infrastructure("create employee", err)
		}

		if _, err := s.skillService.AssociateWithEmployee(ctx, newEmployee.ID, fields.Skills); err != nil {
			return err
		}

		_, err = s.allocationRepo.Create(ctx, allocation.NewAllocation{
			EmployeeID: newEmployee.ID,
			Assignment: allocation.Bench(),
			StartDate:  fields.BenchStartDate,
			EndDate:    fields.BenchEndDate,
			Details:    InitialBenchDetails,
		})
		if err != nil {
			return apperror.Infrastructure("record initial bench allocation", err)
		}

		created, err = s.employeeRepo.GetByIDWithDetails(ctx, newEmployee.ID)
		if err != nil {
			return apperror.Infrastructure("load employee", err)
		}
		return nil
	})
	if err != nil {
		logFailure("add employee", err)
		return employee.EmployeeResponse{}, err
	}

	s.metrics.EmployeeCreated()
	slog.Info("Employee added", "employee_id", created.ID, "skills", len(created.Skills))
	return employee.NewEmployeeResponse(created), nil
}

// Modify implements employee.EmployeeService. Allocation history is left as is.
func (s *EmployeeServiceImpl) Modify(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	fields, err := req.Validate()
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.EmployeeWithDetails
	err = s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		existing, err := s.employeeRepo.GetByID(ctx, req.ID)
		if err != nil {
			return apperror.Infrastructure("get employee", err)
		}

		if err := s.checkUnique(ctx, fields, &existing.ID); err != nil {
			return err
		}

		existing.Name = fields.Name
		existing.Email = fields.Email
		existing.JobRoleID = fields.JobRoleID
		existing.BenchStartDate = fields.BenchStartDate
		existing.BenchEndDate = fields.BenchEndDate

		if _, err := s.employeeRepo.Update(ctx, existing); err != nil {
			return apperror.Infrastructure("update employee", err)
		}

		if _, err := s.skillService.ReplaceForEmployee(ctx, existing.ID, fields.Skills); err != nil {
			return err
		}

		updated, err = s.employeeRepo.GetByIDWithDetails(ctx, existing.ID)
		if err != nil {
			return apperror.Infrastructure("load employee", err)
		}
		return nil
	})
	if err != nil {
		logFailure("modify employee", err)
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(updated), nil
}

// Remove implements employee.EmployeeService. Skills and allocation history
// are deleted together with the employee.
func (s *EmployeeServiceImpl) Remove(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return employee.ErrInvalidID
	}

	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
			return apperror.Infrastructure("get employee", err)
		}
		if err := s.skillService.ClearForEmployee(ctx, id); err != nil {
			return err
		}
		if err := s.allocationRepo.DeleteByEmployee(ctx, id); err != nil {
			return apperror.Infrastructure("delete allocations", err)
		}
		if err := s.employeeRepo.Delete(ctx, id); err != nil {
			return apperror.Infrastructure("delete employee", err)
		}
		return nil
	})
	if err != nil {
		logFailure("remove employee", err)
		return err
	}

	slog.Info("Employee removed", "employee_id", id)
	return nil
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if !validator.IsValidUUID(id) {
		return employee.EmployeeResponse{}, employee.ErrInvalidID
	}

	e, err := s.employeeRepo.GetByIDWithDetails(ctx, id)
	if err != nil {
		err = apperror.Infrastructure("get employee", err)
		logFailure("get employee", err)
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// GetAll implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.ListWithDetails(ctx)
	if err != nil {
		err = apperror.Infrastructure("list employees", err)
		logFailure("list employees", err)
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, len(employees))
	for i, e := range employees {
		responses[i] = employee.NewEmployeeResponse(e)
	}
	return responses, nil
}

// checkUnique rejects a name or email already used by another employee.
// The unique indexes still catch a concurrent insert.
func (s *EmployeeServiceImpl) checkUnique(ctx context.Context, fields employee.Fields, excludeID *string) error {
	nameTaken, err := s.employeeRepo.ExistsByName(ctx, fields.Name, excludeID)
	if err != nil {
		return apperror.Infrastructure("check employee name", err)
	}
	if nameTaken {
		return employee.ErrNameExists
	}

	emailTaken, err := s.employeeRepo.ExistsByEmail(ctx, fields.Email, excludeID)
	if err != nil {
		return apperror.Infrastructure("check employee email", err)
	}
	if emailTaken {
		return employee.ErrEmailExists
	}
	return nil
}

func logFailure(op string, err error) {
	if apperror.IsBusiness(err) {
		slog.Debug("Employee operation rejected", "op", op, "error", err)
		return
	}
	slog.Error("Employee operation failed", "op", op, "error", err)
}
