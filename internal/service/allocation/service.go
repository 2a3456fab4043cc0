package allocation

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/allocation"
	"github.com/cmlabs-hris/bench-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/validator"
)

type AllocationServiceImpl struct {
	tx             database.Transactor
	allocationRepo allocation.AllocationRepository
	employeeRepo   employee.EmployeeRepository
	metrics        *metrics.Metrics
}

func NewAllocationService(
	tx database.Transactor,
	allocationRepo allocation.AllocationRepository,
	employeeRepo employee.EmployeeRepository,
	m *metrics.Metrics,
) allocation.AllocationService {
	return &AllocationServiceImpl{
		tx:             tx,
		allocationRepo: allocationRepo,
		employeeRepo:   employeeRepo,
		metrics:        m,
	}
}

// RecordAllocation implements allocation.AllocationService. An open
// allocation that started on or before the new one is closed at the new
// start date. The employee's current status is not changed.
func (s *AllocationServiceImpl) RecordAllocation(ctx context.Context, req allocation.RecordAllocationRequest) (allocation.AllocationResponse, error) {
	newAllocation, err := req.Validate()
	if err != nil {
		return allocation.AllocationResponse{}, err
	}

	var created allocation.Allocation
	err = s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		if _, err := s.allocationRepo.CloseOpen(ctx, newAllocation.EmployeeID, newAllocation.StartDate); err != nil {
			return apperror.Infrastructure("close open allocation", err)
		}

		var err error
		created, err = s.allocationRepo.Create(ctx, newAllocation)
		if err != nil {
			return apperror.Infrastructure("record allocation", err)
		}
		return nil
	})
	if err != nil {
		logFailure("record allocation", err)
		return allocation.AllocationResponse{}, err
	}

	s.metrics.AllocationRecorded(created.Assignment.Status().String())
	return allocation.NewAllocationResponse(allocation.AllocationWithDetails{Allocation: created}), nil
}

// ApplyToEmployee implements allocation.AllocationService.
func (s *AllocationServiceImpl) ApplyToEmployee(ctx context.Context, req allocation.ApplyStatusRequest) (allocation.EmployeeStatusResponse, error) {
	change, err := req.Validate()
	if err != nil {
		return allocation.EmployeeStatusResponse{}, err
	}

	var saved employee.Employee
	err = s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.apply(ctx, change)
		return err
	})
	if err != nil {
		logFailure("apply status", err)
		return allocation.EmployeeStatusResponse{}, err
	}

	s.metrics.StatusApplied(saved.CurrentStatus.String())
	return newStatusResponse(saved), nil
}

func (s *AllocationServiceImpl) apply(ctx context.Context, change allocation.StatusChange) (employee.Employee, error) {
	current, err := s.employeeRepo.GetByID(ctx, change.EmployeeID)
	if err != nil {
		return employee.Employee{}, apperror.Infrastructure("get employee", err)
	}

	next := current.WithStatus(change.Status, change.StartDate, change.EndDate)
	saved, err := s.employeeRepo.UpdateStatus(ctx, next.ID, next.CurrentStatus, next.BenchStartDate, next.BenchEndDate)
	if err != nil {
		return employee.Employee{}, apperror.Infrastructure("update employee status", err)
	}
	return saved, nil
}

// CurrentAllocationFor implements allocation.AllocationService. The latest
// bench allocation is picked by insertion order.
func (s *AllocationServiceImpl) CurrentAllocationFor(ctx context.Context, employeeID string) (allocation.AllocationResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return allocation.AllocationResponse{}, employee.ErrInvalidID
	}

	var latest allocation.AllocationWithDetails
	err := s.tx.WithinReadOnly(ctx, func(ctx context.Context) error {
		var err error
		latest, err = s.allocationRepo.LatestBenchForEmployee(ctx, employeeID)
		if errors.Is(err, allocation.ErrNoBenchAllocation) {
			// Unknown employees have no bench allocation either.
			if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
				return apperror.Infrastructure("get employee", err)
			}
		}
		if err != nil {
			return apperror.Infrastructure("get current allocation", err)
		}
		return nil
	})
	if err != nil {
		logFailure("get current allocation", err)
		return allocation.AllocationResponse{}, err
	}
	return allocation.NewAllocationResponse(latest), nil
}

// Transition implements allocation.AllocationService. The open allocation is
// closed at the new start date, the new allocation is recorded and the
// employee's status follows it, all in one transaction.
func (s *AllocationServiceImpl) Transition(ctx context.Context, req allocation.TransitionRequest) (allocation.TransitionResponse, error) {
	newAllocation, err := req.Validate()
	if err != nil {
		return allocation.TransitionResponse{}, err
	}

	var (
		created allocation.Allocation
		saved   employee.Employee
	)
	err = s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		latest, err := s.allocationRepo.LatestForEmployee(ctx, newAllocation.EmployeeID)
		switch {
		case errors.Is(err, allocation.ErrAllocationNotFound):
		case err != nil:
			return apperror.Infrastructure("get latest allocation", err)
		case newAllocation.StartDate.Before(latest.StartDate):
			return allocation.ErrAllocationOutOfOrder
		}

		if _, err := s.allocationRepo.CloseOpen(ctx, newAllocation.EmployeeID, newAllocation.StartDate); err != nil {
			return apperror.Infrastructure("close open allocation", err)
		}

		created, err = s.allocationRepo.Create(ctx, newAllocation)
		if err != nil {
			return apperror.Infrastructure("record allocation", err)
		}

		saved, err = s.apply(ctx, allocation.StatusChange{
			EmployeeID: newAllocation.EmployeeID,
			Status:     newAllocation.Assignment.Status(),
			StartDate:  newAllocation.StartDate,
			EndDate:    newAllocation.EndDate,
		})
		return err
	})
	if err != nil {
		logFailure("transition", err)
		return allocation.TransitionResponse{}, err
	}

	status := created.Assignment.Status().String()
	s.metrics.AllocationRecorded(status)
	s.metrics.StatusApplied(status)
	slog.Info("Employee transitioned", "employee_id", saved.ID, "status", status, "allocation_id", created.ID)

	return allocation.TransitionResponse{
		Allocation: allocation.NewAllocationResponse(allocation.AllocationWithDetails{Allocation: created}),
		Employee:   newStatusResponse(saved),
	}, nil
}

// History implements allocation.AllocationService.
func (s *AllocationServiceImpl) History(ctx context.Context, employeeID string) ([]allocation.AllocationResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return nil, employee.ErrInvalidID
	}

	var history []allocation.AllocationWithDetails
	err := s.tx.WithinReadOnly(ctx, func(ctx context.Context) error {
		var err error
		history, err = s.allocationRepo.ListByEmployee(ctx, employeeID)
		if err != nil {
			return apperror.Infrastructure("list allocations", err)
		}
		if len(history) == 0 {
			// An empty history still distinguishes unknown employees.
			if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
				return apperror.Infrastructure("get employee", err)
			}
		}
		return nil
	})
	if err != nil {
		logFailure("allocation history", err)
		return nil, err
	}

	responses := make([]allocation.AllocationResponse, len(history))
	for i, a := range history {
		responses[i] = allocation.NewAllocationResponse(a)
	}
	return responses, nil
}

func newStatusResponse(e employee.Employee) allocation.EmployeeStatusResponse {
	var benchEnd *string
	if e.BenchEndDate != nil {
		s := e.BenchEndDate.Format(validator.DateLayout)
		benchEnd = &s
	}
	return allocation.EmployeeStatusResponse{
		EmployeeID:     e.ID,
		CurrentStatus:  e.CurrentStatus,
		Status:         e.CurrentStatus.String(),
		BenchStartDate: e.BenchStartDate.Format(validator.DateLayout),
		BenchEndDate:   benchEnd,
	}
}

func logFailure(op string, err error) {
	if apperror.IsBusiness(err) {
		slog.Debug("Allocation operation rejected", "op", op, "error", err)
		return
	}
	slog.Error("Allocation operation failed", "op", op, "error", err)
}
