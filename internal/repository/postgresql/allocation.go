package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/allocation"
	"github.com/cmlabs-hris/bench-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

var allocationConstraints = constraintError{
	"allocations_employee_id_fkey":         employee.ErrEmployeeNotFound,
	"allocations_training_id_fkey":         allocation.ErrTrainingNotFound,
	"allocations_internal_project_id_fkey": allocation.ErrInternalProjectNotFound,
	"allocations_one_open_per_employee":    allocation.ErrOpenAllocationExists,
	"allocations_date_range_check":         allocation.ErrInvalidDateRange,
	"allocations_assignment_check":         allocation.ErrMissingAssignment,
}

const allocationColumns = `id, seq, employee_id, status_type, start_date, end_date, details, training_id, internal_project_id, created_at`

const allocationDetailsSelect = `
		SELECT a.id, a.seq, a.employee_id, a.status_type, a.start_date, a.end_date, a.details,
			a.training_id, a.internal_project_id, a.created_at,
			aty.name AS status_label,
			t.name AS training_name,
			ip.name AS internal_project_name
		FROM allocations a
		JOIN allocation_types aty ON aty.id = a.status_type
		LEFT JOIN trainings t ON t.id = a.training_id
		LEFT JOIN internal_projects ip ON ip.id = a.internal_project_id
`

type allocationRepositoryImpl struct {
	db database.Querier
}

func NewAllocationRepository(db database.Querier) allocation.AllocationRepository {
	return &allocationRepositoryImpl{db: db}
}

// allocationRow is the flat storage form; toAllocation rebuilds the
// Assignment sum type from it.
type allocationRow struct {
	id                string
	seq               int64
	employeeID        string
	statusType        int16
	startDate         time.Time
	endDate           *time.Time
	details           string
	trainingID        *string
	internalProjectID *string
	createdAt         time.Time
}

func (r *allocationRow) targets() []any {
	return []any{
		&r.id, &r.seq, &r.employeeID, &r.statusType, &r.startDate, &r.endDate,
		&r.details, &r.trainingID, &r.internalProjectID, &r.createdAt,
	}
}

func (r *allocationRow) toAllocation() (allocation.Allocation, error) {
	assignment, err := allocation.ParseAssignment(allocation.Status(r.statusType), r.trainingID, r.internalProjectID)
	if err != nil {
		return allocation.Allocation{}, fmt.Errorf("allocation %s has an invalid assignment: %w", r.id, err)
	}
	return allocation.Allocation{
		ID:         r.id,
		Seq:        r.seq,
		EmployeeID: r.employeeID,
		Assignment: assignment,
		StartDate:  r.startDate,
		EndDate:    r.endDate,
		Details:    r.details,
		CreatedAt:  r.createdAt,
	}, nil
}

func scanAllocation(row pgx.Row) (allocation.Allocation, error) {
	var r allocationRow
	if err := row.Scan(r.targets()...); err != nil {
		return allocation.Allocation{}, err
	}
	return r.toAllocation()
}

func scanAllocationWithDetails(row pgx.Row) (allocation.AllocationWithDetails, error) {
	var (
		r      allocationRow
		result allocation.AllocationWithDetails
	)
	dest := append(r.targets(), &result.StatusLabel, &result.TrainingName, &result.InternalProjectName)
	if err := row.Scan(dest...); err != nil {
		return allocation.AllocationWithDetails{}, err
	}
	a, err := r.toAllocation()
	if err != nil {
		return allocation.AllocationWithDetails{}, err
	}
	result.Allocation = a
	return result, nil
}

// Create implements allocation.AllocationRepository.
func (r *allocationRepositoryImpl) Create(ctx context.Context, a allocation.NewAllocation) (allocation.Allocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO allocations (employee_id, status_type, start_date, end_date, details, training_id, internal_project_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + allocationColumns

	created, err := scanAllocation(q.QueryRow(ctx, query,
		a.EmployeeID, int16(a.Assignment.Status()), a.StartDate, a.EndDate, a.Details,
		a.Assignment.TrainingID(), a.Assignment.InternalProjectID(),
	))
	if err != nil {
		return allocation.Allocation{}, allocationConstraints.translate(err)
	}
	return created, nil
}

// LatestForEmployee implements allocation.AllocationRepository.
func (r *allocationRepositoryImpl) LatestForEmployee(ctx context.Context, employeeID string) (allocation.Allocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + allocationColumns + `
		FROM allocations
		WHERE employee_id = $1
		ORDER BY seq DESC
		LIMIT 1
	`

	a, err := scanAllocation(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return allocation.Allocation{}, allocation.ErrAllocationNotFound
		}
		return allocation.Allocation{}, err
	}
	return a, nil
}

// LatestBenchForEmployee implements allocation.AllocationRepository.
func (r *allocationRepositoryImpl) LatestBenchForEmployee(ctx context.Context, employeeID string) (allocation.AllocationWithDetails, error) {
	q := GetQuerier(ctx, r.db)

	query := allocationDetailsSelect + `
		WHERE a.employee_id = $1 AND a.status_type = $2
		ORDER BY a.seq DESC
		LIMIT 1
	`

	a, err := scanAllocationWithDetails(q.QueryRow(ctx, query, employeeID, int16(allocation.StatusBench)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return allocation.AllocationWithDetails{}, allocation.ErrNoBenchAllocation
		}
		return allocation.AllocationWithDetails{}, err
	}
	return a, nil
}

// CloseOpen implements allocation.AllocationRepository.
func (r *allocationRepositoryImpl) CloseOpen(ctx context.Context, employeeID string, endDate time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE allocations
		SET end_date = $1
		WHERE employee_id = $2 AND end_date IS NULL AND start_date <= $1
	`

	tag, err := q.Exec(ctx, query, endDate, employeeID)
	if err != nil {
		return false, allocationConstraints.translate(err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByEmployee implements allocation.AllocationRepository.
func (r *allocationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]allocation.AllocationWithDetails, error) {
	q := GetQuerier(ctx, r.db)

	query := allocationDetailsSelect + `
		WHERE a.employee_id = $1
		ORDER BY a.seq ASC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	history := make([]allocation.AllocationWithDetails, 0)
	for rows.Next() {
		a, err := scanAllocationWithDetails(rows)
		if err != nil {
			return nil, err
		}
		history = append(history, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

// DeleteByEmployee implements allocation.AllocationRepository.
func (r *allocationRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM allocations WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to delete allocations for employee %s: %w", employeeID, err)
	}
	return nil
}
