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

var employeeConstraints = constraintError{
	"employees_name_lower_key":    employee.ErrNameExists,
	"employees_email_lower_key":   employee.ErrEmailExists,
	"employees_job_role_id_fkey":  employee.ErrJobRoleNotFound,
	"employees_bench_range_check": employee.ErrInvalidBenchRange,
}

const employeeColumns = `id, name, email, job_role_id, current_status, bench_start_date, bench_end_date, created_at, updated_at`

// employeeDetailsSelect joins the labels used by GetByIDWithDetails and
// ListWithDetails. Skills come back as a name-ordered array.
const employeeDetailsSelect = `
		SELECT e.id, e.name, e.email, e.job_role_id, e.current_status, e.bench_start_date, e.bench_end_date,
			e.created_at, e.updated_at,
			jr.name AS job_role_name,
			aty.name AS status_label,
			COALESCE(
				ARRAY(
					SELECT s.name FROM employee_skills es
					JOIN skills s ON s.id = es.skill_id
					WHERE es.employee_id = e.id
					ORDER BY s.name
				),
				'{}'
			) AS skills
		FROM employees e
		JOIN job_roles jr ON jr.id = e.job_role_id
		JOIN allocation_types aty ON aty.id = e.current_status
`

type employeeRepositoryImpl struct {
	db database.Querier
}

func NewEmployeeRepository(db database.Querier) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row, e *employee.Employee) error {
	return row.Scan(
		&e.ID, &e.Name, &e.Email, &e.JobRoleID, &e.CurrentStatus,
		&e.BenchStartDate, &e.BenchEndDate, &e.CreatedAt, &e.UpdatedAt,
	)
}

func scanEmployeeWithDetails(row pgx.Row, e *employee.EmployeeWithDetails) error {
	return row.Scan(
		&e.ID, &e.Name, &e.Email, &e.JobRoleID, &e.CurrentStatus,
		&e.BenchStartDate, &e.BenchEndDate, &e.CreatedAt, &e.UpdatedAt,
		&e.JobRoleName, &e.StatusLabel, &e.Skills,
	)
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (name, email, job_role_id, current_status, bench_start_date, bench_end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + employeeColumns

	var created employee.Employee
	err := scanEmployee(q.QueryRow(ctx, query,
		e.Name, e.Email, e.JobRoleID, int16(e.CurrentStatus), e.BenchStartDate, e.BenchEndDate,
	), &created)
	if err != nil {
		return employee.Employee{}, employeeConstraints.translate(err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository. Status fields are owned by
// UpdateStatus and are left alone here.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET name = $1, email = $2, job_role_id = $3, bench_start_date = $4, bench_end_date = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING ` + employeeColumns

	var updated employee.Employee
	err := scanEmployee(q.QueryRow(ctx, query,
		e.Name, e.Email, e.JobRoleID, e.BenchStartDate, e.BenchEndDate, e.ID,
	), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, employeeConstraints.translate(err)
	}
	return updated, nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	var e employee.Employee
	if err := scanEmployee(q.QueryRow(ctx, query, id), &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

// GetByIDWithDetails implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByIDWithDetails(ctx context.Context, id string) (employee.EmployeeWithDetails, error) {
	q := GetQuerier(ctx, r.db)

	query := employeeDetailsSelect + `		WHERE e.id = $1`

	var e employee.EmployeeWithDetails
	if err := scanEmployeeWithDetails(q.QueryRow(ctx, query, id), &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.EmployeeWithDetails{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeWithDetails{}, err
	}
	return e, nil
}

// ListWithDetails implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListWithDetails(ctx context.Context) ([]employee.EmployeeWithDetails, error) {
	q := GetQuerier(ctx, r.db)

	query := employeeDetailsSelect + `		ORDER BY e.name ASC, e.id ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.EmployeeWithDetails, 0)
	for rows.Next() {
		var e employee.EmployeeWithDetails
		if err := scanEmployeeWithDetails(rows, &e); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// ExistsByName implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByName(ctx context.Context, name string, excludeID *string) (bool, error) {
	return r.existsBy(ctx, "name", name, excludeID)
}

// ExistsByEmail implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByEmail(ctx context.Context, email string, excludeID *string) (bool, error) {
	return r.existsBy(ctx, "email", email, excludeID)
}

// existsBy is only called with the fixed column names above.
func (r *employeeRepositoryImpl) existsBy(ctx context.Context, column, value string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT EXISTS(
			SELECT 1 FROM employees
			WHERE lower(%s) = lower($1) AND ($2::uuid IS NULL OR id <> $2::uuid)
		)
	`, column)

	var exists bool
	if err := q.QueryRow(ctx, query, value, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check employee %s: %w", column, err)
	}
	return exists, nil
}

// UpdateStatus implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateStatus(ctx context.Context, id string, status allocation.Status, benchStart time.Time, benchEnd *time.Time) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET current_status = $1, bench_start_date = $2, bench_end_date = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + employeeColumns

	var updated employee.Employee
	err := scanEmployee(q.QueryRow(ctx, query, int16(status), benchStart, benchEnd, id), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, employeeConstraints.translate(err)
	}
	return updated, nil
}
