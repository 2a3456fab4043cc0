package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/allocation"
	"github.com/cmlabs-hris/bench-backend-go/internal/domain/query"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/validator"
)

var sortColumns = map[query.SortKey]string{
	query.SortByName:             "e.name",
	query.SortByJobRole:          "jr.name",
	query.SortByAllocationStatus: "aty.name",
	query.SortByStartDate:        "e.bench_start_date",
	query.SortByEndDate:          "e.bench_end_date",
}

type queryRepositoryImpl struct {
	db database.Querier
}

func NewQueryRepository(db database.Querier) query.QueryRepository {
	return &queryRepositoryImpl{db: db}
}

// employeeFilter builds the scope and search conditions shared by Paginate
// and Count. Search is a case-sensitive substring match on the name.
func employeeFilter(search string, scope query.Scope) (string, []any) {
	conditions := []string{"TRUE"}
	args := []any{}
	argIdx := 1

	if scope.BenchOnly() {
		conditions = append(conditions, fmt.Sprintf("e.current_status = $%d", argIdx))
		args = append(args, int16(allocation.StatusBench))
		argIdx++
	}
	if search != "" {
		conditions = append(conditions, fmt.Sprintf("strpos(e.name, $%d) > 0", argIdx))
		args = append(args, search)
	}

	return strings.Join(conditions, " AND "), args
}

// orderBy renders the ORDER BY list. e.id breaks ties so that consecutive
// pages never overlap.
func orderBy(sort query.Sort) string {
	column, ok := sortColumns[sort.Key]
	if !ok {
		return "e.name ASC, e.id ASC"
	}
	direction := query.Asc
	if sort.Direction == query.Desc {
		direction = query.Desc
	}
	return fmt.Sprintf("%s %s, e.id ASC", column, direction)
}

// Paginate implements query.QueryRepository.
func (r *queryRepositoryImpl) Paginate(ctx context.Context, req query.PageRequest) ([]query.EmployeeListItem, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args := employeeFilter(req.Search, req.Scope)
	argIdx := len(args) + 1

	sqlQuery := fmt.Sprintf(`
		SELECT e.id, e.name, e.email, jr.name, e.current_status, aty.name, e.bench_start_date, e.bench_end_date
		FROM employees e
		JOIN job_roles jr ON jr.id = e.job_role_id
		JOIN allocation_types aty ON aty.id = e.current_status
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, whereClause, orderBy(req.Sort), argIdx, argIdx+1)

	args = append(args, req.PageSize, req.Offset())

	rows, err := q.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to paginate employees: %w", err)
	}
	defer rows.Close()

	items := make([]query.EmployeeListItem, 0, req.PageSize)
	for rows.Next() {
		var (
			item       query.EmployeeListItem
			status     int16
			benchStart time.Time
			benchEnd   *time.Time
		)
		err := rows.Scan(
			&item.ID, &item.Name, &item.Email, &item.JobRole, &status, &item.AllocationType,
			&benchStart, &benchEnd,
		)
		if err != nil {
			return nil, err
		}
		item.CurrentStatus = allocation.Status(status)
		item.BenchStartDate = benchStart.Format(validator.DateLayout)
		if benchEnd != nil {
			s := benchEnd.Format(validator.DateLayout)
			item.BenchEndDate = &s
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Count implements query.QueryRepository.
func (r *queryRepositoryImpl) Count(ctx context.Context, search string, scope query.Scope) (int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args := employeeFilter(search, scope)
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employees e WHERE %s", whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return total, nil
}
