package postgresql

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/allocation"
	"github.com/cmlabs-hris/bench-backend-go/internal/domain/employee"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allocationRowColumns = []string{"id", "seq", "employee_id", "status_type", "start_date", "end_date", "details", "training_id", "internal_project_id", "created_at"}

func detailColumns() []string {
	return append(append([]string{}, allocationRowColumns...), "status_label", "training_name", "internal_project_name")
}

func TestAllocationRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAllocationRepository(mock)
	start := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	trainingID := "training-1"
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO allocations")).
		WithArgs("emp-1", int16(2), start, (*time.Time)(nil), "Kubernetes bootcamp", &trainingID, (*string)(nil)).
		WillReturnRows(pgxmock.NewRows(allocationRowColumns).
			AddRow("alloc-1", int64(7), "emp-1", int16(2), start, nil, "Kubernetes bootcamp", &trainingID, nil, now))

	created, err := repo.Create(context.Background(), allocation.NewAllocation{
		EmployeeID: "emp-1",
		Assignment: allocation.Training(trainingID),
		StartDate:  start,
		Details:    "Kubernetes bootcamp",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.Seq)
	assert.Equal(t, allocation.StatusAllocated, created.Assignment.Status())
	assert.Equal(t, &trainingID, created.Assignment.TrainingID())
	assert.True(t, created.IsOpen())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationRepository_CreateTranslatesConstraints(t *testing.T) {
	tests := []struct {
		code       string
		constraint string
		want       error
	}{
		{pgForeignKeyViolation, "allocations_employee_id_fkey", employee.ErrEmployeeNotFound},
		{pgForeignKeyViolation, "allocations_training_id_fkey", allocation.ErrTrainingNotFound},
		{pgForeignKeyViolation, "allocations_internal_project_id_fkey", allocation.ErrInternalProjectNotFound},
		{pgUniqueViolation, "allocations_one_open_per_employee", allocation.ErrOpenAllocationExists},
		{pgCheckViolation, "allocations_date_range_check", allocation.ErrInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			repo := NewAllocationRepository(mock)

			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO allocations")).
				WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
				WillReturnError(&pgconn.PgError{Code: tt.code, ConstraintName: tt.constraint})

			_, err = repo.Create(context.Background(), allocation.NewAllocation{
				EmployeeID: "emp-1",
				Assignment: allocation.Bench(),
				StartDate:  time.Now(),
				Details:    "Returned to bench",
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAllocationRepository_LatestBenchForEmployee(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAllocationRepository(mock)
	start := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.employee_id = $1 AND a.status_type = $2 ORDER BY a.seq DESC LIMIT 1")).
		WithArgs("emp-1", int16(1)).
		WillReturnRows(pgxmock.NewRows(detailColumns()).
			AddRow("alloc-3", int64(3), "emp-1", int16(1), start, nil, "Initial bench assignment", nil, nil, now,
				"Bench", nil, nil))

	got, err := repo.LatestBenchForEmployee(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "alloc-3", got.ID)
	assert.Equal(t, "Bench", got.StatusLabel)
	assert.Equal(t, allocation.StatusBench, got.Assignment.Status())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationRepository_LatestBenchForEmployeeNone(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAllocationRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY a.seq DESC")).
		WithArgs("emp-1", int16(1)).
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.LatestBenchForEmployee(context.Background(), "emp-1")
	assert.ErrorIs(t, err, allocation.ErrNoBenchAllocation)
}

func TestAllocationRepository_RejectsCorruptAssignment(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAllocationRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY seq DESC")).
		WithArgs("emp-1").
		WillReturnRows(pgxmock.NewRows(allocationRowColumns).
			AddRow("alloc-1", int64(1), "emp-1", int16(2), now, nil, "Allocated to nothing", nil, nil, now))

	_, err = repo.LatestForEmployee(context.Background(), "emp-1")
	assert.ErrorIs(t, err, allocation.ErrMissingAssignment)
}

func TestAllocationRepository_CloseOpen(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAllocationRepository(mock)
	end := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE allocations SET end_date = $1 WHERE employee_id = $2 AND end_date IS NULL AND start_date <= $1")).
		WithArgs(end, "emp-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	closed, err := repo.CloseOpen(context.Background(), "emp-1", end)
	require.NoError(t, err)
	assert.True(t, closed)

	mock.ExpectExec(regexp.QuoteMeta("AND start_date <= $1")).
		WithArgs(end, "emp-2").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	closed, err = repo.CloseOpen(context.Background(), "emp-2", end)
	require.NoError(t, err)
	assert.False(t, closed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationRepository_ListByEmployee(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAllocationRepository(mock)
	first := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	second := first.AddDate(0, 1, 0)
	projectID := "project-1"
	projectName := "Internal Portal"

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY a.seq ASC")).
		WithArgs("emp-1").
		WillReturnRows(pgxmock.NewRows(detailColumns()).
			AddRow("alloc-1", int64(1), "emp-1", int16(1), first, &second, "Initial bench assignment", nil, nil, first, "Bench", nil, nil).
			AddRow("alloc-2", int64(2), "emp-1", int16(2), second, nil, "Joined the portal team", nil, &projectID, second, "Allocated", nil, &projectName))

	history, err := repo.ListByEmployee(context.Background(), "emp-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.False(t, history[0].IsOpen())
	assert.True(t, history[1].IsOpen())
	assert.Equal(t, &projectName, history[1].InternalProjectName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocationRepository_DeleteByEmployee(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAllocationRepository(mock)
	cause := errors.New("disk full")

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM allocations WHERE employee_id = $1")).
		WithArgs("emp-1").
		WillReturnError(cause)

	err = repo.DeleteByEmployee(context.Background(), "emp-1")
	assert.ErrorIs(t, err, cause)
}
