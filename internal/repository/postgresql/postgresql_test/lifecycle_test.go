package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/allocation"
	"github.com/cmlabs-hris/bench-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/bench-backend-go/internal/domain/master/training"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/bench-backend-go/internal/repository/postgresql"
	allocationService "github.com/cmlabs-hris/bench-backend-go/internal/service/allocation"
	employeeService "github.com/cmlabs-hris/bench-backend-go/internal/service/employee"
	skillService "github.com/cmlabs-hris/bench-backend-go/internal/service/skill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type services struct {
	employees   employee.EmployeeService
	allocations allocation.AllocationService
}

func newServices(db *database.DB) services {
	tx := database.NewTransactionManager(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	allocationRepo := postgresql.NewAllocationRepository(db)
	skills := skillService.NewSkillService(postgresql.NewSkillRepository(db))

	return services{
		employees:   employeeService.NewEmployeeService(tx, employeeRepo, allocationRepo, skills, nil, nil),
		allocations: allocationService.NewAllocationService(tx, allocationRepo, employeeRepo, nil),
	}
}

func daysFromToday(n int) string {
	return time.Now().UTC().AddDate(0, 0, n).Format(validator.DateLayout)
}

func TestEmployeeLifecycle(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	require.NoError(t, setup.TruncateAllTables(ctx))

	role, err := postgresql.NewJobRoleRepository(setup.DB).Upsert(ctx, "Backend Engineer")
	require.NoError(t, err)
	course, err := postgresql.NewTrainingRepository(setup.DB).Upsert(ctx, training.Training{Name: "Kubernetes Bootcamp"})
	require.NoError(t, err)

	svc := newServices(setup.DB)

	added, err := svc.employees.Add(ctx, employee.AddEmployeeRequest{
		Name:           "Alice Smith",
		Email:          "alice@example.com",
		JobRoleID:      role.ID,
		BenchStartDate: daysFromToday(1),
		Skills:         []string{"Go", " go ", "PostgreSQL"},
	})
	require.NoError(t, err)
	assert.Equal(t, allocation.StatusBench, added.CurrentStatus)
	assert.Equal(t, "Bench", added.AllocationType)
	assert.Equal(t, "Backend Engineer", added.JobRole)
	assert.ElementsMatch(t, []string{"Go", "PostgreSQL"}, added.Skills)

	_, err = svc.employees.Add(ctx, employee.AddEmployeeRequest{
		Name:           "ALICE SMITH",
		Email:          "other@example.com",
		JobRoleID:      role.ID,
		BenchStartDate: daysFromToday(1),
	})
	assert.ErrorIs(t, err, employee.ErrNameExists)

	current, err := svc.allocations.CurrentAllocationFor(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, employeeService.InitialBenchDetails, current.Details)
	assert.Nil(t, current.EndDate)

	// An out of order start is rejected before anything is written.
	_, err = svc.allocations.Transition(ctx, allocation.TransitionRequest{
		EmployeeID: added.ID,
		StatusType: allocation.StatusAllocated,
		StartDate:  daysFromToday(0),
		Details:    "Kubernetes bootcamp cohort",
		TrainingID: &course.ID,
	})
	assert.ErrorIs(t, err, allocation.ErrAllocationOutOfOrder)

	allocatedFrom := daysFromToday(5)
	moved, err := svc.allocations.Transition(ctx, allocation.TransitionRequest{
		EmployeeID: added.ID,
		StatusType: allocation.StatusAllocated,
		StartDate:  allocatedFrom,
		Details:    "Kubernetes bootcamp cohort",
		TrainingID: &course.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, allocation.StatusAllocated, moved.Employee.CurrentStatus)
	require.NotNil(t, moved.Employee.BenchEndDate)
	assert.Equal(t, allocatedFrom, *moved.Employee.BenchEndDate)

	history, err := svc.allocations.History(ctx, added.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, allocation.StatusBench, history[0].StatusType)
	require.NotNil(t, history[0].EndDate)
	assert.Equal(t, allocatedFrom, *history[0].EndDate)
	assert.Equal(t, allocation.StatusAllocated, history[1].StatusType)
	require.NotNil(t, history[1].TrainingName)
	assert.Equal(t, "Kubernetes Bootcamp", *history[1].TrainingName)

	// The bench row is still the current bench allocation.
	current, err = svc.allocations.CurrentAllocationFor(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, history[0].ID, current.ID)

	// A new open allocation closes the previous one and leaves the status alone.
	benchFrom := daysFromToday(9)
	recorded, err := svc.allocations.RecordAllocation(ctx, allocation.RecordAllocationRequest{
		EmployeeID: added.ID,
		StatusType: allocation.StatusBench,
		StartDate:  benchFrom,
		Details:    "Back on the bench",
	})
	require.NoError(t, err)
	assert.Nil(t, recorded.EndDate)

	history, err = svc.allocations.History(ctx, added.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	require.NotNil(t, history[1].EndDate)
	assert.Equal(t, benchFrom, *history[1].EndDate)
	assert.Nil(t, history[2].EndDate)

	found, err := svc.employees.GetByID(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, allocation.StatusAllocated, found.CurrentStatus)

	// An open allocation starting before the open one still hits the
	// partial unique index.
	_, err = svc.allocations.RecordAllocation(ctx, allocation.RecordAllocationRequest{
		EmployeeID: added.ID,
		StatusType: allocation.StatusBench,
		StartDate:  daysFromToday(7),
		Details:    "Backfilled bench period",
	})
	assert.ErrorIs(t, err, allocation.ErrOpenAllocationExists)

	_, err = svc.allocations.CurrentAllocationFor(ctx, "00000000-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	require.NoError(t, svc.employees.Remove(ctx, added.ID))

	_, err = svc.employees.GetByID(ctx, added.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	_, err = svc.allocations.History(ctx, added.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
