package allocation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/allocation"
	"github.com/cmlabs-hris/bench-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	aliceID    = "5f0e8c2a-1b3d-4e5f-8a9b-0c1d2e3f4a5b"
	trainingID = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
	projectID  = "1a2b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d"
	missingID  = "00000000-0000-4000-8000-000000000000"
)

type passthroughTx struct{}

func (passthroughTx) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (passthroughTx) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// fakeLedger emulates the allocations table including the one-open-row
// unique index.
type fakeLedger struct {
	rows []allocation.Allocation
}

func (l *fakeLedger) Create(_ context.Context, a allocation.NewAllocation) (allocation.Allocation, error) {
	if a.EndDate == nil {
		for _, row := range l.rows {
			if row.EmployeeID == a.EmployeeID && row.IsOpen() {
				return allocation.Allocation{}, allocation.ErrOpenAllocationExists
			}
		}
	}
	row := allocation.Allocation{
		ID:         fmt.Sprintf("alloc-%d", len(l.rows)+1),
		Seq:        int64(len(l.rows) + 1),
		EmployeeID: a.EmployeeID,
		Assignment: a.Assignment,
		StartDate:  a.StartDate,
		EndDate:    a.EndDate,
		Details:    a.Details,
		CreatedAt:  time.Now().UTC(),
	}
	l.rows = append(l.rows, row)
	return row, nil
}

func (l *fakeLedger) LatestForEmployee(_ context.Context, employeeID string) (allocation.Allocation, error) {
	for i := len(l.rows) - 1; i >= 0; i-- {
		if l.rows[i].EmployeeID == employeeID {
			return l.rows[i], nil
		}
	}
	return allocation.Allocation{}, allocation.ErrAllocationNotFound
}

func (l *fakeLedger) LatestBenchForEmployee(_ context.Context, employeeID string) (allocation.AllocationWithDetails, error) {
	for i := len(l.rows) - 1; i >= 0; i-- {
		row := l.rows[i]
		if row.EmployeeID == employeeID && row.Assignment.Status() == allocation.StatusBench {
			return allocation.AllocationWithDetails{Allocation: row, StatusLabel: "Bench"}, nil
		}
	}
	return allocation.AllocationWithDetails{}, allocation.ErrNoBenchAllocation
}

func (l *fakeLedger) CloseOpen(_ context.Context, employeeID string, endDate time.Time) (bool, error) {
	for i, row := range l.rows {
		if row.EmployeeID == employeeID && row.IsOpen() && !row.StartDate.After(endDate) {
			end := endDate
			l.rows[i].EndDate = &end
			return true, nil
		}
	}
	return false, nil
}

func (l *fakeLedger) ListByEmployee(_ context.Context, employeeID string) ([]allocation.AllocationWithDetails, error) {
	history := make([]allocation.AllocationWithDetails, 0)
	for _, row := range l.rows {
		if row.EmployeeID == employeeID {
			history = append(history, allocation.AllocationWithDetails{Allocation: row})
		}
	}
	return history, nil
}

func (l *fakeLedger) DeleteByEmployee(context.Context, string) error {
	return nil
}

type fakeEmployees struct {
	byID map[string]employee.Employee
}

func (f *fakeEmployees) Create(context.Context, employee.Employee) (employee.Employee, error) {
	return employee.Employee{}, nil
}

func (f *fakeEmployees) Update(context.Context, employee.Employee) (employee.Employee, error) {
	return employee.Employee{}, nil
}

func (f *fakeEmployees) Delete(context.Context, string) error {
	return nil
}

func (f *fakeEmployees) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployees) GetByIDWithDetails(context.Context, string) (employee.EmployeeWithDetails, error) {
	return employee.EmployeeWithDetails{}, nil
}

func (f *fakeEmployees) ListWithDetails(context.Context) ([]employee.EmployeeWithDetails, error) {
	return nil, nil
}

func (f *fakeEmployees) ExistsByName(context.Context, string, *string) (bool, error) {
	return false, nil
}

func (f *fakeEmployees) ExistsByEmail(context.Context, string, *string) (bool, error) {
	return false, nil
}

func (f *fakeEmployees) UpdateStatus(_ context.Context, id string, status allocation.Status, benchStart time.Time, benchEnd *time.Time) (employee.Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	e.CurrentStatus = status
	e.BenchStartDate = benchStart
	e.BenchEndDate = benchEnd
	f.byID[id] = e
	return e, nil
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func strPtr(s string) *string {
	return &s
}

// newBenchedAlice returns a service whose store holds Alice on the bench
// since 2026-10-19 with her initial bench allocation.
func newBenchedAlice(t *testing.T) (allocation.AllocationService, *fakeLedger, *fakeEmployees) {
	t.Helper()
	ledger := &fakeLedger{}
	employees := &fakeEmployees{byID: map[string]employee.Employee{
		aliceID: {
			ID:             aliceID,
			Name:           "Alice",
			CurrentStatus:  allocation.StatusBench,
			BenchStartDate: date("2026-10-19"),
		},
	}}
	_, err := ledger.Create(context.Background(), allocation.NewAllocation{
		EmployeeID: aliceID,
		Assignment: allocation.Bench(),
		StartDate:  date("2026-10-19"),
		Details:    "Initial bench assignment",
	})
	require.NoError(t, err)

	svc := NewAllocationService(passthroughTx{}, ledger, employees, metrics.New(prometheus.NewRegistry()))
	return svc, ledger, employees
}

func TestAllocationService_TransitionLifecycle(t *testing.T) {
	svc, ledger, employees := newBenchedAlice(t)
	ctx := context.Background()

	resp, err := svc.Transition(ctx, allocation.TransitionRequest{
		EmployeeID: aliceID,
		StatusType: allocation.StatusAllocated,
		StartDate:  "2026-11-01",
		Details:    "Kubernetes bootcamp",
		TrainingID: strPtr(trainingID),
	})
	require.NoError(t, err)
	assert.Equal(t, allocation.StatusAllocated, resp.Allocation.StatusType)
	assert.Equal(t, strPtr(trainingID), resp.Allocation.TrainingID)
	assert.Equal(t, "Allocated", resp.Employee.Status)
	assert.Equal(t, "2026-10-19", resp.Employee.BenchStartDate)
	assert.Equal(t, strPtr("2026-11-01"), resp.Employee.BenchEndDate)

	require.Len(t, ledger.rows, 2)
	require.NotNil(t, ledger.rows[0].EndDate)
	assert.Equal(t, date("2026-11-01"), *ledger.rows[0].EndDate)
	assert.True(t, ledger.rows[1].IsOpen())

	resp, err = svc.Transition(ctx, allocation.TransitionRequest{
		EmployeeID: aliceID,
		StatusType: allocation.StatusBench,
		StartDate:  "2026-12-01",
		Details:    "Back from the bootcamp",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bench", resp.Employee.Status)
	assert.Equal(t, "2026-12-01", resp.Employee.BenchStartDate)
	assert.Nil(t, resp.Employee.BenchEndDate)

	alice := employees.byID[aliceID]
	assert.Equal(t, allocation.StatusBench, alice.CurrentStatus)

	current, err := svc.CurrentAllocationFor(ctx, aliceID)
	require.NoError(t, err)
	assert.Equal(t, "alloc-3", current.ID)
	assert.Equal(t, "2026-12-01", current.StartDate)

	open := 0
	for _, row := range ledger.rows {
		if row.IsOpen() {
			open++
		}
	}
	assert.Equal(t, 1, open)
}

func TestAllocationService_TransitionRejectsOutOfOrderStart(t *testing.T) {
	svc, ledger, employees := newBenchedAlice(t)

	_, err := svc.Transition(context.Background(), allocation.TransitionRequest{
		EmployeeID:        aliceID,
		StatusType:        allocation.StatusAllocated,
		StartDate:         "2026-10-01",
		Details:           "Joined the portal team",
		InternalProjectID: strPtr(projectID),
	})
	assert.ErrorIs(t, err, allocation.ErrAllocationOutOfOrder)
	assert.Len(t, ledger.rows, 1)
	assert.Equal(t, allocation.StatusBench, employees.byID[aliceID].CurrentStatus)
}

func TestAllocationService_TransitionUnknownEmployee(t *testing.T) {
	svc, _, _ := newBenchedAlice(t)

	_, err := svc.Transition(context.Background(), allocation.TransitionRequest{
		EmployeeID: missingID,
		StatusType: allocation.StatusBench,
		StartDate:  "2026-10-20",
		Details:    "Initial bench assignment",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAllocationService_RecordAllocation(t *testing.T) {
	svc, ledger, employees := newBenchedAlice(t)
	ctx := context.Background()

	resp, err := svc.RecordAllocation(ctx, allocation.RecordAllocationRequest{
		EmployeeID:        aliceID,
		StatusType:        allocation.StatusAllocated,
		StartDate:         "2026-10-21",
		Details:           "Assigned to internal project",
		InternalProjectID: strPtr(projectID),
	})
	require.NoError(t, err)
	assert.Equal(t, "Allocated", resp.Status)
	assert.Nil(t, resp.EndDate)

	require.Len(t, ledger.rows, 2)
	require.NotNil(t, ledger.rows[0].EndDate, "the bench row is closed")
	assert.Equal(t, date("2026-10-21"), *ledger.rows[0].EndDate)
	assert.True(t, ledger.rows[1].IsOpen())
	assert.Equal(t, allocation.StatusBench, employees.byID[aliceID].CurrentStatus, "employee is untouched")

	// a closed row leaves nothing open behind it
	resp, err = svc.RecordAllocation(ctx, allocation.RecordAllocationRequest{
		EmployeeID:        aliceID,
		StatusType:        allocation.StatusAllocated,
		StartDate:         "2026-10-26",
		EndDate:           strPtr("2026-10-30"),
		Details:           "Short internal project",
		InternalProjectID: strPtr(projectID),
	})
	require.NoError(t, err)
	assert.Equal(t, strPtr("2026-10-30"), resp.EndDate)
	require.Len(t, ledger.rows, 3)
	assert.Equal(t, date("2026-10-26"), *ledger.rows[1].EndDate)
	for _, row := range ledger.rows {
		assert.False(t, row.IsOpen())
	}
	assert.Equal(t, allocation.StatusBench, employees.byID[aliceID].CurrentStatus)
}

func TestAllocationService_RecordAllocationBackfill(t *testing.T) {
	svc, ledger, _ := newBenchedAlice(t)
	ctx := context.Background()

	// an open row starting before the current one cannot close it
	_, err := svc.RecordAllocation(ctx, allocation.RecordAllocationRequest{
		EmployeeID: aliceID,
		StatusType: allocation.StatusBench,
		StartDate:  "2026-10-01",
		Details:    "Earlier bench period",
	})
	assert.ErrorIs(t, err, allocation.ErrOpenAllocationExists)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	require.Len(t, ledger.rows, 1)
	assert.True(t, ledger.rows[0].IsOpen())

	// a closed row in the past is appended as is
	_, err = svc.RecordAllocation(ctx, allocation.RecordAllocationRequest{
		EmployeeID: aliceID,
		StatusType: allocation.StatusBench,
		StartDate:  "2026-10-01",
		EndDate:    strPtr("2026-10-10"),
		Details:    "Earlier bench period",
	})
	require.NoError(t, err)
	require.Len(t, ledger.rows, 2)
	assert.True(t, ledger.rows[0].IsOpen())
}

func TestAllocationService_RecordAllocationValidation(t *testing.T) {
	svc, ledger, _ := newBenchedAlice(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  allocation.RecordAllocationRequest
		want error
	}{
		{
			name: "bench with training",
			req: allocation.RecordAllocationRequest{
				EmployeeID: aliceID, StatusType: allocation.StatusBench, StartDate: "2026-10-20",
				Details: "Bench with a training", TrainingID: strPtr(trainingID),
			},
			want: allocation.ErrBenchWithReference,
		},
		{
			name: "allocated without target",
			req: allocation.RecordAllocationRequest{
				EmployeeID: aliceID, StatusType: allocation.StatusAllocated, StartDate: "2026-10-20",
				Details: "Allocated to nothing",
			},
			want: allocation.ErrMissingAssignment,
		},
		{
			name: "end before start",
			req: allocation.RecordAllocationRequest{
				EmployeeID: aliceID, StatusType: allocation.StatusBench, StartDate: "2026-10-20",
				EndDate: strPtr("2026-10-19"), Details: "Backwards range",
			},
			want: allocation.ErrInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordAllocation(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := svc.RecordAllocation(ctx, allocation.RecordAllocationRequest{
		EmployeeID: aliceID, StatusType: allocation.StatusBench, StartDate: "2026-10-20", Details: "short",
	})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Len(t, ledger.rows, 1)
}

func TestAllocationService_ApplyToEmployee(t *testing.T) {
	svc, ledger, employees := newBenchedAlice(t)
	ctx := context.Background()

	resp, err := svc.ApplyToEmployee(ctx, allocation.ApplyStatusRequest{
		EmployeeID: aliceID,
		StatusType: allocation.StatusAllocated,
		StartDate:  "2026-11-01",
	})
	require.NoError(t, err)
	assert.Equal(t, allocation.StatusAllocated, resp.CurrentStatus)
	assert.Equal(t, "2026-10-19", resp.BenchStartDate)
	assert.Equal(t, strPtr("2026-11-01"), resp.BenchEndDate)
	assert.Len(t, ledger.rows, 1, "the ledger is not written")

	resp, err = svc.ApplyToEmployee(ctx, allocation.ApplyStatusRequest{
		EmployeeID: aliceID,
		StatusType: allocation.StatusBench,
		StartDate:  "2026-12-01",
		EndDate:    strPtr("2026-12-31"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-12-01", resp.BenchStartDate)
	assert.Equal(t, strPtr("2026-12-31"), resp.BenchEndDate)
	assert.Equal(t, date("2026-12-01"), employees.byID[aliceID].BenchStartDate)

	_, err = svc.ApplyToEmployee(ctx, allocation.ApplyStatusRequest{
		EmployeeID: missingID,
		StatusType: allocation.StatusBench,
		StartDate:  "2026-12-01",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.ApplyToEmployee(ctx, allocation.ApplyStatusRequest{
		EmployeeID: aliceID,
		StatusType: allocation.Status(3),
		StartDate:  "2026-12-01",
	})
	assert.ErrorIs(t, err, allocation.ErrInvalidStatus)
}

func TestAllocationService_CurrentAllocationFor(t *testing.T) {
	svc, _, employees := newBenchedAlice(t)
	ctx := context.Background()

	current, err := svc.CurrentAllocationFor(ctx, aliceID)
	require.NoError(t, err)
	assert.Equal(t, "Bench", current.Status)
	assert.Equal(t, "Initial bench assignment", current.Details)

	_, err = svc.CurrentAllocationFor(ctx, missingID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	const bobID = "7c6d5e4f-3a2b-4c1d-9e8f-7a6b5c4d3e2f"
	employees.byID[bobID] = employee.Employee{ID: bobID, Name: "Bob", CurrentStatus: allocation.StatusAllocated}
	_, err = svc.CurrentAllocationFor(ctx, bobID)
	assert.ErrorIs(t, err, allocation.ErrNoBenchAllocation)

	_, err = svc.CurrentAllocationFor(ctx, "abc")
	assert.ErrorIs(t, err, employee.ErrInvalidID)
}

func TestAllocationService_History(t *testing.T) {
	svc, _, _ := newBenchedAlice(t)
	ctx := context.Background()

	_, err := svc.Transition(ctx, allocation.TransitionRequest{
		EmployeeID: aliceID,
		StatusType: allocation.StatusAllocated,
		StartDate:  "2026-11-01",
		Details:    "Kubernetes bootcamp",
		TrainingID: strPtr(trainingID),
	})
	require.NoError(t, err)

	history, err := svc.History(ctx, aliceID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Bench", history[0].Status)
	assert.Equal(t, strPtr("2026-11-01"), history[0].EndDate)
	assert.Equal(t, "Allocated", history[1].Status)
	assert.Nil(t, history[1].EndDate)

	_, err = svc.History(ctx, missingID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
