package allocation

import (
	"context"
	"time"
)

type AllocationRepository interface {
	Create(ctx context.Context, a NewAllocation) (Allocation, error)
	// LatestForEmployee returns the most recently inserted allocation of any status.
	LatestForEmployee(ctx context.Context, employeeID string) (Allocation, error)
	// LatestBenchForEmployee is ordered by insertion, not by dates.
	LatestBenchForEmployee(ctx context.Context, employeeID string) (AllocationWithDetails, error)
	// CloseOpen sets end_date on the employee's open allocation, if any. An
	// open allocation starting after endDate is left open.
	CloseOpen(ctx context.Context, employeeID string, endDate time.Time) (bool, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]AllocationWithDetails, error)
	DeleteByEmployee(ctx context.Context, employeeID string) error
}
