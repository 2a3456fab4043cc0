package allocation

import "context"

// AllocationService is the ledger of bench and assignment history.
type AllocationService interface {
	RecordAllocation(ctx context.Context, req RecordAllocationRequest) (AllocationResponse, error)
	ApplyToEmployee(ctx context.Context, req ApplyStatusRequest) (EmployeeStatusResponse, error)
	CurrentAllocationFor(ctx context.Context, employeeID string) (AllocationResponse, error)
	Transition(ctx context.Context, req TransitionRequest) (TransitionResponse, error)
	History(ctx context.Context, employeeID string) ([]AllocationResponse, error)
}
