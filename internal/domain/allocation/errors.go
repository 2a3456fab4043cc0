package allocation

import "github.com/cmlabs-hris/bench-backend-go/internal/pkg/apperror"

var (
	ErrInvalidStatus           = apperror.Validation("statusType must be 1 (Bench) or 2 (Allocated)")
	ErrBenchWithReference      = apperror.Validation("a bench allocation cannot reference a training or internal project")
	ErrMissingAssignment       = apperror.Validation("an allocated status requires a trainingId or an internalProjectId")
	ErrAmbiguousAssignment     = apperror.Validation("an allocation references either a training or an internal project, not both")
	ErrInvalidDateRange        = apperror.Validation("endDate must not be earlier than startDate")
	ErrAllocationOutOfOrder    = apperror.Validation("startDate must not be earlier than the start of the latest allocation")
	ErrOpenAllocationExists    = apperror.Conflict("employee already has an open allocation")
	ErrAllocationNotFound      = apperror.NotFound("allocation not found")
	ErrNoBenchAllocation       = apperror.NotFound("employee has no bench allocation")
	ErrTrainingNotFound        = apperror.NotFound("training not found")
	ErrInternalProjectNotFound = apperror.NotFound("internal project not found")
)
