package employee

import "github.com/cmlabs-hris/bench-backend-go/internal/pkg/apperror"

var (
	ErrEmployeeNotFound  = apperror.NotFound("employee not found")
	ErrNameExists        = apperror.Conflict("an employee with this name already exists")
	ErrEmailExists       = apperror.Conflict("an employee with this email already exists")
	ErrBenchStartInPast  = apperror.Validation("benchStartDate cannot be in the past")
	ErrInvalidBenchRange = apperror.Validation("benchEndDate must not be earlier than benchStartDate")
	ErrJobRoleNotFound   = apperror.NotFound("job role not found")
	ErrInvalidID         = apperror.Validation("id must be a valid UUID")
)
