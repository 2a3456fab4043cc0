package user

import "github.com/cmlabs-hris/bench-backend-go/internal/pkg/apperror"

var (
	ErrUserNotFound     = apperror.NotFound("user not found")
	ErrInvalidRole      = apperror.Validation("role must be Admin, Allocator or Manager")
	ErrRoleAccessDenied = apperror.Forbidden("your role is not allowed to access this resource")
	ErrRoleClaimMissing = apperror.Unauthorized("UserRole claim is missing from token")
)
