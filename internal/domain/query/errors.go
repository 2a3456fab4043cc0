package query

import "github.com/cmlabs-hris/bench-backend-go/internal/pkg/apperror"

var (
	ErrInvalidPage      = apperror.Validation("page must be at least 1")
	ErrInvalidPageSize  = apperror.Validation("pageSize must be at least 1")
	ErrPageSizeTooLarge = apperror.Validation("pageSize must not exceed 1000")
	ErrInvalidScope     = apperror.Validation("unknown listing scope")
)
