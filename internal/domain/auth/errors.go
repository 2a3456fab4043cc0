package auth

import "github.com/cmlabs-hris/bench-backend-go/internal/pkg/apperror"

var (
	ErrInvalidCredentials = apperror.Unauthorized("invalid email or password")
	ErrInvalidToken       = apperror.Unauthorized("invalid token")
)
