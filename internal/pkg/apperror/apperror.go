// Package apperror separates business-rule failures from infrastructure
// failures so the HTTP boundary can map them uniformly.
package apperror

import (
	"errors"
	"fmt"

	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/validator"
)

type Kind int

const (
	KindInfrastructure Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "infrastructure"
	}
}

// Error is a business-rule violation. Domain packages declare them as
// package-level sentinels so callers can match with errors.Is.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// InfrastructureError wraps a storage or runtime fault together with the
// operation that hit it. The original cause stays reachable through Unwrap.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// Infrastructure wraps err unless it already carries a business kind or is
// already an infrastructure error.
func Infrastructure(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	var infraErr *InfrastructureError
	if errors.As(err, &infraErr) {
		return err
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return err
	}
	return &InfrastructureError{Op: op, Err: err}
}

// KindOf classifies any error. Unknown errors count as infrastructure.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return KindValidation
	}
	return KindInfrastructure
}

// IsBusiness reports whether err is an ordinary, expected failure.
func IsBusiness(err error) bool {
	return err != nil && KindOf(err) != KindInfrastructure
}
