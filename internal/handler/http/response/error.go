package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Infrastructure errors
// are logged with their cause and answered with a generic message.
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		BadRequest(w, err.Error(), nil)
	case apperror.KindNotFound:
		NotFound(w, err.Error())
	case apperror.KindConflict:
		Conflict(w, err.Error())
	case apperror.KindUnauthorized:
		Unauthorized(w, err.Error())
	case apperror.KindForbidden:
		Forbidden(w, err.Error())

	// Default
	default:
		slog.Error("Request failed", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
