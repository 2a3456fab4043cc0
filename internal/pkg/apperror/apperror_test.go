package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfrastructure_PreservesCause(t *testing.T) {
	cause := errors.New("connection refused")

	err := Infrastructure("employee.add", cause)

	var infraErr *InfrastructureError
	require.True(t, errors.As(err, &infraErr))
	assert.Equal(t, "employee.add", infraErr.Op)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindInfrastructure, KindOf(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestInfrastructure_LeavesBusinessErrorsAlone(t *testing.T) {
	sentinel := Conflict("name already exists")
	wrapped := fmt.Errorf("create: %w", sentinel)

	err := Infrastructure("employee.add", wrapped)

	assert.Same(t, wrapped, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, IsBusiness(err))
}

func TestInfrastructure_Nil(t *testing.T) {
	assert.NoError(t, Infrastructure("noop", nil))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation sentinel", Validation("bad"), KindValidation},
		{"field errors", validator.ValidationErrors{{Field: "name", Message: "required"}}, KindValidation},
		{"not found", NotFound("missing"), KindNotFound},
		{"forbidden", Forbidden("no"), KindForbidden},
		{"unauthorized", Unauthorized("who"), KindUnauthorized},
		{"plain error", errors.New("boom"), KindInfrastructure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}
