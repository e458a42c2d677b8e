package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidationError(t *testing.T) {
	err := NewValidationError([]FieldError{{Field: "type", Message: "type is required"}})
	assert.Equal(t, 400, err.Code)
	require.Len(t, err.Errors, 1)
	assert.Equal(t, "type", err.Errors[0].Field)
}

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, 404, NewNotFoundError("Fiscal document").Code)
	assert.Equal(t, 400, NewConflictError("already exists").Code)
	assert.Equal(t, 400, NewPolicyError("window expired").Code)
	assert.Equal(t, 400, NewBadRequestError("bad").Code)
}

func TestGetAppErrorUnwrapsWrappedErrors(t *testing.T) {
	base := NewNotFoundError("Fiscal config")
	wrapped := fmt.Errorf("loading config: %w", base)

	appErr := GetAppError(wrapped)
	assert.Equal(t, 404, appErr.Code)
	assert.Equal(t, base.Message, appErr.Message)
}

func TestGetAppErrorFallsBackToInternal(t *testing.T) {
	appErr := GetAppError(errors.New("boom"))
	assert.Equal(t, 500, appErr.Code)
}
