package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, ErrCodeDatabaseError, "Database operation failed")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "DATABASE_ERROR")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWithDetailAccumulates(t *testing.T) {
	err := New(ErrCodeValidation, "bad input").
		WithDetail("field", "name").
		WithDetail("reason", "empty")

	assert.Equal(t, "name", err.Details["field"])
	assert.Equal(t, "empty", err.Details["reason"])
}

func TestClassificationHelpers(t *testing.T) {
	assert.True(t, New(ErrCodeChannelNotFound, "").IsNotFound())
	assert.True(t, New(ErrCodeMessageNotFound, "").IsNotFound())
	assert.False(t, New(ErrCodeConflict, "").IsNotFound())

	assert.True(t, NewValidationError("name", "required").IsValidation())
	assert.True(t, NewDatabaseError("insert", stderrors.New("x")).IsInternal())
	assert.False(t, NewNotRegisteredError().IsInternal())
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(New(ErrCodeConflict, "dup"))
	require.True(t, ok)
	assert.Equal(t, ErrCodeConflict, appErr.Code)

	_, ok = AsAppError(stderrors.New("plain"))
	assert.False(t, ok)

	_, ok = AsAppError(nil)
	assert.False(t, ok)
}
