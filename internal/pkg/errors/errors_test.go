package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_WithDetailsDoesNotMutatePrototype(t *testing.T) {
	err := ErrVerificationFailed.WithDetails(map[string]interface{}{"verdict": "bad"})

	assert.Equal(t, "bad", err.Details["verdict"])
	assert.Nil(t, ErrVerificationFailed.Details)
	assert.Equal(t, http.StatusForbidden, err.StatusCode)
}

func TestAppError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("normalize: %w", ErrMissingPoints.WithMessage("no points at all"))

	assert.True(t, stderrors.Is(wrapped, ErrMissingPoints))
	assert.False(t, stderrors.Is(wrapped, ErrInvalidPoints))

	var appErr *AppError
	require.True(t, stderrors.As(wrapped, &appErr))
	assert.Equal(t, "no points at all", appErr.Message)
	assert.Equal(t, "route_failed: no points at all", appErr.Error())
}
