// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/99yash/eptesicus/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, apperror.BadRequest("x").Status())
	assert.Equal(t, http.StatusUnauthorized, apperror.Unauthorized("x").Status())
	assert.Equal(t, http.StatusForbidden, apperror.Forbidden("x").Status())
	assert.Equal(t, http.StatusNotFound, apperror.NotFound("x").Status())
	assert.Equal(t, http.StatusConflict, apperror.Conflict("x").Status())
	assert.Equal(t, http.StatusInternalServerError, apperror.Internal("x", nil).Status())
}

func TestFromError(t *testing.T) {
	appErr, ok := apperror.FromError(apperror.NotFound("missing"))
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)

	_, ok = apperror.FromError(errors.New("plain"))
	assert.False(t, ok)
}

func TestFromError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", apperror.Conflict("taken"))

	appErr, ok := apperror.FromError(wrapped)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := apperror.Internal("failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}
