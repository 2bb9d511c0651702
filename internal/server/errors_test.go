// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/99yash/eptesicus/internal/apperror"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handleError(t *testing.T, err error) (int, errorBody) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	errorHandler(slog.New(slog.DiscardHandler))(err, c)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestErrorHandler_AppError(t *testing.T) {
	status, body := handleError(t, apperror.NotFound("Invalid verification code"))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body.Code)
	assert.Equal(t, "Invalid verification code", body.Message)
}

func TestErrorHandler_Conflict(t *testing.T) {
	status, body := handleError(t, apperror.Conflict("Email already exists with a different sign-in method"))

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", body.Code)
}

func TestErrorHandler_WrappedAppError(t *testing.T) {
	err := apperror.Internal("Failed to store verification code", errors.New("disk full"))
	status, body := handleError(t, err)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to store verification code", body.Message)
	assert.NotContains(t, body.Message, "disk full", "causes never leak to clients")
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	status, body := handleError(t, echo.NewHTTPError(http.StatusMethodNotAllowed))

	assert.Equal(t, http.StatusMethodNotAllowed, status)
	assert.NotEmpty(t, body.Message)
}

func TestErrorHandler_UnknownError(t *testing.T) {
	status, body := handleError(t, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Code)
	assert.Equal(t, "Something went wrong", body.Message)
}
