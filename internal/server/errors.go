// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package server

import (
	"log/slog"
	"net/http"

	"github.com/99yash/eptesicus/internal/apperror"
	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler maps errors to the JSON error envelope. Business errors
// carry their own status and message; everything else is logged and
// hidden behind a generic 500.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := errorBody{
			Code:    string(apperror.CodeInternal),
			Message: "Something went wrong",
		}

		if appErr, ok := apperror.FromError(err); ok {
			status = appErr.Status()
			body.Code = string(appErr.Code)
			body.Message = appErr.Message
			if appErr.Err != nil {
				logger.Error("request failed",
					slog.String("code", string(appErr.Code)),
					slog.Any("error", appErr.Err))
			}
		} else if httpErr, ok := err.(*echo.HTTPError); ok {
			status = httpErr.Code
			body.Code = http.StatusText(status)
			body.Message = http.StatusText(status)
			if msg, ok := httpErr.Message.(string); ok {
				body.Message = msg
			}
		} else {
			logger.Error("unhandled error", slog.Any("error", err))
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Error("failed to write error response", slog.Any("error", writeErr))
		}
	}
}
