// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

// Package middleware holds the HTTP middleware that is specific to this
// application; generic concerns come from echo's own middleware.
package middleware

import (
	"github.com/99yash/eptesicus/internal/apperror"
	"github.com/99yash/eptesicus/internal/ctxkeys"
	"github.com/99yash/eptesicus/internal/services/token"
	"github.com/labstack/echo/v4"
)

// SessionGate authenticates requests from the token cookie. The gate
// only opens the sealed token; it never touches the database, so an
// authenticated request costs no extra I/O. The user id lands in the
// request context under ctxkeys.UserID.
func SessionGate(codec *token.Codec, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return apperror.Unauthorized("No token provided. Please login again.")
			}

			res, err := codec.Verify(cookie.Value)
			if err != nil {
				return apperror.Unauthorized("Invalid token. Please login again.")
			}
			if res.Expired {
				return apperror.Forbidden("Token expired. Please login again.")
			}

			ctx := c.Request().Context()
			c.SetRequest(c.Request().WithContext(ctxkeys.WithUserID(ctx, res.UserID)))
			return next(c)
		}
	}
}
