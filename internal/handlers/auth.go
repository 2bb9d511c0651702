// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"time"

	"github.com/99yash/eptesicus/internal/apperror"
	"github.com/99yash/eptesicus/internal/services/account"
	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"omitempty,max=100"`
	Username string `json:"username" validate:"omitempty,max=50"`
}

// Login handles email signup and login. Both paths end with a
// verification code in the caller's mailbox; an existing account is not
// an error.
func (h *Handlers) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	_, created, err := h.accounts.ResolveEmail(c.Request().Context(), account.EmailAssertion{
		Email:    req.Email,
		Name:     req.Name,
		Username: req.Username,
	})
	if err != nil {
		return err
	}

	if created {
		return c.JSON(http.StatusCreated, map[string]string{
			"message": "Verification code sent to your email",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "User already exists",
	})
}

type verifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=8,numeric"`
}

// VerifyEmail consumes a verification code and starts a session.
func (h *Handlers) VerifyEmail(c echo.Context) error {
	var req verifyEmailRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.verifier.Consume(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		return err
	}

	if err := h.setSessionCookie(c, user.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Signout clears the session cookie.
func (h *Handlers) Signout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     h.cfg.Auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure(),
		SameSite: http.SameSiteLaxMode,
	})
	return c.NoContent(http.StatusNoContent)
}

// setSessionCookie issues a token for the user and sets the auth cookie.
func (h *Handlers) setSessionCookie(c echo.Context, id string) error {
	sealed, err := h.tokens.Issue(id)
	if err != nil {
		return apperror.Internal("Failed to issue token", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cfg.Auth.CookieName,
		Value:    sealed,
		Path:     "/",
		MaxAge:   int(h.cfg.Auth.TokenTTL / time.Second),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure(),
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
