// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"

	"github.com/99yash/eptesicus/internal/apperror"
	"github.com/99yash/eptesicus/internal/models"
	"github.com/99yash/eptesicus/internal/repository"
	"github.com/99yash/eptesicus/internal/services/username"
	"github.com/labstack/echo/v4"
)

type currentUserResponse struct {
	*models.User
	ConnectedAccounts []string `json:"connected_accounts"`
}

// CurrentUser returns the authenticated user's profile together with
// the OAuth providers linked to it.
func (h *Handlers) CurrentUser(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.repo.GetUserByID(ctx, userID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return apperror.Internal("Failed to load user", err)
	}

	creds, err := h.repo.ListFederatedCredentialsByUser(ctx, user.ID)
	if err != nil {
		return apperror.Internal("Failed to load linked accounts", err)
	}
	providers := make([]string, 0, len(creds))
	for _, cred := range creds {
		providers = append(providers, cred.Provider)
	}

	return c.JSON(http.StatusOK, currentUserResponse{User: user, ConnectedAccounts: providers})
}

type updateUsernameRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
}

// UpdateUsername changes the caller's handle.
func (h *Handlers) UpdateUsername(c echo.Context) error {
	var req updateUsernameRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	handle := username.Normalize(req.Username)
	if !username.Valid(handle) {
		return apperror.BadRequest("Invalid username")
	}
	if username.Reserved(handle) {
		return apperror.BadRequest("Username already taken")
	}

	user, err := h.repo.UpdateUsername(c.Request().Context(), userID(c), handle)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return apperror.BadRequest("Username already taken")
		}
		return apperror.Internal("Failed to update username", err)
	}
	return c.JSON(http.StatusOK, user)
}

// CheckUsername is the public availability probe used while typing.
func (h *Handlers) CheckUsername(c echo.Context) error {
	handle := username.Normalize(c.Param("username"))

	available := username.Valid(handle) && !username.Reserved(handle)
	if available {
		taken, err := h.repo.UsernameExists(c.Request().Context(), handle)
		if err != nil {
			return apperror.Internal("Failed to check username", err)
		}
		available = !taken
	}

	return c.JSON(http.StatusOK, map[string]any{
		"username":  handle,
		"available": available,
	})
}
