// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type createOrganizationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CreateOrganization makes a new organization owned by the caller.
func (h *Handlers) CreateOrganization(c echo.Context) error {
	var req createOrganizationRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	org, err := h.organizations.Create(c.Request().Context(), userID(c), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, org)
}

// ListOrganizations returns the caller's organizations.
func (h *Handlers) ListOrganizations(c echo.Context) error {
	orgs, err := h.organizations.ListForUser(c.Request().Context(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orgs)
}
