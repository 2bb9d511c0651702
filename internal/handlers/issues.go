// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"github.com/99yash/eptesicus/internal/apperror"
	"github.com/99yash/eptesicus/internal/models"
	"github.com/99yash/eptesicus/internal/repository"
	"github.com/labstack/echo/v4"
)

type createIssueRequest struct {
	Title          string  `json:"title" validate:"required,min=1,max=200"`
	Description    *string `json:"description" validate:"omitempty,max=10000"`
	OrganizationID string  `json:"organization_id" validate:"required"`
	AssigneeID     *string `json:"assignee_id"`
	Status         *string `json:"status"`
	Priority       *string `json:"priority"`
}

// CreateIssue files a new issue.
func (h *Handlers) CreateIssue(c echo.Context) error {
	var req createIssueRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	issue := &models.Issue{
		Title:          req.Title,
		Description:    req.Description,
		OrganizationID: req.OrganizationID,
		AssigneeID:     req.AssigneeID,
	}
	if req.Status != nil {
		status := models.IssueStatus(*req.Status)
		if !models.ValidStatus(status) {
			return apperror.BadRequest("Invalid status")
		}
		issue.Status = &status
	}
	if req.Priority != nil {
		priority := models.IssuePriority(*req.Priority)
		if !models.ValidPriority(priority) {
			return apperror.BadRequest("Invalid priority")
		}
		issue.Priority = &priority
	}

	created, err := h.issues.Create(c.Request().Context(), userID(c), issue)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// ListIssues returns issues, optionally narrowed by query filters.
func (h *Handlers) ListIssues(c echo.Context) error {
	filter := repository.IssueFilter{
		OrganizationID: c.QueryParam("organization_id"),
		UserID:         c.QueryParam("user_id"),
	}

	issues, err := h.issues.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issues)
}

// GetIssue returns one issue.
func (h *Handlers) GetIssue(c echo.Context) error {
	issue, err := h.issues.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issue)
}

type updateIssueRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=10000"`
	AssigneeID  *string `json:"assignee_id"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}

// UpdateIssue applies a partial update.
func (h *Handlers) UpdateIssue(c echo.Context) error {
	var req updateIssueRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	patch := repository.IssuePatch{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
	}
	if req.Status != nil {
		status := models.IssueStatus(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := models.IssuePriority(*req.Priority)
		patch.Priority = &priority
	}

	issue, err := h.issues.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issue)
}

// DeleteIssue removes an issue.
func (h *Handlers) DeleteIssue(c echo.Context) error {
	if err := h.issues.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
