// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

// Package issue implements issue CRUD with organization membership
// checks.
package issue

import (
	"context"
	"errors"

	"github.com/99yash/eptesicus/internal/apperror"
	"github.com/99yash/eptesicus/internal/models"
	"github.com/99yash/eptesicus/internal/repository"
)

// Service handles issue CRUD.
type Service struct {
	repo *repository.Repository
}

// NewService creates an issue service.
func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Create files an issue in an organization the caller belongs to.
func (s *Service) Create(ctx context.Context, callerID string, issue *models.Issue) (*models.Issue, error) {
	member, err := s.repo.IsOrganizationMember(ctx, callerID, issue.OrganizationID)
	if err != nil {
		return nil, apperror.Internal("Failed to check membership", err)
	}
	if !member {
		return nil, apperror.Forbidden("You are not a member of this organization")
	}

	issue.UserID = callerID
	created, err := s.repo.CreateIssue(ctx, issue)
	if err != nil {
		return nil, apperror.Internal("Failed to create issue", err)
	}
	return created, nil
}

// Get returns one issue.
func (s *Service) Get(ctx context.Context, id string) (*models.Issue, error) {
	issue, err := s.repo.GetIssueByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Issue not found")
		}
		return nil, apperror.Internal("Failed to load issue", err)
	}
	return issue, nil
}

// List returns issues matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter repository.IssueFilter) ([]models.Issue, error) {
	issues, err := s.repo.ListIssues(ctx, filter)
	if err != nil {
		return nil, apperror.Internal("Failed to list issues", err)
	}
	return issues, nil
}

// Update applies a partial update. An empty patch is rejected rather
// than silently bumping updated_at.
func (s *Service) Update(ctx context.Context, id string, patch repository.IssuePatch) (*models.Issue, error) {
	if patch.Empty() {
		return nil, apperror.BadRequest("No fields to update")
	}
	if patch.Status != nil && !models.ValidStatus(*patch.Status) {
		return nil, apperror.BadRequest("Invalid status")
	}
	if patch.Priority != nil && !models.ValidPriority(*patch.Priority) {
		return nil, apperror.BadRequest("Invalid priority")
	}

	issue, err := s.repo.UpdateIssue(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Issue not found")
		}
		return nil, apperror.Internal("Failed to update issue", err)
	}
	return issue, nil
}

// Delete removes an issue.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.repo.DeleteIssue(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("Issue not found")
		}
		return apperror.Internal("Failed to delete issue", err)
	}
	return nil
}
