// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

// Package organization manages organizations and their memberships.
package organization

import (
	"context"
	"errors"

	"github.com/99yash/eptesicus/internal/apperror"
	"github.com/99yash/eptesicus/internal/models"
	"github.com/99yash/eptesicus/internal/repository"
)

// Service handles organization CRUD and membership.
type Service struct {
	repo *repository.Repository
}

// NewService creates an organization service.
func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Create makes a new organization and links the creator as its first
// member. Names are globally unique.
func (s *Service) Create(ctx context.Context, creatorID, name string) (*models.Organization, error) {
	if _, err := s.repo.GetOrganizationByName(ctx, name); err == nil {
		return nil, apperror.Conflict("Organization with this name already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Internal("Failed to look up organization", err)
	}

	// The unique constraint still backs the check under concurrency.
	org, err := s.repo.CreateOrganization(ctx, &models.Organization{Name: name})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("Organization with this name already exists")
		}
		return nil, apperror.Internal("Failed to create organization", err)
	}

	if err := s.repo.AddOrganizationMember(ctx, creatorID, org.ID); err != nil {
		return nil, apperror.Internal("Failed to add organization member", err)
	}
	return org, nil
}

// ListForUser returns the organizations the user belongs to.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]models.Organization, error) {
	orgs, err := s.repo.ListOrganizationsForUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("Failed to list organizations", err)
	}
	return orgs, nil
}
