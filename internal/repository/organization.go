// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/99yash/eptesicus/internal/models"
)

// CreateOrganization inserts an organization row. A name collision
// returns ErrDuplicate.
func (r *Repository) CreateOrganization(ctx context.Context, org *models.Organization) (*models.Organization, error) {
	org.ID = newID()
	now := time.Now().UTC()
	org.CreatedAt = now
	org.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO organizations (id, name, logo_url, bio, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		org.ID, org.Name, org.LogoURL, org.Bio, org.CreatedAt, org.UpdatedAt)
	if err != nil {
		return nil, wrapError(err)
	}
	return org, nil
}

// GetOrganizationByName retrieves an organization by its unique name.
func (r *Repository) GetOrganizationByName(ctx context.Context, name string) (*models.Organization, error) {
	var org models.Organization
	err := r.db.GetContext(ctx, &org, `SELECT * FROM organizations WHERE name = ?`, name)
	if err != nil {
		return nil, wrapError(err)
	}
	return &org, nil
}

// AddOrganizationMember links a user to an organization.
func (r *Repository) AddOrganizationMember(ctx context.Context, userID, organizationID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO organization_members (user_id, organization_id, created_at)
		 VALUES (?, ?, ?)`,
		userID, organizationID, time.Now().UTC())
	return wrapError(err)
}

// IsOrganizationMember checks whether a user belongs to an organization.
func (r *Repository) IsOrganizationMember(ctx context.Context, userID, organizationID string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT count(*) FROM organization_members WHERE user_id = ? AND organization_id = ?`,
		userID, organizationID)
	if err != nil {
		return false, wrapError(err)
	}
	return count > 0, nil
}

// ListOrganizationsForUser returns the organizations a user belongs to,
// oldest membership first.
func (r *Repository) ListOrganizationsForUser(ctx context.Context, userID string) ([]models.Organization, error) {
	var orgs []models.Organization
	err := r.db.SelectContext(ctx, &orgs,
		`SELECT o.* FROM organizations o
		 JOIN organization_members m ON m.organization_id = o.id
		 WHERE m.user_id = ?
		 ORDER BY m.created_at`, userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return orgs, nil
}
