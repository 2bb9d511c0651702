// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package models

import "time"

type Organization struct { //nolint:govet // fieldalignment: readability over optimization
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	LogoURL   *string   `db:"logo_url" json:"logo_url,omitempty"`
	Bio       *string   `db:"bio" json:"bio,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// OrganizationMember links a user to an organization.
type OrganizationMember struct {
	UserID         string    `db:"user_id" json:"user_id"`
	OrganizationID string    `db:"organization_id" json:"organization_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
