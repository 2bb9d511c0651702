// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package models

import "time"

// FederatedCredential links a local user to one external OAuth identity.
// The (provider, subject) pair is unique across the table.
type FederatedCredential struct { //nolint:govet // fieldalignment: readability over optimization
	ID           string     `db:"id" json:"id"`
	UserID       string     `db:"user_id" json:"user_id"`
	Provider     string     `db:"provider" json:"provider"`
	Subject      string     `db:"subject" json:"subject"`
	AccessToken  *string    `db:"access_token" json:"-"`
	RefreshToken *string    `db:"refresh_token" json:"-"`
	ExpiresAt    *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
