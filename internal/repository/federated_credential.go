// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/99yash/eptesicus/internal/models"
)

// GetFederatedCredential retrieves a credential by its (provider, subject) pair.
func (r *Repository) GetFederatedCredential(ctx context.Context, provider, subject string) (*models.FederatedCredential, error) {
	var cred models.FederatedCredential
	err := r.db.GetContext(ctx, &cred,
		`SELECT * FROM federated_credentials WHERE provider = ? AND subject = ?`,
		provider, subject)
	if err != nil {
		return nil, wrapError(err)
	}
	return &cred, nil
}

// UpsertFederatedCredential links an external identity to a user. On a
// repeated login with the same (provider, subject) the token fields are
// refreshed and the owning user is left untouched.
func (r *Repository) UpsertFederatedCredential(ctx context.Context, cred *models.FederatedCredential) error {
	if cred.ID == "" {
		cred.ID = newID()
	}
	now := time.Now().UTC()
	cred.CreatedAt = now
	cred.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO federated_credentials
		     (id, user_id, provider, subject, access_token, refresh_token, expires_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (provider, subject) DO UPDATE SET
		     access_token = excluded.access_token,
		     refresh_token = excluded.refresh_token,
		     expires_at = excluded.expires_at,
		     updated_at = excluded.updated_at`,
		cred.ID, cred.UserID, cred.Provider, cred.Subject,
		cred.AccessToken, cred.RefreshToken, cred.ExpiresAt,
		cred.CreatedAt, cred.UpdatedAt)
	return wrapError(err)
}

// ListFederatedCredentialsByUser returns all external identities linked to a user.
func (r *Repository) ListFederatedCredentialsByUser(ctx context.Context, userID string) ([]models.FederatedCredential, error) {
	var creds []models.FederatedCredential
	err := r.db.SelectContext(ctx, &creds,
		`SELECT * FROM federated_credentials WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return creds, nil
}
