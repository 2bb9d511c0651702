// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/99yash/eptesicus/internal/models"
)

// CreateVerificationCode inserts a code row for an email. The schema
// allows at most one row per email; a second insert returns ErrDuplicate.
func (r *Repository) CreateVerificationCode(ctx context.Context, email, userID, code string, expiresAt time.Time) (*models.VerificationCode, error) {
	row := &models.VerificationCode{
		ID:        newID(),
		Email:     email,
		UserID:    userID,
		Code:      code,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO email_verification_codes (id, email, user_id, code, expires_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		row.ID, row.Email, row.UserID, row.Code, row.ExpiresAt, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return nil, wrapError(err)
	}
	return row, nil
}

// GetVerificationCodeByEmail retrieves the live-or-expired code row for an email.
func (r *Repository) GetVerificationCodeByEmail(ctx context.Context, email string) (*models.VerificationCode, error) {
	var row models.VerificationCode
	err := r.db.GetContext(ctx, &row,
		`SELECT * FROM email_verification_codes WHERE email = ?`, email)
	if err != nil {
		return nil, wrapError(err)
	}
	return &row, nil
}

// GetVerificationCode retrieves a row by exact (email, code) match.
func (r *Repository) GetVerificationCode(ctx context.Context, email, code string) (*models.VerificationCode, error) {
	var row models.VerificationCode
	err := r.db.GetContext(ctx, &row,
		`SELECT * FROM email_verification_codes WHERE email = ? AND code = ?`, email, code)
	if err != nil {
		return nil, wrapError(err)
	}
	return &row, nil
}

// DeleteVerificationCodeByEmail deletes the code row for an email, if any.
func (r *Repository) DeleteVerificationCodeByEmail(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM email_verification_codes WHERE email = ?`, email)
	return wrapError(err)
}
