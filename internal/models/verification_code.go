// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package models

import "time"

// VerificationCode is a short-lived proof-of-mailbox-ownership value.
// At most one row exists per email; the code is stored as text so
// leading zeros survive.
type VerificationCode struct { //nolint:govet // fieldalignment: readability over optimization
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	UserID    string    `db:"user_id" json:"user_id"`
	Code      string    `db:"code" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Expired reports whether the code is past its expiry at the given time.
func (c *VerificationCode) Expired(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}
