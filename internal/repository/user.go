// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/99yash/eptesicus/internal/models"
)

// CreateUser inserts a new user row. The id and timestamps are assigned
// here; a unique-constraint race on email or username returns ErrDuplicate.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = newID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, username, image_url, bio, auth_provider, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.Name, user.Username, user.ImageURL, user.Bio,
		user.AuthProvider, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return nil, wrapError(err)
	}
	return user, nil
}

// GetUserByID retrieves a user by id.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = ?`, email)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE username = ?`, username)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// UsernameExists checks if a user with the given username exists.
func (r *Repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT count(*) FROM users WHERE username = ?`, username)
	if err != nil {
		return false, wrapError(err)
	}
	return count > 0, nil
}

// UpdateUsername changes a user's username. A collision with another
// user's handle returns ErrDuplicate.
func (r *Repository) UpdateUsername(ctx context.Context, id, username string) (*models.User, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET username = ?, updated_at = ? WHERE id = ?`,
		username, time.Now().UTC(), id)
	if err != nil {
		return nil, wrapError(err)
	}
	return r.GetUserByID(ctx, id)
}
