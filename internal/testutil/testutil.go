// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/99yash/eptesicus/internal/database"
	"github.com/99yash/eptesicus/internal/models"
	"github.com/99yash/eptesicus/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
)

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestUser creates a test user registered via the email flow.
func NewTestUser(t *testing.T, repo *repository.Repository, email, username string) *models.User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), &models.User{
		Email:        email,
		Name:         username,
		Username:     username,
		AuthProvider: models.ProviderEmail,
	})
	require.NoError(t, err)
	return user
}

// NewTestOrganization creates an organization with the given user as member.
func NewTestOrganization(t *testing.T, repo *repository.Repository, name, userID string) *models.Organization {
	t.Helper()
	ctx := context.Background()
	org, err := repo.CreateOrganization(ctx, &models.Organization{Name: name})
	require.NoError(t, err)
	require.NoError(t, repo.AddOrganizationMember(ctx, userID, org.ID))
	return org
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}
