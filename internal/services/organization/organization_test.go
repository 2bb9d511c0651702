// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package organization_test

import (
	"context"
	"testing"

	"github.com/99yash/eptesicus/internal/apperror"
	"github.com/99yash/eptesicus/internal/services/organization"
	"github.com/99yash/eptesicus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := organization.NewService(repo)
	ctx := context.Background()

	alice := testutil.NewTestUser(t, repo, "alice@example.com", "alice")

	org, err := svc.Create(ctx, alice.ID, "acme")

	require.NoError(t, err)
	assert.Equal(t, "acme", org.Name)

	member, err := repo.IsOrganizationMember(ctx, alice.ID, org.ID)
	require.NoError(t, err)
	assert.True(t, member, "creator joins automatically")
}

func TestCreate_NameConflict(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := organization.NewService(repo)
	ctx := context.Background()

	alice := testutil.NewTestUser(t, repo, "alice@example.com", "alice")
	bob := testutil.NewTestUser(t, repo, "bob@example.com", "bob")

	_, err := svc.Create(ctx, alice.ID, "acme")
	require.NoError(t, err)

	_, err = svc.Create(ctx, bob.ID, "acme")

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
	assert.Equal(t, "Organization with this name already exists", appErr.Message)
}

func TestListForUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := organization.NewService(repo)
	ctx := context.Background()

	alice := testutil.NewTestUser(t, repo, "alice@example.com", "alice")
	bob := testutil.NewTestUser(t, repo, "bob@example.com", "bob")

	_, err := svc.Create(ctx, alice.ID, "acme")
	require.NoError(t, err)

	orgs, err := svc.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, orgs, 1)

	orgs, err = svc.ListForUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, orgs)
}
