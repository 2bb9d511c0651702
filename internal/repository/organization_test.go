// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"github.com/99yash/eptesicus/internal/models"
	"github.com/99yash/eptesicus/internal/repository"
	"github.com/99yash/eptesicus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrganization_DuplicateName(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	_, err := repo.CreateOrganization(ctx, &models.Organization{Name: "acme"})
	require.NoError(t, err)

	_, err = repo.CreateOrganization(ctx, &models.Organization{Name: "acme"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestOrganizationMembership(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	alice := testutil.NewTestUser(t, repo, "alice@example.com", "alice")
	bob := testutil.NewTestUser(t, repo, "bob@example.com", "bob")
	org := testutil.NewTestOrganization(t, repo, "acme", alice.ID)

	member, err := repo.IsOrganizationMember(ctx, alice.ID, org.ID)
	require.NoError(t, err)
	assert.True(t, member)

	member, err = repo.IsOrganizationMember(ctx, bob.ID, org.ID)
	require.NoError(t, err)
	assert.False(t, member)
}

func TestListOrganizationsForUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	alice := testutil.NewTestUser(t, repo, "alice@example.com", "alice")
	testutil.NewTestOrganization(t, repo, "acme", alice.ID)
	testutil.NewTestOrganization(t, repo, "globex", alice.ID)

	orgs, err := repo.ListOrganizationsForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, orgs, 2)
	assert.Equal(t, "acme", orgs[0].Name)
	assert.Equal(t, "globex", orgs[1].Name)
}
