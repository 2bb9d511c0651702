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

func TestUpsertFederatedCredential(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser(t, repo, "alice@example.com", "alice")

	token := "tok-1"
	err := repo.UpsertFederatedCredential(ctx, &models.FederatedCredential{
		UserID:      user.ID,
		Provider:    "GOOGLE",
		Subject:     "google-sub-1",
		AccessToken: &token,
	})
	require.NoError(t, err)

	cred, err := repo.GetFederatedCredential(ctx, "GOOGLE", "google-sub-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, cred.UserID)
	require.NotNil(t, cred.AccessToken)
	assert.Equal(t, "tok-1", *cred.AccessToken)
}

func TestUpsertFederatedCredential_RefreshesTokens(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser(t, repo, "alice@example.com", "alice")

	first := "tok-1"
	require.NoError(t, repo.UpsertFederatedCredential(ctx, &models.FederatedCredential{
		UserID:      user.ID,
		Provider:    "GOOGLE",
		Subject:     "google-sub-1",
		AccessToken: &first,
	}))

	second := "tok-2"
	require.NoError(t, repo.UpsertFederatedCredential(ctx, &models.FederatedCredential{
		UserID:      user.ID,
		Provider:    "GOOGLE",
		Subject:     "google-sub-1",
		AccessToken: &second,
	}))

	creds, err := repo.ListFederatedCredentialsByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, creds, 1)
	require.NotNil(t, creds[0].AccessToken)
	assert.Equal(t, "tok-2", *creds[0].AccessToken)
}

func TestGetFederatedCredential_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.GetFederatedCredential(context.Background(), "GITHUB", "missing")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}
