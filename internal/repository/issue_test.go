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

func newTestIssue(t *testing.T, repo *repository.Repository, title, userID, orgID string) *models.Issue {
	t.Helper()
	status := models.StatusTodo
	priority := models.PriorityMedium
	issue, err := repo.CreateIssue(context.Background(), &models.Issue{
		Title:          title,
		UserID:         userID,
		OrganizationID: orgID,
		Status:         &status,
		Priority:       &priority,
	})
	require.NoError(t, err)
	return issue
}

func TestCreateIssue(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	alice := testutil.NewTestUser(t, repo, "alice@example.com", "alice")
	org := testutil.NewTestOrganization(t, repo, "acme", alice.ID)

	issue := newTestIssue(t, repo, "fix login", alice.ID, org.ID)
	assert.NotEmpty(t, issue.ID)

	got, err := repo.GetIssueByID(context.Background(), issue.ID)
	require.NoError(t, err)
	assert.Equal(t, "fix login", got.Title)
}

func TestListIssues_Filter(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	alice := testutil.NewTestUser(t, repo, "alice@example.com", "alice")
	bob := testutil.NewTestUser(t, repo, "bob@example.com", "bob")
	acme := testutil.NewTestOrganization(t, repo, "acme", alice.ID)
	globex := testutil.NewTestOrganization(t, repo, "globex", bob.ID)

	newTestIssue(t, repo, "acme issue", alice.ID, acme.ID)
	newTestIssue(t, repo, "globex issue", bob.ID, globex.ID)

	issues, err := repo.ListIssues(ctx, repository.IssueFilter{OrganizationID: acme.ID})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "acme issue", issues[0].Title)

	issues, err = repo.ListIssues(ctx, repository.IssueFilter{UserID: bob.ID})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "globex issue", issues[0].Title)
}

func TestUpdateIssue(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	alice := testutil.NewTestUser(t, repo, "alice@example.com", "alice")
	org := testutil.NewTestOrganization(t, repo, "acme", alice.ID)
	issue := newTestIssue(t, repo, "fix login", alice.ID, org.ID)

	status := models.StatusDone
	updated, err := repo.UpdateIssue(ctx, issue.ID, repository.IssuePatch{Status: &status})

	require.NoError(t, err)
	require.NotNil(t, updated.Status)
	assert.Equal(t, models.StatusDone, *updated.Status)
	assert.Equal(t, "fix login", updated.Title)
}

func TestUpdateIssue_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	title := "new title"
	_, err := repo.UpdateIssue(context.Background(), "missing", repository.IssuePatch{Title: &title})

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteIssue(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	alice := testutil.NewTestUser(t, repo, "alice@example.com", "alice")
	org := testutil.NewTestOrganization(t, repo, "acme", alice.ID)
	issue := newTestIssue(t, repo, "fix login", alice.ID, org.ID)

	require.NoError(t, repo.DeleteIssue(ctx, issue.ID))

	_, err := repo.GetIssueByID(ctx, issue.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, repo.DeleteIssue(ctx, issue.ID), repository.ErrNotFound)
}
