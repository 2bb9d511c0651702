// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/99yash/eptesicus/internal/apperror"
	"github.com/99yash/eptesicus/internal/models"
	"github.com/99yash/eptesicus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIssue(t *testing.T) {
	f := newFixture(t)
	alice := testutil.NewTestUser(t, f.repo, "alice@example.com", "alice")
	org := testutil.NewTestOrganization(t, f.repo, "acme", alice.ID)

	c, rec := f.authedRequest(http.MethodPost, "/issues",
		`{"title":"fix login","organization_id":"`+org.ID+`","status":"todo","priority":"high"}`,
		alice.ID)
	require.NoError(t, f.h.CreateIssue(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var issue models.Issue
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &issue))
	assert.Equal(t, "fix login", issue.Title)
	assert.Equal(t, alice.ID, issue.UserID)
}

func TestCreateIssue_NotAMember(t *testing.T) {
	f := newFixture(t)
	alice := testutil.NewTestUser(t, f.repo, "alice@example.com", "alice")
	bob := testutil.NewTestUser(t, f.repo, "bob@example.com", "bob")
	org := testutil.NewTestOrganization(t, f.repo, "acme", alice.ID)

	c, _ := f.authedRequest(http.MethodPost, "/issues",
		`{"title":"sneaky","organization_id":"`+org.ID+`"}`, bob.ID)
	err := f.h.CreateIssue(c)

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestCreateIssue_InvalidStatus(t *testing.T) {
	f := newFixture(t)
	alice := testutil.NewTestUser(t, f.repo, "alice@example.com", "alice")
	org := testutil.NewTestOrganization(t, f.repo, "acme", alice.ID)

	c, _ := f.authedRequest(http.MethodPost, "/issues",
		`{"title":"x","organization_id":"`+org.ID+`","status":"bogus"}`, alice.ID)
	err := f.h.CreateIssue(c)

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBadRequest, appErr.Code)
}

func TestUpdateIssue_EmptyPatch(t *testing.T) {
	f := newFixture(t)
	alice := testutil.NewTestUser(t, f.repo, "alice@example.com", "alice")

	c, _ := f.authedRequest(http.MethodPatch, "/issues/some-id", `{}`, alice.ID)
	c.SetParamNames("id")
	c.SetParamValues("some-id")
	err := f.h.UpdateIssue(c)

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBadRequest, appErr.Code)
	assert.Equal(t, "No fields to update", appErr.Message)
}

func TestListIssues_FilterByOrganization(t *testing.T) {
	f := newFixture(t)
	alice := testutil.NewTestUser(t, f.repo, "alice@example.com", "alice")
	acme := testutil.NewTestOrganization(t, f.repo, "acme", alice.ID)
	globex := testutil.NewTestOrganization(t, f.repo, "globex", alice.ID)

	for _, org := range []string{acme.ID, globex.ID} {
		c, _ := f.authedRequest(http.MethodPost, "/issues",
			`{"title":"task","organization_id":"`+org+`"}`, alice.ID)
		require.NoError(t, f.h.CreateIssue(c))
	}

	c, rec := f.authedRequest(http.MethodGet, "/issues?organization_id="+acme.ID, "", alice.ID)
	require.NoError(t, f.h.ListIssues(c))

	var issues []models.Issue
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &issues))
	require.Len(t, issues, 1)
	assert.Equal(t, acme.ID, issues[0].OrganizationID)
}

func TestCreateOrganization_Conflict(t *testing.T) {
	f := newFixture(t)
	alice := testutil.NewTestUser(t, f.repo, "alice@example.com", "alice")
	testutil.NewTestOrganization(t, f.repo, "acme", alice.ID)

	c, _ := f.authedRequest(http.MethodPost, "/organizations", `{"name":"acme"}`, alice.ID)
	err := f.h.CreateOrganization(c)

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestListOrganizations(t *testing.T) {
	f := newFixture(t)
	alice := testutil.NewTestUser(t, f.repo, "alice@example.com", "alice")
	testutil.NewTestOrganization(t, f.repo, "acme", alice.ID)

	c, rec := f.authedRequest(http.MethodGet, "/organizations", "", alice.ID)
	require.NoError(t, f.h.ListOrganizations(c))

	var orgs []models.Organization
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orgs))
	require.Len(t, orgs, 1)
	assert.Equal(t, "acme", orgs[0].Name)
}
