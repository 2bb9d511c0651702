// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/99yash/eptesicus/internal/apperror"
	"github.com/99yash/eptesicus/internal/models"
	"github.com/99yash/eptesicus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_CreatesUser(t *testing.T) {
	f := newFixture(t)

	c, rec := f.request(http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","name":"Alice","username":"alice"}`)

	require.NoError(t, f.h.Login(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Verification code sent")

	user, err := f.repo.GetUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestLogin_ExistingUser(t *testing.T) {
	f := newFixture(t)

	c, _ := f.request(http.MethodPost, "/auth/login", `{"email":"alice@example.com"}`)
	require.NoError(t, f.h.Login(c))

	c, rec := f.request(http.MethodPost, "/auth/login", `{"email":"alice@example.com"}`)
	require.NoError(t, f.h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User already exists")
}

func TestLogin_InvalidEmail(t *testing.T) {
	f := newFixture(t)

	c, _ := f.request(http.MethodPost, "/auth/login", `{"email":"not-an-email"}`)
	err := f.h.Login(c)

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBadRequest, appErr.Code)
}

func TestLogin_UsernameTaken(t *testing.T) {
	f := newFixture(t)
	testutil.NewTestUser(t, f.repo, "bob@example.com", "bob")

	c, _ := f.request(http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","username":"bob"}`)
	err := f.h.Login(c)

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBadRequest, appErr.Code)
	assert.Equal(t, "Username already taken", appErr.Message)
}

func TestVerifyEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, _ := f.request(http.MethodPost, "/auth/login", `{"email":"alice@example.com"}`)
	require.NoError(t, f.h.Login(c))

	row, err := f.repo.GetVerificationCodeByEmail(ctx, "alice@example.com")
	require.NoError(t, err)

	c, rec := f.request(http.MethodPost, "/auth/verify-email",
		`{"email":"alice@example.com","code":"`+row.Code+`"}`)
	require.NoError(t, f.h.VerifyEmail(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.False(t, cookie.Secure, "plain http on localhost")

	res, err := f.tokens.Verify(cookie.Value)
	require.NoError(t, err)
	assert.False(t, res.Expired)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, res.UserID, user.ID)

	// The code is gone now.
	c, _ = f.request(http.MethodPost, "/auth/verify-email",
		`{"email":"alice@example.com","code":"`+row.Code+`"}`)
	err = f.h.VerifyEmail(c)
	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
}

func TestVerifyEmail_WrongCode(t *testing.T) {
	f := newFixture(t)

	c, _ := f.request(http.MethodPost, "/auth/login", `{"email":"alice@example.com"}`)
	require.NoError(t, f.h.Login(c))

	c, _ = f.request(http.MethodPost, "/auth/verify-email",
		`{"email":"alice@example.com","code":"00000000"}`)
	err := f.h.VerifyEmail(c)

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
	assert.Equal(t, "Invalid verification code", appErr.Message)
}

func TestSignout(t *testing.T) {
	f := newFixture(t)

	c, rec := f.request(http.MethodPost, "/auth/signout", "")
	require.NoError(t, f.h.Signout(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	cookie := sessionCookie(t, rec)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}
