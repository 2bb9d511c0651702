// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

// Package account resolves identity assertions to user rows. It is the
// single place where "this email wants in" or "this OAuth identity
// wants in" turns into find-or-create logic, so the provider-conflict
// and username rules live here and nowhere else.
package account

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/99yash/eptesicus/internal/apperror"
	"github.com/99yash/eptesicus/internal/models"
	"github.com/99yash/eptesicus/internal/repository"
	"github.com/99yash/eptesicus/internal/services/username"
	"github.com/99yash/eptesicus/internal/services/verification"
)

// EmailAssertion is an email login/signup request. Name and Username
// are optional; blanks are filled from the email and the allocator.
type EmailAssertion struct {
	Email    string
	Name     string
	Username string
}

// OAuthAssertion is a verified identity from an OAuth provider. The
// token fields are stored on the federated credential, not the user.
type OAuthAssertion struct {
	Provider     models.AuthProvider
	Subject      string
	Email        string
	Name         string
	ImageURL     string
	AccessToken  string
	RefreshToken string
	TokenExpiry  *time.Time
}

// Service resolves assertions against the user store.
type Service struct {
	repo      *repository.Repository
	verifier  *verification.Service
	usernames *username.Allocator
	logger    *slog.Logger
}

// NewService creates an account resolver.
func NewService(repo *repository.Repository, verifier *verification.Service, usernames *username.Allocator, logger *slog.Logger) *Service {
	return &Service{repo: repo, verifier: verifier, usernames: usernames, logger: logger}
}

// ResolveEmail finds or creates the account for an email assertion and
// kicks off code verification. An account registered through an OAuth
// provider cannot be entered through the email flow.
func (s *Service) ResolveEmail(ctx context.Context, a EmailAssertion) (*models.User, bool, error) {
	addr := strings.ToLower(strings.TrimSpace(a.Email))

	user, err := s.repo.GetUserByEmail(ctx, addr)
	switch {
	case err == nil:
		if user.AuthProvider != models.ProviderEmail {
			return nil, false, apperror.Conflict("Email already exists with a different sign-in method")
		}
		if _, err := s.verifier.Issue(ctx, user); err != nil {
			return nil, false, err
		}
		return user, false, nil
	case errors.Is(err, repository.ErrNotFound):
		// fall through to create
	default:
		return nil, false, apperror.Internal("Failed to look up user", err)
	}

	handle, err := s.usernameFor(ctx, a.Username, addr)
	if err != nil {
		return nil, false, err
	}

	name := a.Name
	if name == "" {
		name = localPart(addr)
	}

	user, err = s.repo.CreateUser(ctx, &models.User{
		Email:        addr,
		Name:         name,
		Username:     handle,
		AuthProvider: models.ProviderEmail,
	})
	if err != nil {
		// A concurrent signup can win the race between our checks and
		// this insert; surface it as a typed error, not a 500.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, false, s.duplicateError(ctx, handle)
		}
		return nil, false, apperror.Internal("Failed to create user", err)
	}

	s.logger.Info("user created",
		slog.String("user_id", user.ID), slog.String("provider", string(models.ProviderEmail)))

	if _, err := s.verifier.Issue(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// ResolveOAuth finds or creates the account for a verified OAuth
// identity and links the federated credential. Verification is skipped:
// the provider already vouched for the mailbox.
func (s *Service) ResolveOAuth(ctx context.Context, a OAuthAssertion) (*models.User, bool, error) {
	cred, err := s.repo.GetFederatedCredential(ctx, string(a.Provider), a.Subject)
	switch {
	case err == nil:
		user, err := s.repo.GetUserByID(ctx, cred.UserID)
		if err != nil {
			return nil, false, apperror.Internal("Failed to load user", err)
		}
		if err := s.linkCredential(ctx, user.ID, a); err != nil {
			return nil, false, err
		}
		return user, false, nil
	case errors.Is(err, repository.ErrNotFound):
		// fall through to email lookup
	default:
		return nil, false, apperror.Internal("Failed to look up credential", err)
	}

	addr := strings.ToLower(strings.TrimSpace(a.Email))

	user, err := s.repo.GetUserByEmail(ctx, addr)
	switch {
	case err == nil:
		if user.AuthProvider != a.Provider {
			return nil, false, apperror.Conflict("Email already exists with a different sign-in method")
		}
		if err := s.linkCredential(ctx, user.ID, a); err != nil {
			return nil, false, err
		}
		return user, false, nil
	case errors.Is(err, repository.ErrNotFound):
		// fall through to create
	default:
		return nil, false, apperror.Internal("Failed to look up user", err)
	}

	seed := a.Name
	if seed == "" {
		seed = localPart(addr)
	}

	newUser := &models.User{
		Email:        addr,
		Name:         seed,
		Username:     s.usernames.Allocate(ctx, seed),
		AuthProvider: a.Provider,
	}
	if a.ImageURL != "" {
		newUser.ImageURL = &a.ImageURL
	}

	user, err = s.repo.CreateUser(ctx, newUser)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, false, s.duplicateError(ctx, newUser.Username)
		}
		return nil, false, apperror.Internal("Failed to create user", err)
	}

	s.logger.Info("user created",
		slog.String("user_id", user.ID), slog.String("provider", string(a.Provider)))

	if err := s.linkCredential(ctx, user.ID, a); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *Service) linkCredential(ctx context.Context, userID string, a OAuthAssertion) error {
	cred := &models.FederatedCredential{
		UserID:    userID,
		Provider:  string(a.Provider),
		Subject:   a.Subject,
		ExpiresAt: a.TokenExpiry,
	}
	if a.AccessToken != "" {
		cred.AccessToken = &a.AccessToken
	}
	if a.RefreshToken != "" {
		cred.RefreshToken = &a.RefreshToken
	}

	if err := s.repo.UpsertFederatedCredential(ctx, cred); err != nil {
		return apperror.Internal("Failed to link credential", err)
	}
	return nil
}

// duplicateError decides which unique constraint a losing insert hit.
// A concurrent claim on the handle means the caller should pick
// another username; otherwise the email row itself was racing.
func (s *Service) duplicateError(ctx context.Context, handle string) error {
	if _, err := s.repo.GetUserByUsername(ctx, handle); err == nil {
		return apperror.BadRequest("Username already taken")
	}
	return apperror.Conflict("Username or email already taken")
}

// usernameFor validates a caller-supplied handle or allocates one.
func (s *Service) usernameFor(ctx context.Context, supplied, addr string) (string, error) {
	if supplied == "" {
		return s.usernames.Allocate(ctx, localPart(addr)), nil
	}

	handle := username.Normalize(supplied)
	if !username.Valid(handle) {
		return "", apperror.BadRequest("Invalid username")
	}
	if username.Reserved(handle) {
		return "", apperror.BadRequest("Username already taken")
	}
	taken, err := s.repo.UsernameExists(ctx, handle)
	if err != nil {
		return "", apperror.Internal("Failed to check username", err)
	}
	if taken {
		return "", apperror.BadRequest("Username already taken")
	}
	return handle, nil
}

func localPart(addr string) string {
	if i := strings.IndexByte(addr, '@'); i > 0 {
		return addr[:i]
	}
	return addr
}
