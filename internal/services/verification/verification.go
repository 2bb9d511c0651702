// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

// Package verification manages the short-lived email verification codes
// that complete the signup and login flows.
package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/99yash/eptesicus/internal/apperror"
	"github.com/99yash/eptesicus/internal/models"
	"github.com/99yash/eptesicus/internal/repository"
	"github.com/99yash/eptesicus/internal/services/email"
)

// Service issues and consumes verification codes. At most one code is
// live per email at a time.
type Service struct {
	repo    *repository.Repository
	sender  email.Sender
	codeTTL time.Duration
	now     func() time.Time
}

// NewService creates a verification service.
func NewService(repo *repository.Repository, sender email.Sender, codeTTL time.Duration) *Service {
	return &Service{repo: repo, sender: sender, codeTTL: codeTTL, now: time.Now}
}

// Issue makes sure a live code exists for the email and mails it. A
// still-valid code is reused unchanged; an expired one is deleted and
// replaced. The code is returned for tests, never for HTTP responses.
func (s *Service) Issue(ctx context.Context, user *models.User) (string, error) {
	code, err := s.ensureCode(ctx, user)
	if err != nil {
		return "", err
	}

	body := email.VerificationBody(user.Name, code)
	if err := s.sender.Send(ctx, user.Email, email.VerificationSubject, body); err != nil {
		return "", apperror.Internal("Failed to send verification email", err)
	}
	return code, nil
}

func (s *Service) ensureCode(ctx context.Context, user *models.User) (string, error) {
	existing, err := s.repo.GetVerificationCodeByEmail(ctx, user.Email)
	switch {
	case err == nil:
		if !existing.Expired(s.now()) {
			return existing.Code, nil
		}
		if err := s.repo.DeleteVerificationCodeByEmail(ctx, user.Email); err != nil {
			return "", apperror.Internal("Failed to replace verification code", err)
		}
	case errors.Is(err, repository.ErrNotFound):
		// fall through to create
	default:
		return "", apperror.Internal("Failed to look up verification code", err)
	}

	return s.createCode(ctx, user)
}

func (s *Service) createCode(ctx context.Context, user *models.User) (string, error) {
	code, err := randomCode()
	if err != nil {
		return "", apperror.Internal("Failed to generate verification code", err)
	}
	row, err := s.repo.CreateVerificationCode(ctx, user.Email, user.ID, code, s.now().Add(s.codeTTL))
	if err != nil {
		// A concurrent Issue for the same email can win the insert.
		// Re-requesting a code is idempotent, so hand out theirs.
		if errors.Is(err, repository.ErrDuplicate) {
			if existing, lookErr := s.repo.GetVerificationCodeByEmail(ctx, user.Email); lookErr == nil {
				return existing.Code, nil
			}
		}
		return "", apperror.Internal("Failed to store verification code", err)
	}
	return row.Code, nil
}

// Consume validates a submitted code. An unknown (email, code) pair is
// NotFound, an expired code is BadRequest; on success the code row is
// deleted and the owning user returned. The email is normalized the
// same way signup normalizes it, so casing differences between the two
// requests cannot strand a code.
func (s *Service) Consume(ctx context.Context, emailAddr, code string) (*models.User, error) {
	addr := strings.ToLower(strings.TrimSpace(emailAddr))

	row, err := s.repo.GetVerificationCode(ctx, addr, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Invalid verification code")
		}
		return nil, apperror.Internal("Failed to look up verification code", err)
	}

	if row.Expired(s.now()) {
		return nil, apperror.BadRequest("Verification code expired")
	}

	if err := s.repo.DeleteVerificationCodeByEmail(ctx, addr); err != nil {
		return nil, apperror.Internal("Failed to consume verification code", err)
	}

	user, err := s.repo.GetUserByEmail(ctx, addr)
	if err != nil {
		return nil, apperror.Internal("Failed to load user", err)
	}
	return user, nil
}

// randomCode produces 8 random decimal digits. Stored and compared as
// text so leading zeros survive.
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%08d", n.Int64()), nil
}
