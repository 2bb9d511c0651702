// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

// Package handlers contains the HTTP handlers. They bind and validate
// requests, call services, and shape responses; business rules live in
// the services.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/99yash/eptesicus/internal/apperror"
	"github.com/99yash/eptesicus/internal/config"
	"github.com/99yash/eptesicus/internal/ctxkeys"
	"github.com/99yash/eptesicus/internal/repository"
	"github.com/99yash/eptesicus/internal/services/account"
	"github.com/99yash/eptesicus/internal/services/issue"
	"github.com/99yash/eptesicus/internal/services/oauth"
	"github.com/99yash/eptesicus/internal/services/organization"
	"github.com/99yash/eptesicus/internal/services/token"
	"github.com/99yash/eptesicus/internal/services/verification"
	"github.com/labstack/echo/v4"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	cfg           *config.Config
	repo          *repository.Repository
	tokens        *token.Codec
	accounts      *account.Service
	verifier      *verification.Service
	organizations *organization.Service
	issues        *issue.Service
	providers     oauth.Registry
	logger        *slog.Logger
}

// New creates a new Handlers instance.
func New(
	cfg *config.Config,
	repo *repository.Repository,
	tokens *token.Codec,
	accounts *account.Service,
	verifier *verification.Service,
	organizations *organization.Service,
	issues *issue.Service,
	providers oauth.Registry,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		cfg:           cfg,
		repo:          repo,
		tokens:        tokens,
		accounts:      accounts,
		verifier:      verifier,
		organizations: organizations,
		issues:        issues,
		providers:     providers,
		logger:        logger,
	}
}

// Health reports whether the service can reach its database.
func (h *Handlers) Health(c echo.Context) error {
	if err := h.repo.DB().PingContext(c.Request().Context()); err != nil {
		return apperror.Internal("Database unavailable", err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// userID returns the authenticated user's id. Routes behind the session
// gate always have one.
func userID(c echo.Context) string {
	id, _ := ctxkeys.UserIDFrom(c.Request().Context())
	return id
}
