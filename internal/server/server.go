// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

// Package server wires the application together and runs the HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/99yash/eptesicus/internal/config"
	"github.com/99yash/eptesicus/internal/database"
	"github.com/99yash/eptesicus/internal/handlers"
	appmw "github.com/99yash/eptesicus/internal/middleware"
	"github.com/99yash/eptesicus/internal/repository"
	"github.com/99yash/eptesicus/internal/services/account"
	"github.com/99yash/eptesicus/internal/services/email"
	"github.com/99yash/eptesicus/internal/services/issue"
	"github.com/99yash/eptesicus/internal/services/oauth"
	"github.com/99yash/eptesicus/internal/services/organization"
	"github.com/99yash/eptesicus/internal/services/token"
	"github.com/99yash/eptesicus/internal/services/username"
	"github.com/99yash/eptesicus/internal/services/verification"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	logger := setupLogger(cfg.Log.Level, cfg.Log.Format)

	logger.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("failed to close database", "error", closeErr)
		}
	}()

	repo := repository.New(db)

	tokens, err := token.New(&cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to build token codec: %w", err)
	}

	sender, err := email.NewService(&cfg.SMTP)
	if err != nil {
		return fmt.Errorf("failed to build email service: %w", err)
	}

	verifier := verification.NewService(repo, sender, cfg.Auth.CodeTTL)
	allocator := username.NewAllocator(repo, usernameGenerator(&cfg.AI), logger)
	accounts := account.NewService(repo, verifier, allocator, logger)
	organizations := organization.NewService(repo)
	issues := issue.NewService(repo)
	providers := oauth.NewRegistry(&cfg.OAuth, cfg.Server.BaseURL)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = errorHandler(logger)

	setupMiddleware(e, cfg)

	h := handlers.New(cfg, repo, tokens, accounts, verifier, organizations, issues, providers, logger)
	setupRoutes(e, h, tokens, cfg)

	return startWithGracefulShutdown(e, cfg, logger)
}

// usernameGenerator returns nil when no API key is configured; the
// allocator then relies on its local fallback.
func usernameGenerator(cfg *config.AIConfig) username.Generator {
	gen := username.NewOpenAIGenerator(cfg)
	if gen == nil {
		return nil
	}
	return gen
}

func setupRoutes(e *echo.Echo, h *handlers.Handlers, tokens *token.Codec, cfg *config.Config) {
	e.GET("/health", h.Health)

	auth := e.Group("/auth")
	auth.POST("/login", h.Login, loginRateLimiter(cfg.Server.LoginRPS))
	auth.POST("/verify-email", h.VerifyEmail)
	auth.GET("/:provider", h.OAuthRedirect)
	auth.GET("/:provider/callback", h.OAuthCallback)

	gate := appmw.SessionGate(tokens, cfg.Auth.CookieName)
	auth.POST("/signout", h.Signout, gate)

	users := e.Group("/users")
	users.GET("/check-username/:username", h.CheckUsername)
	users.GET("", h.CurrentUser, gate)
	users.PUT("/username", h.UpdateUsername, gate)

	orgs := e.Group("/organizations", gate)
	orgs.GET("", h.ListOrganizations)
	orgs.POST("", h.CreateOrganization)

	issues := e.Group("/issues", gate)
	issues.POST("", h.CreateIssue)
	issues.GET("", h.ListIssues)
	issues.GET("/:id", h.GetIssue)
	issues.PATCH("/:id", h.UpdateIssue)
	issues.DELETE("/:id", h.DeleteIssue)
}

func startWithGracefulShutdown(e *echo.Echo, cfg *config.Config, logger *slog.Logger) error {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("server running", "url", cfg.Server.BaseURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("shutting down server")
	case err := <-errChan:
		logger.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	}

	logger.Info("server stopped")
	return nil
}
