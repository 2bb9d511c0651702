// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/99yash/eptesicus/internal/apperror"
	"github.com/99yash/eptesicus/internal/services/account"
	"github.com/99yash/eptesicus/internal/services/oauth"
	"github.com/labstack/echo/v4"
)

const stateCookieName = "oauth_state"

// OAuthRedirect sends the browser to the provider's consent screen.
func (h *Handlers) OAuthRedirect(c echo.Context) error {
	provider, ok := h.providers.Lookup(c.Param("provider"))
	if !ok {
		return apperror.NotFound("Unknown sign-in provider")
	}

	state, err := oauth.NewState()
	if err != nil {
		return apperror.Internal("Failed to start sign-in", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/auth",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure(),
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusTemporaryRedirect, provider.AuthCodeURL(state))
}

// OAuthCallback completes the provider flow: verify state, exchange the
// code, resolve the account, start a session, and bounce back to the
// web app.
func (h *Handlers) OAuthCallback(c echo.Context) error {
	provider, ok := h.providers.Lookup(c.Param("provider"))
	if !ok {
		return apperror.NotFound("Unknown sign-in provider")
	}

	stateCookie, err := c.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != c.QueryParam("state") {
		return apperror.BadRequest("Invalid state parameter")
	}
	code := c.QueryParam("code")
	if code == "" {
		return apperror.BadRequest("Missing authorization code")
	}

	ctx := c.Request().Context()

	tok, err := provider.Exchange(ctx, code)
	if err != nil {
		return apperror.Internal("Failed to exchange authorization code", err)
	}
	profile, err := provider.FetchProfile(ctx, tok)
	if err != nil {
		return apperror.Internal("Failed to fetch profile", err)
	}

	assertion := account.OAuthAssertion{
		Provider:     provider.Name(),
		Subject:      profile.Subject,
		Email:        profile.Email,
		Name:         profile.Name,
		ImageURL:     profile.ImageURL,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}
	if !tok.Expiry.IsZero() {
		expiry := tok.Expiry
		assertion.TokenExpiry = &expiry
	}

	user, created, err := h.accounts.ResolveOAuth(ctx, assertion)
	if err != nil {
		return err
	}

	h.logger.Info("oauth sign-in",
		slog.String("provider", string(provider.Name())),
		slog.String("user_id", user.ID),
		slog.Bool("created", created))

	if err := h.setSessionCookie(c, user.ID); err != nil {
		return err
	}
	return c.Redirect(http.StatusTemporaryRedirect, h.cfg.Server.WebAppURL)
}
