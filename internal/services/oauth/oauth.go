// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

// Package oauth wraps the Google and GitHub authorization-code flows
// behind one Provider interface. Handlers only see a redirect URL, a
// code exchange, and a normalized profile.
package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/99yash/eptesicus/internal/config"
	"github.com/99yash/eptesicus/internal/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// Profile is the provider-agnostic identity a flow ends with.
type Profile struct {
	Subject  string
	Name     string
	Email    string
	ImageURL string
}

// Provider runs one provider's authorization-code flow.
type Provider interface {
	Name() models.AuthProvider
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	FetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error)
}

// Registry holds the configured providers keyed by path segment.
type Registry map[string]Provider

// NewRegistry wires up every provider that has credentials configured.
// baseURL is the public URL of this API; callbacks land on
// /auth/<provider>/callback.
func NewRegistry(cfg *config.OAuthConfig, baseURL string) Registry {
	reg := Registry{}
	if cfg.Google.ClientID != "" {
		reg["google"] = newGoogleProvider(&cfg.Google, baseURL+"/auth/google/callback")
	}
	if cfg.GitHub.ClientID != "" {
		reg["github"] = newGitHubProvider(&cfg.GitHub, baseURL+"/auth/github/callback")
	}
	return reg
}

// Lookup returns the provider for a path segment.
func (r Registry) Lookup(name string) (Provider, bool) {
	p, ok := r[name]
	return p, ok
}

func newGoogleProvider(cfg *config.OAuthProviderConfig, redirectURL string) *googleProvider {
	return &googleProvider{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     endpoints.Google,
		},
	}
}

func newGitHubProvider(cfg *config.OAuthProviderConfig, redirectURL string) *githubProvider {
	return &githubProvider{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     endpoints.GitHub,
		},
	}
}

// NewState produces an unguessable value binding the redirect to the
// callback. It travels in a short-lived cookie.
func NewState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating oauth state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
