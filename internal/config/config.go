// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package config

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

var configFile = altsrc.StringSourcer("config.toml")

type Config struct { //nolint:govet // fieldalignment not critical for config structs
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Auth     AuthConfig
	SMTP     SMTPConfig
	OAuth    OAuthConfig
	AI       AIConfig
}

type ServerConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host        string
	Port        int
	BaseURL     string  // public URL of this API
	WebAppURL   string  // frontend origin, used for CORS and OAuth redirects
	MaxBodySize int     // in MB
	LoginRPS    float64 // rate limit for POST /auth/login
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

type DatabaseConfig struct {
	DSN string
}

// AuthConfig drives the token codec and the auth cookie.
type AuthConfig struct { //nolint:govet // fieldalignment not critical
	CookieName    string // cookie holding the encrypted token
	TokenHashKey  string // 32-byte hex, HMAC key
	TokenBlockKey string // 32-byte hex, AES key
	TokenTTL      time.Duration
	CodeTTL       time.Duration // verification code lifetime
}

type SMTPConfig struct { //nolint:govet // fieldalignment not critical
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	TLS      bool
}

type OAuthProviderConfig struct {
	ClientID     string
	ClientSecret string
}

type OAuthConfig struct {
	Google OAuthProviderConfig
	GitHub OAuthProviderConfig
}

// AIConfig configures the username-generation collaborator.
type AIConfig struct { //nolint:govet // fieldalignment not critical
	APIKey  string
	Model   string
	Timeout time.Duration
}

func NewFromCLI(cmd *cli.Command) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host:        cmd.String("host"),
			Port:        int(cmd.Int("port")),
			BaseURL:     cmd.String("base-url"),
			WebAppURL:   cmd.String("web-app-url"),
			MaxBodySize: int(cmd.Int("max-body-size")),
			LoginRPS:    cmd.Float64("login-rps"),
		},
		Log: LogConfig{
			Level:  cmd.String("log-level"),
			Format: cmd.String("log-format"),
		},
		Database: DatabaseConfig{
			DSN: cmd.String("database-dsn"),
		},
		Auth: AuthConfig{
			CookieName:    cmd.String("token-cookie-name"),
			TokenHashKey:  cmd.String("token-hash-key"),
			TokenBlockKey: cmd.String("token-block-key"),
			TokenTTL:      cmd.Duration("token-ttl"),
			CodeTTL:       cmd.Duration("code-ttl"),
		},
		SMTP: SMTPConfig{
			Host:     cmd.String("smtp-host"),
			Port:     int(cmd.Int("smtp-port")),
			Username: cmd.String("smtp-username"),
			Password: cmd.String("smtp-password"),
			From:     cmd.String("smtp-from"),
			FromName: cmd.String("smtp-from-name"),
			TLS:      cmd.Bool("smtp-tls"),
		},
		OAuth: OAuthConfig{
			Google: OAuthProviderConfig{
				ClientID:     cmd.String("google-client-id"),
				ClientSecret: cmd.String("google-client-secret"),
			},
			GitHub: OAuthProviderConfig{
				ClientID:     cmd.String("github-client-id"),
				ClientSecret: cmd.String("github-client-secret"),
			},
		},
		AI: AIConfig{
			APIKey:  cmd.String("openai-api-key"),
			Model:   cmd.String("openai-model"),
			Timeout: cmd.Duration("openai-timeout"),
		},
	}

	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = buildBaseURL(cfg)
	}

	return cfg
}

// TokenKeys decodes the configured hash and block keys. Both must be
// exactly 32 bytes so the process fails fast at startup on a bad secret.
func (c *AuthConfig) TokenKeys() (hashKey, blockKey []byte, err error) {
	hashKey, err = decodeKey("token-hash-key", c.TokenHashKey)
	if err != nil {
		return nil, nil, err
	}
	blockKey, err = decodeKey("token-block-key", c.TokenBlockKey)
	if err != nil {
		return nil, nil, err
	}
	return hashKey, blockKey, nil
}

func decodeKey(name, value string) ([]byte, error) {
	key, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%s is not valid hex: %w", name, err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("%s must be exactly 32 bytes, got %d", name, len(key))
	}
	return key, nil
}

// CookieSecure reports whether the token cookie should be HTTPS-only.
func (c *Config) CookieSecure() bool {
	return strings.HasPrefix(c.Server.BaseURL, "https://")
}

func buildBaseURL(cfg *Config) string {
	host := cfg.Server.Host
	port := cfg.Server.Port

	scheme := "http"
	if !IsLocalhost(host) {
		scheme = "https"
	}

	// Hide default ports in URL
	if (scheme == "http" && port == 80) || (scheme == "https" && port == 443) {
		return fmt.Sprintf("%s://%s", scheme, host)
	}
	return fmt.Sprintf("%s://%s:%d", scheme, host, port)
}

// IsLocalhost checks if the host is a localhost address.
func IsLocalhost(host string) bool {
	switch host {
	case "", "localhost", "127.0.0.1", "::1":
		return true
	}
	return strings.HasSuffix(host, ".localhost")
}

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Value:   "localhost",
			Usage:   "Host to bind to",
			Sources: cli.NewValueSourceChain(cli.EnvVar("HOST"), toml.TOML("server.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "port",
			Value:   4000,
			Usage:   "Port to listen on",
			Sources: cli.NewValueSourceChain(cli.EnvVar("PORT"), toml.TOML("server.port", configFile)),
		},
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "Public base URL of the API",
			Sources: cli.NewValueSourceChain(cli.EnvVar("BASE_URL"), toml.TOML("server.base_url", configFile)),
		},
		&cli.StringFlag{
			Name:    "web-app-url",
			Value:   "http://localhost:3000",
			Usage:   "Frontend origin for CORS and OAuth redirects",
			Sources: cli.NewValueSourceChain(cli.EnvVar("WEB_APP_URL"), toml.TOML("server.web_app_url", configFile)),
		},
		&cli.IntFlag{
			Name:    "max-body-size",
			Value:   1,
			Usage:   "Maximum request body size in MB",
			Sources: cli.NewValueSourceChain(cli.EnvVar("MAX_BODY_SIZE"), toml.TOML("server.max_body_size", configFile)),
		},
		&cli.Float64Flag{
			Name:    "login-rps",
			Value:   1,
			Usage:   "Rate limit for POST /auth/login, requests per second per IP",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOGIN_RPS"), toml.TOML("server.login_rps", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_LEVEL"), toml.TOML("log.level", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Value:   "text",
			Usage:   "Log format (text, json)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_FORMAT"), toml.TOML("log.format", configFile)),
		},
		&cli.StringFlag{
			Name:    "database-dsn",
			Value:   "./data/eptesicus.db",
			Usage:   "Database DSN",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DATABASE_DSN"), toml.TOML("database.dsn", configFile)),
		},
		&cli.StringFlag{
			Name:    "token-cookie-name",
			Value:   "token",
			Usage:   "Name of the auth token cookie",
			Sources: cli.NewValueSourceChain(cli.EnvVar("TOKEN_COOKIE_NAME"), toml.TOML("auth.cookie_name", configFile)),
		},
		&cli.StringFlag{
			Name:    "token-hash-key",
			Usage:   "Token HMAC key (32-byte hex)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("TOKEN_HASH_KEY"), toml.TOML("auth.hash_key", configFile)),
		},
		&cli.StringFlag{
			Name:    "token-block-key",
			Usage:   "Token encryption key (32-byte hex)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("TOKEN_BLOCK_KEY"), toml.TOML("auth.block_key", configFile)),
		},
		&cli.DurationFlag{
			Name:    "token-ttl",
			Value:   24 * time.Hour,
			Usage:   "Lifetime of issued auth tokens",
			Sources: cli.NewValueSourceChain(cli.EnvVar("TOKEN_TTL"), toml.TOML("auth.token_ttl", configFile)),
		},
		&cli.DurationFlag{
			Name:    "code-ttl",
			Value:   time.Hour,
			Usage:   "Lifetime of email verification codes",
			Sources: cli.NewValueSourceChain(cli.EnvVar("CODE_TTL"), toml.TOML("auth.code_ttl", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-host",
			Usage:   "SMTP server host",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_HOST"), toml.TOML("smtp.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "smtp-port",
			Value:   587,
			Usage:   "SMTP server port",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_PORT"), toml.TOML("smtp.port", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-username",
			Usage:   "SMTP username",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_USERNAME"), toml.TOML("smtp.username", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-password",
			Usage:   "SMTP password",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_PASSWORD"), toml.TOML("smtp.password", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-from",
			Value:   "noreply@eptesicus.dev",
			Usage:   "From address for outbound mail",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_FROM"), toml.TOML("smtp.from", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-from-name",
			Value:   "Eptesicus",
			Usage:   "From display name for outbound mail",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_FROM_NAME"), toml.TOML("smtp.from_name", configFile)),
		},
		&cli.BoolFlag{
			Name:    "smtp-tls",
			Value:   true,
			Usage:   "Require TLS for SMTP",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_TLS"), toml.TOML("smtp.tls", configFile)),
		},
		&cli.StringFlag{
			Name:    "google-client-id",
			Usage:   "Google OAuth client id",
			Sources: cli.NewValueSourceChain(cli.EnvVar("GOOGLE_CLIENT_ID"), toml.TOML("oauth.google.client_id", configFile)),
		},
		&cli.StringFlag{
			Name:    "google-client-secret",
			Usage:   "Google OAuth client secret",
			Sources: cli.NewValueSourceChain(cli.EnvVar("GOOGLE_CLIENT_SECRET"), toml.TOML("oauth.google.client_secret", configFile)),
		},
		&cli.StringFlag{
			Name:    "github-client-id",
			Usage:   "GitHub OAuth client id",
			Sources: cli.NewValueSourceChain(cli.EnvVar("GITHUB_CLIENT_ID"), toml.TOML("oauth.github.client_id", configFile)),
		},
		&cli.StringFlag{
			Name:    "github-client-secret",
			Usage:   "GitHub OAuth client secret",
			Sources: cli.NewValueSourceChain(cli.EnvVar("GITHUB_CLIENT_SECRET"), toml.TOML("oauth.github.client_secret", configFile)),
		},
		&cli.StringFlag{
			Name:    "openai-api-key",
			Usage:   "OpenAI API key for username generation",
			Sources: cli.NewValueSourceChain(cli.EnvVar("OPENAI_API_KEY"), toml.TOML("ai.api_key", configFile)),
		},
		&cli.StringFlag{
			Name:    "openai-model",
			Value:   "gpt-4o-mini",
			Usage:   "Model used for username generation",
			Sources: cli.NewValueSourceChain(cli.EnvVar("OPENAI_MODEL"), toml.TOML("ai.model", configFile)),
		},
		&cli.DurationFlag{
			Name:    "openai-timeout",
			Value:   10 * time.Second,
			Usage:   "Timeout for username generation calls",
			Sources: cli.NewValueSourceChain(cli.EnvVar("OPENAI_TIMEOUT"), toml.TOML("ai.timeout", configFile)),
		},
	}
}
