// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

// Package token issues and verifies the opaque session tokens carried
// in the auth cookie. A token is a securecookie-sealed payload holding
// the user id and an expiry instant; it is tamper-proof and unreadable
// to the client, and verification needs no database round trip.
package token

import (
	"errors"
	"time"

	"github.com/99yash/eptesicus/internal/config"
	"github.com/gorilla/securecookie"
)

// ErrInvalidToken covers every token that fails to decode: garbage,
// truncation, tampering, or a token sealed under different keys.
var ErrInvalidToken = errors.New("invalid token")

// payload is the sealed token content. Expiry lives inside the payload
// rather than in securecookie's MaxAge so that an expired token stays
// distinguishable from an invalid one.
type payload struct {
	UserID    string
	ExpiresAt int64 // unix seconds
}

// Result is the outcome of verifying a well-formed token.
type Result struct {
	UserID  string
	Expired bool
}

// Codec seals and opens session tokens.
type Codec struct {
	sc  *securecookie.SecureCookie
	ttl time.Duration
	now func() time.Time
}

// New builds a codec from the configured hash and block keys. Both keys
// must be 32 bytes of hex; anything else is a configuration error.
func New(cfg *config.AuthConfig) (*Codec, error) {
	hashKey, blockKey, err := cfg.TokenKeys()
	if err != nil {
		return nil, err
	}
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(0) // expiry is enforced by the payload, not the codec
	return &Codec{sc: sc, ttl: cfg.TokenTTL, now: time.Now}, nil
}

// Issue creates a sealed token for the user, valid for the configured TTL.
func (c *Codec) Issue(userID string) (string, error) {
	p := payload{
		UserID:    userID,
		ExpiresAt: c.now().Add(c.ttl).Unix(),
	}
	return c.sc.Encode("token", p)
}

// Verify opens a token. A token that fails to decode returns
// ErrInvalidToken; a decodable token past its expiry comes back with
// Expired set and the user id intact.
func (c *Codec) Verify(value string) (Result, error) {
	var p payload
	if err := c.sc.Decode("token", value, &p); err != nil {
		return Result{}, ErrInvalidToken
	}
	return Result{
		UserID:  p.UserID,
		Expired: c.now().Unix() >= p.ExpiresAt,
	}, nil
}
