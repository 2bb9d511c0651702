// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

// Package username validates handles and allocates fresh ones for new
// accounts. Allocation asks a language model for candidates first and
// falls back to a deterministic local scheme, so signup never fails on
// a handle.
package username

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/99yash/eptesicus/internal/repository"
)

// handlePattern is the full shape of a valid handle: lowercase
// alphanumerics, underscores and hyphens, 3 to 50 characters.
var handlePattern = regexp.MustCompile(`^[a-z0-9_-]{3,50}$`)

// reserved names collide with application routes and must never become
// handles.
var reserved = map[string]struct{}{
	"settings":      {},
	"signout":       {},
	"messages":      {},
	"notifications": {},
	"profile":       {},
	"home":          {},
	"search":        {},
	"explore":       {},
	"admin":         {},
	"root":          {},
	"system":        {},
}

const generateAttempts = 3

// Normalize lowercases and trims a handle before any check or write.
func Normalize(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Valid reports whether a normalized handle is well-formed.
func Valid(username string) bool {
	return handlePattern.MatchString(username)
}

// Reserved reports whether a normalized handle collides with a route.
func Reserved(username string) bool {
	_, ok := reserved[username]
	return ok
}

// Generator proposes handle candidates from a display name or email
// seed. Implementations may fail freely; the allocator has a fallback.
type Generator interface {
	Generate(ctx context.Context, seed string) (string, error)
}

// Allocator produces a unique, valid handle for a new account.
type Allocator struct {
	repo   *repository.Repository
	gen    Generator
	logger *slog.Logger
	now    func() time.Time
}

// NewAllocator creates an allocator. gen may be nil, in which case only
// the local fallback scheme is used.
func NewAllocator(repo *repository.Repository, gen Generator, logger *slog.Logger) *Allocator {
	return &Allocator{repo: repo, gen: gen, logger: logger, now: time.Now}
}

// Allocate returns a free handle derived from the seed (a display name
// or email local part). It tries the generator a few times, then falls
// back to a timestamp-suffixed local scheme; it never returns an error.
func (a *Allocator) Allocate(ctx context.Context, seed string) string {
	if a.gen != nil {
		for attempt := 0; attempt < generateAttempts; attempt++ {
			candidate, err := a.gen.Generate(ctx, seed)
			if err != nil {
				a.logger.Warn("username generation failed",
					slog.Int("attempt", attempt+1), slog.Any("error", err))
				continue
			}
			candidate = Normalize(candidate)
			if !Valid(candidate) || Reserved(candidate) {
				continue
			}
			taken, err := a.repo.UsernameExists(ctx, candidate)
			if err != nil || taken {
				continue
			}
			return candidate
		}
	}
	return a.fallback(ctx, seed)
}

// fallback derives a handle without external help: the seed's leading
// letters plus the tail of the current unix timestamp, with random
// padding on collision.
func (a *Allocator) fallback(ctx context.Context, seed string) string {
	prefix := seedPrefix(seed)
	stamp := fmt.Sprintf("%d", a.now().UnixMilli())
	candidate := prefix + stamp[len(stamp)-4:]

	for {
		taken, err := a.repo.UsernameExists(ctx, candidate)
		if err != nil || !taken {
			return candidate
		}
		candidate += randomSuffix(2)
	}
}

// seedPrefix keeps the seed's lowercase letters, or "user" when the
// seed has none.
func seedPrefix(seed string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(seed) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
		if b.Len() >= 12 {
			break
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))] //nolint:gosec // not security sensitive
	}
	return string(b)
}
