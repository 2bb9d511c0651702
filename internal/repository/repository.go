// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

// Package repository provides data access over the SQLite store.
//
// Low-level driver errors never leave this package: missing rows become
// ErrNotFound and unique-constraint violations become ErrDuplicate, so
// callers can translate races on email/username/(provider, subject) into
// user-facing conflicts instead of opaque 500s.
package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/vinovest/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert or update violates a unique
// constraint. It is the only duplicate-key signal callers see; the
// driver error never escapes this package.
var ErrDuplicate = errors.New("duplicate key")

// Repository wraps the database handle for data access.
type Repository struct {
	db *sqlx.DB
}

// New creates a new Repository instance.
func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// DB returns the underlying handle for direct access.
func (r *Repository) DB() *sqlx.DB {
	return r.db
}

// newID returns a fresh opaque row id.
func newID() string {
	return uuid.NewString()
}

// wrapError converts driver errors to repository errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// isUniqueViolation matches the vendor-specific duplicate-key error.
func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	// The driver sometimes surfaces constraint failures as plain errors.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
