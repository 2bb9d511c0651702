// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package database_test

import (
	"testing"

	"github.com/99yash/eptesicus/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_InMemory(t *testing.T) {
	db, err := database.Open(":memory:")

	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// Migrations must have created the core tables.
	var count int
	err = db.Get(&count,
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name IN
		 ('users', 'email_verification_codes', 'federated_credentials',
		  'organizations', 'organization_members', 'issues')`)
	require.NoError(t, err)
	assert.Equal(t, 6, count)
}

func TestMigrateDown(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.MigrateDown(db.DB))

	// The newest migration owns the issues table.
	var count int
	err = db.Get(&count,
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'issues'`)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestOpen_UniqueConstraints(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(
		`INSERT INTO users (id, email, name, username) VALUES ('u1', 'a@x.com', 'A', 'alice')`)
	require.NoError(t, err)

	_, err = db.Exec(
		`INSERT INTO users (id, email, name, username) VALUES ('u2', 'b@x.com', 'B', 'alice')`)
	assert.Error(t, err)
}
