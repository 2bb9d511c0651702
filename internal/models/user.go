// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

// Package models holds the row structs for the relational store.
package models

import (
	"time"
)

// AuthProvider tags how an account was first registered. Once set it
// determines which identity assertions may resolve to the account.
type AuthProvider string

const (
	ProviderEmail  AuthProvider = "EMAIL"
	ProviderGoogle AuthProvider = "GOOGLE"
	ProviderGitHub AuthProvider = "GITHUB"
)

type User struct { //nolint:govet // fieldalignment: readability over optimization
	ID           string       `db:"id" json:"id"`
	Email        string       `db:"email" json:"email"`
	Name         string       `db:"name" json:"name"`
	Username     string       `db:"username" json:"username"`
	ImageURL     *string      `db:"image_url" json:"image_url,omitempty"`
	Bio          *string      `db:"bio" json:"bio,omitempty"`
	AuthProvider AuthProvider `db:"auth_provider" json:"auth_provider"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}
