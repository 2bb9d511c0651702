// Copyright 2025 The Eptesicus Authors
// Licensed under the EUPL-1.2

package server

import (
	"context"

	"github.com/99yash/eptesicus/internal/config"
	"github.com/99yash/eptesicus/internal/database"
	"github.com/urfave/cli/v3"
)

// Rollback undoes the newest database migration and exits. Open applies
// pending migrations first, so the rollback always targets the latest
// version.
func Rollback(_ context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)

	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	return database.MigrateDown(db.DB)
}
