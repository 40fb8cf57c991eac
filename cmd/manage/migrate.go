package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/clientdesk/clientdesk-backend/config"
	"github.com/clientdesk/clientdesk-backend/internal/storage/postgres"
)

func runMigrate(ctx context.Context, cfg *config.Config) error {
	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		return err
	}

	version, err := postgres.MigrationVersion(db)
	if err != nil {
		return err
	}
	log.Info().Int64("version", version).Msg("database is up to date")
	return nil
}
