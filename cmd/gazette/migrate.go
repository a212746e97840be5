package main

import (
	"github.com/family-gazette-api/internal/config"
	"github.com/family-gazette-api/internal/database"
	"github.com/family-gazette-api/pkg/logger"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDatabase(func(db *database.DB, cfg *config.Config) error {
					return db.RunMigrations(cfg.Server.MigrationsPath)
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDatabase(func(db *database.DB, cfg *config.Config) error {
					return db.MigrateDown(cfg.Server.MigrationsPath)
				})
			},
		},
	)
	return cmd
}

// withDatabase opens the configured database for the duration of fn
func withDatabase(fn func(*database.DB, *config.Config) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.New(&cfg.Database, logger.New())
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(db, cfg)
}
