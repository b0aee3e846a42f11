package main

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/archlinux/redirectll/pkg/db"
	"github.com/archlinux/redirectll/pkg/forum/postgres"
	"github.com/archlinux/redirectll/pkg/logger"
)

func newMigrateCmd() *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the standalone forum schema",
		Long: `Migrate creates the discussions, users and tags tables redirectll reads,
for development databases and deployments without the host forum database.
Against the forum's own database it is not needed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig[migrateConfig](env.Options{})
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			log := logger.NewFromConfig(cfg.Log)

			pool, err := db.Connect(ctx, cfg.DB, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			var version int64
			if status {
				version, err = db.Version(ctx, pool, postgres.Migrations(), cfg.DB.MigrationsTable)
			} else {
				version, err = db.Migrate(ctx, pool, postgres.Migrations(), cfg.DB.MigrationsTable, log)
			}
			if err != nil {
				log.ErrorContext(ctx, "migration failed", slog.Any("error", err))
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
			return err
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "Print the applied schema version without migrating")

	return cmd
}
