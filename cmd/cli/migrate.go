package main

import (
	"context"
	"time"

	"github.com/akeren/teamup-site/config"
	"github.com/akeren/teamup-site/internal/log"
	"github.com/spf13/cobra"
)

func newMigrateCommand(logger *log.Logger) *cobra.Command {
	var (
		dir     string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Long: `Apply every pending SQL migration to the configured database.

The driver and location come from DATABASE_DRIVER, DATABASE_PATH and the
POSTGRES_* / APP_DATABASE_URL variables. Scripts are embedded in the binary
unless --dir (or MIGRATIONS_DIR) points at a directory on disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbCfg := config.NewDBConfig()
			if dir != "" {
				dbCfg.MigrationsDir = dir
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := config.RunMigrations(ctx, logger, dbCfg); err != nil {
				logger.Error("Database migration failed", "error", err.Error())
				return err
			}

			logger.Info("Database migrations completed")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "read migration scripts from this directory instead of the embedded set")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "give up after this long")
	return cmd
}
