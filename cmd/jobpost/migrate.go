package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"jobpost/internal/config"
	"jobpost/internal/database/migration"
	dbpostgres "jobpost/internal/database/postgres"

	"github.com/spf13/cobra"
)

var migrationsDir string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		dir := cfg.Database.MigrationsDir
		if migrationsDir != "" {
			dir = migrationsDir
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}
		defer db.Close()

		runner := migration.Runner{Dir: dir, Logger: log.New(os.Stdout, "", log.LstdFlags)}
		return runner.Run(ctx, db.SQLDB())
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrationsDir, "dir", "", "read migrations from this directory instead of the embedded set")
}
