package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"jobpost/internal/config"
	"jobpost/internal/database/migration"
	dbpostgres "jobpost/internal/database/postgres"
	"jobpost/internal/database/seeder"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample job postings into an empty jobs table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
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

		logger := log.New(os.Stdout, "", log.LstdFlags)
		if cfg.Database.RunMigrations {
			runner := migration.Runner{Dir: cfg.Database.MigrationsDir, Logger: logger}
			if err := runner.Run(ctx, db.SQLDB()); err != nil {
				return err
			}
		}

		return seeder.Runner{Seeders: seeder.Defaults(), Logger: logger}.Run(ctx, db)
	},
}
