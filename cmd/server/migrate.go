package main

import (
	"cv-renderer/internal/infrastructure/migration"
	infra "cv-renderer/pkg/infrastructure"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		pool, err := infra.NewPool(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		return migration.RunMigrations(cmd.Context(), pool, logger)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
