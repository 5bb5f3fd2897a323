package main

import (
	"github.com/spf13/cobra"

	"github.com/shreejewels/storefront/internal/app"
)

var resetStore bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the store schema",
	Long: `migrate creates the tables (postgres, sqlite), buckets (bolt) or indexes
(mongodb) of the configured store. With --reset every product, slide and
rate is dropped first.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&resetStore, "reset", false, "drop all stored data before migrating")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	return app.MigrateStore(commandContext(cmd), cfg, resetStore)
}
