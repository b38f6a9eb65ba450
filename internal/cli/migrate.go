package cli

import (
	"fmt"

	"finance-tracker/internal/storage"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply schema migrations to the configured store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := storage.Migrate(cmd.Context(), cfg, appLogger); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s store is up to date\n", cfg.Store.Backend)
		return nil
	},
}
