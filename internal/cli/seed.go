package cli

import (
	"fmt"

	"finance-tracker/internal/service"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo transactions into an empty store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := openServices(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.store.Close()

		seeder := service.NewSeedService(svc.store.Transactions, svc.transactions, appLogger)
		n, err := seeder.SeedDemo(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "inserted %d demo transactions\n", n)
		return nil
	},
}
