package cli

import (
	"errors"
	"fmt"

	"finance-tracker/pkg/auth"

	"github.com/spf13/cobra"
)

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the write routes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !cfg.JWT.Enabled() {
			return errors.New("JWT_SECRET_KEY is not set; write routes are open and need no token")
		}
		manager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration)
		token, err := manager.GenerateToken(tokenSubject)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		fmt.Fprintf(cmd.ErrOrStderr(), "token for %q expires in %s\n", tokenSubject, manager.GetTokenDuration())
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "operator", "Name recorded in the token subject")
}
