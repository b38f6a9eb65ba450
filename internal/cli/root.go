package cli

import (
	"context"
	"fmt"

	"finance-tracker/internal/service"
	"finance-tracker/internal/storage"
	"finance-tracker/pkg/config"
	"finance-tracker/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	backendFlag string
	cfg         *config.Config
	appLogger   *zap.Logger
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "financectl",
	Short: "Administer the finance tracker store",
	Long: `financectl runs maintenance tasks against the store configured in the
environment (or .env): schema migrations, demo data, write tokens and reports.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	defer logger.Sync()
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&backendFlag, "backend", "b", "",
		"Store backend to use (postgres, mongo, sqlite, memory); overrides STORE_BACKEND")

	RootCmd.AddCommand(migrateCmd, seedCmd, tokenCmd, reportCmd, summaryCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	if backendFlag != "" {
		loaded.Store.Backend = backendFlag
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	if err := logger.Init(loaded.Logger.Level); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg = loaded
	appLogger = logger.Get()
	return nil
}

// services wires the same service graph the server uses, without events.
type services struct {
	store        *storage.Store
	transactions *service.TransactionService
	summaries    *service.SummaryService
}

func openServices(ctx context.Context) (*services, error) {
	store, err := storage.Open(ctx, cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return &services{
		store:        store,
		transactions: service.NewTransactionService(store.Transactions, nil, appLogger),
		summaries:    service.NewSummaryService(store.Transactions, store.Budgets, cfg.Display.CurrencySymbol, appLogger),
	}, nil
}
