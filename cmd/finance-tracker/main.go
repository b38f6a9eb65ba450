package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"finance-tracker/internal/api"
	"finance-tracker/internal/api/handlers"
	"finance-tracker/internal/events"
	"finance-tracker/internal/service"
	"finance-tracker/internal/storage"
	"finance-tracker/pkg/auth"
	"finance-tracker/pkg/config"
	"finance-tracker/pkg/logger"

	"go.uber.org/zap"
)

// @title Finance Tracker API
// @version 1.0
// @description Transactions, budgets and spending summaries.

// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token minted with financectl token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting finance tracker", zap.String("backend", cfg.Store.Backend))

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg, logger.Named("store"))
	if err != nil {
		appLogger.Fatal("Failed to open store", zap.Error(err))
	}
	defer store.Close()

	publisher, err := events.NewPublisher(cfg.AMQP, logger.Named("events"))
	if err != nil {
		appLogger.Fatal("Failed to connect to message broker", zap.Error(err))
	}
	defer publisher.Close()

	var jwtManager *auth.JWTManager
	if cfg.JWT.Enabled() {
		jwtManager = auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration)
	} else {
		appLogger.Warn("JWT_SECRET_KEY not set, write routes are unauthenticated")
	}

	txService := service.NewTransactionService(store.Transactions, publisher, appLogger)
	budgetService := service.NewBudgetService(store.Budgets, publisher, appLogger)
	summaryService := service.NewSummaryService(store.Transactions, store.Budgets, cfg.Display.CurrencySymbol, appLogger)
	reportService := service.NewReportService(summaryService, appLogger)

	if cfg.Store.SeedDemo {
		seeder := service.NewSeedService(store.Transactions, txService, appLogger)
		if _, err := seeder.SeedDemo(ctx); err != nil {
			appLogger.Error("Failed to seed demo data", zap.Error(err))
		}
	}

	app := api.SetupRouter(api.Handlers{
		Transactions: handlers.NewTransactionHandler(txService, appLogger),
		Budgets:      handlers.NewBudgetHandler(budgetService, appLogger),
		Summary:      handlers.NewSummaryHandler(summaryService, reportService, store.Backend, appLogger),
	}, jwtManager, cfg.Server, logger.Named("http"))

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
