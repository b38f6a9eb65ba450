// Package storage opens the record store selected by STORE_BACKEND.
package storage

import (
	"context"
	"errors"
	"fmt"

	"finance-tracker/internal/repository"
	"finance-tracker/internal/repository/memory"
	"finance-tracker/internal/repository/mongostore"
	"finance-tracker/internal/repository/sqlite"
	"finance-tracker/pkg/config"
	"finance-tracker/pkg/mongodb"
	"finance-tracker/pkg/postgres"

	"go.uber.org/zap"
)

type Store struct {
	Backend      string
	Transactions repository.TransactionStore
	Budgets      repository.BudgetStore
	closers      []func() error
}

func (s *Store) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open connects to the configured backend and brings its schema up to date.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		return openPostgres(ctx, cfg, logger)
	case config.BackendMongo:
		return openMongo(ctx, cfg, logger)
	case config.BackendSQLite:
		return openSQLite(cfg, logger)
	case config.BackendMemory:
		logger.Warn("Using in-memory store, data is lost on restart")
		store := memory.New()
		return &Store{
			Backend:      config.BackendMemory,
			Transactions: store.Transactions(),
			Budgets:      store.Budgets(),
		}, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// Migrate only applies schema changes without keeping a connection open.
func Migrate(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		return postgres.RunMigrations(cfg.Database.DSN())
	case config.BackendSQLite:
		return sqlite.RunMigrations(cfg.SQLite.Path)
	default:
		store, err := Open(ctx, cfg, logger)
		if err != nil {
			return err
		}
		return store.Close()
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	if err := postgres.RunMigrations(cfg.Database.DSN()); err != nil {
		return nil, fmt.Errorf("failed to migrate postgres: %w", err)
	}
	pool, err := postgres.NewPool(ctx, &cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	return &Store{
		Backend:      config.BackendPostgres,
		Transactions: repository.NewTransactionRepository(pool, logger),
		Budgets:      repository.NewBudgetRepository(pool, logger),
		closers:      []func() error{func() error { pool.Close(); return nil }},
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	client := mongodb.NewClient(cfg.Mongo, logger)
	store := mongostore.New(client, cfg.Mongo.Database, logger)
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to prepare mongodb: %w", err)
	}
	return &Store{
		Backend:      config.BackendMongo,
		Transactions: store.Transactions(),
		Budgets:      store.Budgets(),
		closers:      []func() error{client.Close},
	}, nil
}

func openSQLite(cfg *config.Config, logger *zap.Logger) (*Store, error) {
	store, err := sqlite.Open(cfg.SQLite.Path, logger)
	if err != nil {
		return nil, err
	}
	return &Store{
		Backend:      config.BackendSQLite,
		Transactions: store.Transactions(),
		Budgets:      store.Budgets(),
		closers:      []func() error{store.Close},
	}, nil
}
