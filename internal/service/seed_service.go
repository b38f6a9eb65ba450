package service

import (
	"context"
	"fmt"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type demoTransaction struct {
	amount      int64
	date        string
	description string
	category    string
}

var demoTransactions = []demoTransaction{
	{75, "2025-04-15", "Groceries", "Food"},
	{25, "2025-04-16", "Movie ticket", "Fun"},
	{150, "2025-04-17", "Online shopping", "Shop"},
}

type SeedService struct {
	repo         repository.TransactionStore
	transactions *TransactionService
	logger       *zap.Logger
}

func NewSeedService(repo repository.TransactionStore, transactions *TransactionService, logger *zap.Logger) *SeedService {
	return &SeedService{
		repo:         repo,
		transactions: transactions,
		logger:       logger,
	}
}

// SeedDemo inserts a few sample transactions into an empty store and
// returns how many were added. A store that already has data is left alone.
func (s *SeedService) SeedDemo(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	if count > 0 {
		s.logger.Info("Store already has transactions, skipping demo data", zap.Int64("count", count))
		return 0, nil
	}

	for i, demo := range demoTransactions {
		amount := decimal.NewFromInt(demo.amount)
		req := &dto.TransactionRequest{
			Amount:      &amount,
			Date:        demo.date,
			Description: demo.description,
			Category:    demo.category,
		}
		if _, err := s.transactions.Create(ctx, req); err != nil {
			return i, fmt.Errorf("failed to seed %q: %w", demo.description, err)
		}
	}

	s.logger.Info("Demo transactions seeded", zap.Int("count", len(demoTransactions)))
	return len(demoTransactions), nil
}
