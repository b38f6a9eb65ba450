package service

import (
	"context"
	"fmt"

	"finance-tracker/internal/analytics"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type SummaryService struct {
	transactions repository.TransactionStore
	budgets      repository.BudgetStore
	options      analytics.Options
	logger       *zap.Logger
}

func NewSummaryService(
	transactions repository.TransactionStore,
	budgets repository.BudgetStore,
	currencySymbol string,
	logger *zap.Logger,
) *SummaryService {
	return &SummaryService{
		transactions: transactions,
		budgets:      budgets,
		options: analytics.Options{
			Palette:        analytics.DefaultPalette,
			CurrencySymbol: currencySymbol,
		},
		logger: logger,
	}
}

// Summarize aggregates one snapshot of both collections. With a month label
// such as "April'25" only that month's transactions and budgets are used.
func (s *SummaryService) Summarize(ctx context.Context, month string) (analytics.Summary, error) {
	month = cleanText(month)

	filter := repository.TransactionFilter{}
	if month != "" {
		first, err := models.ParseMonthLabel(month)
		if err != nil {
			return analytics.Summary{}, invalid("month %q must look like %s", month, models.MonthLabelLayout)
		}
		filter = repository.MonthFilter(first)
		month = models.MonthLabel(first)
	}

	var (
		txs     []*models.Transaction
		budgets []*models.Budget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = s.transactions.List(gctx, filter)
		if err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		budgets, err = s.budgets.List(gctx, month)
		if err != nil {
			return fmt.Errorf("failed to list budgets: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return analytics.Summary{}, err
	}

	summary := analytics.Summarize(txs, budgets, s.options)
	if summary.SkippedDate > 0 {
		s.logger.Warn("Transactions without a usable date left out of monthly totals",
			zap.Int("count", summary.SkippedDate))
	}
	return summary, nil
}

func (s *SummaryService) CurrencySymbol() string {
	return s.options.CurrencySymbol
}
