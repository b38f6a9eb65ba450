package service

import (
	"context"
	"fmt"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/events"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repository"

	"go.uber.org/zap"
)

type BudgetService struct {
	repo      repository.BudgetStore
	publisher events.Publisher
	logger    *zap.Logger
}

func NewBudgetService(repo repository.BudgetStore, publisher events.Publisher, logger *zap.Logger) *BudgetService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &BudgetService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// List returns budgets in the order they were added. An empty month returns
// every entry; otherwise the label is matched in its canonical form.
func (s *BudgetService) List(ctx context.Context, month string) ([]dto.BudgetResponse, error) {
	month = cleanText(month)
	if month != "" {
		label, err := models.NormalizeMonthLabel(month)
		if err != nil {
			return nil, invalid("month %q must look like %s", month, models.MonthLabelLayout)
		}
		month = label
	}

	budgets, err := s.repo.List(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return dto.NewBudgetResponses(budgets), nil
}

// Create appends a budget entry. Several entries may share a month and
// category; the latest one wins when budgets are compared with spending.
func (s *BudgetService) Create(ctx context.Context, req *dto.BudgetRequest) (*dto.BudgetResponse, error) {
	budget, err := budgetFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	s.logger.Info("Budget created",
		zap.String("id", budget.ID),
		zap.String("month", budget.Month),
		zap.String("category", budget.Category.String()),
	)

	resp := dto.NewBudgetResponse(budget)
	if err := s.publisher.Publish(ctx, events.New(events.BudgetCreated, "budget", budget.ID, resp)); err != nil {
		s.logger.Warn("Failed to publish event", zap.String("type", string(events.BudgetCreated)), zap.Error(err))
	}
	return &resp, nil
}

func budgetFromRequest(req *dto.BudgetRequest) (*models.Budget, error) {
	if req == nil {
		return nil, invalid("request body is required")
	}

	month := cleanText(req.Month)
	if month == "" {
		return nil, invalid("month is required")
	}
	label, err := models.NormalizeMonthLabel(month)
	if err != nil {
		return nil, invalid("month %q must look like %s", month, models.MonthLabelLayout)
	}

	category := models.NormalizeCategory(req.Category)
	if !category.Valid() {
		return nil, invalid("category %q must be one of %v", req.Category, models.Categories())
	}

	amount, err := checkAmount("budget", req.Budget)
	if err != nil {
		return nil, err
	}

	return &models.Budget{
		Month:    label,
		Category: category,
		Budget:   amount,
	}, nil
}
