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

const maxDescriptionLength = 500

type TransactionService struct {
	repo      repository.TransactionStore
	publisher events.Publisher
	logger    *zap.Logger
}

func NewTransactionService(
	repo repository.TransactionStore,
	publisher events.Publisher,
	logger *zap.Logger,
) *TransactionService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &TransactionService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// List returns every transaction, newest date first.
func (s *TransactionService) List(ctx context.Context) ([]dto.TransactionResponse, error) {
	txs, err := s.repo.List(ctx, repository.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return dto.NewTransactionResponses(txs), nil
}

func (s *TransactionService) Create(ctx context.Context, req *dto.TransactionRequest) (*dto.TransactionResponse, error) {
	tx, err := transactionFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.logger.Info("Transaction created",
		zap.String("id", tx.ID),
		zap.String("category", tx.Category.String()),
		zap.String("amount", tx.Amount.String()),
	)

	resp := dto.NewTransactionResponse(tx)
	s.publish(ctx, events.New(events.TransactionCreated, "transaction", tx.ID, resp))
	return &resp, nil
}

// Update replaces amount, date, description and category of an existing
// transaction.
func (s *TransactionService) Update(ctx context.Context, id string, req *dto.TransactionRequest) (*dto.TransactionResponse, error) {
	changes, err := transactionFromRequest(req)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.logger.Info("Transaction updated", zap.String("id", updated.ID))

	resp := dto.NewTransactionResponse(updated)
	s.publish(ctx, events.New(events.TransactionUpdated, "transaction", updated.ID, resp))
	return &resp, nil
}

func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.logger.Info("Transaction deleted", zap.String("id", id))
	s.publish(ctx, events.New(events.TransactionDeleted, "transaction", id, nil))
	return nil
}

// publish never fails the caller; the write has already been stored.
func (s *TransactionService) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warn("Failed to publish event", zap.String("type", string(e.Type)), zap.Error(err))
	}
}

func transactionFromRequest(req *dto.TransactionRequest) (*models.Transaction, error) {
	if req == nil {
		return nil, invalid("amount is required")
	}
	amount, err := checkAmount("amount", req.Amount)
	if err != nil {
		return nil, err
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, invalid("date %q must be formatted as YYYY-MM-DD", req.Date)
	}

	description := cleanText(req.Description)
	if description == "" {
		return nil, invalid("description is required")
	}
	if len([]rune(description)) > maxDescriptionLength {
		return nil, invalid("description must be at most %d characters", maxDescriptionLength)
	}

	category := models.NormalizeCategory(req.Category)
	if !category.Valid() {
		return nil, invalid("category %q must be one of %v", req.Category, models.Categories())
	}

	return &models.Transaction{
		Amount:      amount,
		Date:        date,
		Description: description,
		Category:    category,
	}, nil
}
