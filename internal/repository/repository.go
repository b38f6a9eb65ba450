package repository

import (
	"context"
	"errors"
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrInvalidID = errors.New("invalid record id")
)

// TransactionFilter narrows a listing to [From, To). Zero bounds are open.
type TransactionFilter struct {
	From time.Time
	To   time.Time
}

func (f TransactionFilter) Match(t time.Time) bool {
	if !f.From.IsZero() && t.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !t.Before(f.To) {
		return false
	}
	return true
}

// MonthFilter covers the calendar month starting at first.
func MonthFilter(first time.Time) TransactionFilter {
	start := time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC)
	return TransactionFilter{From: start, To: start.AddDate(0, 1, 0)}
}

// TransactionStore is the Transactions collection of the record store.
// Implementations assign IDs on Create and list newest dates first.
type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	List(ctx context.Context, filter TransactionFilter) ([]*models.Transaction, error)
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	Update(ctx context.Context, id string, tx *models.Transaction) (*models.Transaction, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// BudgetStore is the Budgets collection. Entries are only ever appended.
type BudgetStore interface {
	Create(ctx context.Context, b *models.Budget) error
	// List returns budgets in insertion order; an empty month returns all.
	List(ctx context.Context, month string) ([]*models.Budget, error)
}

// ParseUUID converts an opaque id into a UUID for the SQL backends.
func ParseUUID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}
	return parsed, nil
}
