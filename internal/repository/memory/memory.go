// Package memory keeps both collections in process memory. It backs the
// "memory" store and the handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"finance-tracker/internal/models"
	"finance-tracker/internal/repository"

	"github.com/google/uuid"
)

type Store struct {
	mu           sync.Mutex
	transactions []models.Transaction
	budgets      []models.Budget
	now          func() time.Time
}

func New() *Store {
	return &Store{now: func() time.Time { return time.Now().UTC() }}
}

// Transactions exposes the store as a repository.TransactionStore.
func (s *Store) Transactions() repository.TransactionStore {
	return transactionStore{s}
}

// Budgets exposes the store as a repository.BudgetStore.
func (s *Store) Budgets() repository.BudgetStore {
	return budgetStore{s}
}

type transactionStore struct{ s *Store }

func (t transactionStore) Create(_ context.Context, tx *models.Transaction) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	now := t.s.now()
	tx.ID = uuid.NewString()
	tx.CreatedAt = now
	tx.UpdatedAt = now
	t.s.transactions = append(t.s.transactions, *tx)
	return nil
}

func (t transactionStore) List(_ context.Context, filter repository.TransactionFilter) ([]*models.Transaction, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	out := make([]*models.Transaction, 0, len(t.s.transactions))
	for i := range t.s.transactions {
		if !filter.Match(t.s.transactions[i].Date) {
			continue
		}
		tx := t.s.transactions[i]
		out = append(out, &tx)
	}
	// Newest date first; later inserts win ties.
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (t transactionStore) GetByID(_ context.Context, id string) (*models.Transaction, error) {
	if _, err := repository.ParseUUID(id); err != nil {
		return nil, err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	i := t.s.indexOf(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	tx := t.s.transactions[i]
	return &tx, nil
}

func (t transactionStore) Update(_ context.Context, id string, tx *models.Transaction) (*models.Transaction, error) {
	if _, err := repository.ParseUUID(id); err != nil {
		return nil, err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	i := t.s.indexOf(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	stored := &t.s.transactions[i]
	stored.Amount = tx.Amount
	stored.Date = tx.Date
	stored.Description = tx.Description
	stored.Category = tx.Category
	stored.UpdatedAt = t.s.now()

	updated := *stored
	return &updated, nil
}

func (t transactionStore) Delete(_ context.Context, id string) error {
	if _, err := repository.ParseUUID(id); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	i := t.s.indexOf(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	t.s.transactions = append(t.s.transactions[:i], t.s.transactions[i+1:]...)
	return nil
}

func (t transactionStore) Count(_ context.Context) (int64, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return int64(len(t.s.transactions)), nil
}

// indexOf must be called with mu held.
func (s *Store) indexOf(id string) int {
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			return i
		}
	}
	return -1
}

type budgetStore struct{ s *Store }

func (b budgetStore) Create(_ context.Context, budget *models.Budget) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	budget.ID = uuid.NewString()
	budget.CreatedAt = b.s.now()
	b.s.budgets = append(b.s.budgets, *budget)
	return nil
}

func (b budgetStore) List(_ context.Context, month string) ([]*models.Budget, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	out := make([]*models.Budget, 0, len(b.s.budgets))
	for i := range b.s.budgets {
		if month != "" && b.s.budgets[i].Month != month {
			continue
		}
		budget := b.s.budgets[i]
		out = append(out, &budget)
	}
	return out, nil
}
