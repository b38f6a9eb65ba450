// Package sqlite stores transactions and budgets in a single SQLite file.
// Amounts are kept as decimal text and times as fixed-width UTC text so that
// string ordering matches chronological ordering.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"finance-tracker/internal/models"
	"finance-tracker/internal/repository"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

const timestampLayout = "2006-01-02 15:04:05.000000000"

var transactionColumns = []string{"id", "amount", "date", "description", "category", "created_at", "updated_at"}

type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open creates the database directory if needed, applies migrations and
// returns a ready store.
func Open(dbPath string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer at a time avoids SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Info("SQLite store opened", zap.String("path", dbPath))
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Transactions() repository.TransactionStore { return &TransactionRepository{s} }
func (s *Store) Budgets() repository.BudgetStore           { return &BudgetRepository{s} }

type TransactionRepository struct{ s *Store }

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	now := time.Now().UTC()
	id := uuid.NewString()

	query, args, err := squirrel.Insert("transactions").
		Columns(transactionColumns...).
		Values(id, tx.Amount.String(), tx.Date.Format(models.DateLayout), tx.Description,
			string(tx.Category), now.Format(timestampLayout), now.Format(timestampLayout)).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	tx.ID = id
	tx.CreatedAt = now
	tx.UpdatedAt = now
	return nil
}

func (r *TransactionRepository) List(ctx context.Context, filter repository.TransactionFilter) ([]*models.Transaction, error) {
	builder := squirrel.Select(transactionColumns...).
		From("transactions").
		OrderBy("date DESC", "created_at DESC")
	if !filter.From.IsZero() {
		builder = builder.Where(squirrel.GtOrEq{"date": filter.From.Format(models.DateLayout)})
	}
	if !filter.To.IsZero() {
		builder = builder.Where(squirrel.Lt{"date": filter.To.Format(models.DateLayout)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]*models.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	if _, err := repository.ParseUUID(id); err != nil {
		return nil, err
	}

	query, args, err := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	tx, err := scanTransaction(r.s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return tx, err
}

func (r *TransactionRepository) Update(ctx context.Context, id string, tx *models.Transaction) (*models.Transaction, error) {
	if _, err := repository.ParseUUID(id); err != nil {
		return nil, err
	}

	query, args, err := squirrel.Update("transactions").
		Set("amount", tx.Amount.String()).
		Set("date", tx.Date.Format(models.DateLayout)).
		Set("description", tx.Description).
		Set("category", string(tx.Category)).
		Set("updated_at", time.Now().UTC().Format(timestampLayout)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	res, err := r.s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	if _, err := repository.ParseUUID(id); err != nil {
		return err
	}

	query, args, err := squirrel.Delete("transactions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&count); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

type BudgetRepository struct{ s *Store }

func (r *BudgetRepository) Create(ctx context.Context, b *models.Budget) error {
	now := time.Now().UTC()
	id := uuid.NewString()

	query, args, err := squirrel.Insert("budgets").
		Columns("id", "month", "category", "budget", "created_at").
		Values(id, b.Month, string(b.Category), b.Budget.String(), now.Format(timestampLayout)).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}

	b.ID = id
	b.CreatedAt = now
	return nil
}

func (r *BudgetRepository) List(ctx context.Context, month string) ([]*models.Budget, error) {
	builder := squirrel.Select("id", "month", "category", "budget", "created_at").
		From("budgets").
		OrderBy("rowid ASC")
	if month != "" {
		builder = builder.Where(squirrel.Eq{"month": month})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	budgets := make([]*models.Budget, 0)
	for rows.Next() {
		var (
			b                           models.Budget
			category, amount, createdAt string
		)
		if err := rows.Scan(&b.ID, &b.Month, &category, &amount, &createdAt); err != nil {
			return nil, err
		}
		if b.Budget, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse budget %q: %w", amount, err)
		}
		if b.CreatedAt, err = time.Parse(timestampLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		b.Category = models.Category(category)
		budgets = append(budgets, &b)
	}

	r.s.logger.Debug("Budgets loaded", zap.Int("count", len(budgets)), zap.String("month", month))
	return budgets, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var (
		tx                     models.Transaction
		amount, date, category string
		createdAt, updatedAt   string
		err                    error
	)
	if err = row.Scan(&tx.ID, &amount, &date, &tx.Description, &category, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if tx.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	if tx.Date, err = time.Parse(models.DateLayout, date); err != nil {
		return nil, fmt.Errorf("parse date %q: %w", date, err)
	}
	if tx.CreatedAt, err = time.Parse(timestampLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	if tx.UpdatedAt, err = time.Parse(timestampLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at %q: %w", updatedAt, err)
	}
	tx.Category = models.Category(category)
	return &tx, nil
}
