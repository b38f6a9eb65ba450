package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"finance-tracker/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var transactionColumns = []string{"id::text", "amount::text", "date", "description", "category", "created_at", "updated_at"}

// TransactionRepository stores transactions in PostgreSQL.
type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	now := time.Now().UTC()
	id := uuid.New()

	query := squirrel.Insert("transactions").
		Columns("id", "amount", "date", "description", "category", "created_at", "updated_at").
		Values(id, tx.Amount, tx.Date, tx.Description, string(tx.Category), now, now).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	tx.ID = id.String()
	tx.CreatedAt = now
	tx.UpdatedAt = now
	return nil
}

// listTransactionsQuery selects newest dates first; ties keep the latest
// insert on top.
func listTransactionsQuery(filter TransactionFilter) squirrel.SelectBuilder {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		OrderBy("date DESC", "created_at DESC").
		PlaceholderFormat(squirrel.Dollar)
	if !filter.From.IsZero() {
		query = query.Where(squirrel.GtOrEq{"date": filter.From})
	}
	if !filter.To.IsZero() {
		query = query.Where(squirrel.Lt{"date": filter.To})
	}
	return query
}

func (r *TransactionRepository) List(ctx context.Context, filter TransactionFilter) ([]*models.Transaction, error) {
	sql, args, err := listTransactionsQuery(filter).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
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
	uid, err := ParseUUID(id)
	if err != nil {
		return nil, err
	}

	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"id": uid}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	tx, err := scanTransaction(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return tx, err
}

func (r *TransactionRepository) Update(ctx context.Context, id string, tx *models.Transaction) (*models.Transaction, error) {
	uid, err := ParseUUID(id)
	if err != nil {
		return nil, err
	}

	sql, args, err := updateTransactionQuery(uid, tx, time.Now().UTC()).ToSql()
	if err != nil {
		return nil, err
	}

	updated, err := scanTransaction(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	return updated, nil
}

// updateTransactionQuery leaves created_at untouched.
func updateTransactionQuery(id uuid.UUID, tx *models.Transaction, now time.Time) squirrel.UpdateBuilder {
	return squirrel.Update("transactions").
		Set("amount", tx.Amount).
		Set("date", tx.Date).
		Set("description", tx.Description).
		Set("category", string(tx.Category)).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(transactionColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	uid, err := ParseUUID(id)
	if err != nil {
		return err
	}

	query := squirrel.Delete("transactions").
		Where(squirrel.Eq{"id": uid}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) Count(ctx context.Context) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("transactions").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var (
		tx       models.Transaction
		amount   string
		category string
	)
	if err := row.Scan(&tx.ID, &amount, &tx.Date, &tx.Description, &category, &tx.CreatedAt, &tx.UpdatedAt); err != nil {
		return nil, err
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	tx.Amount = parsed
	tx.Category = models.Category(category)
	tx.Date = tx.Date.UTC()
	return &tx, nil
}
