package repository

import (
	"context"
	"fmt"
	"time"

	"finance-tracker/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BudgetRepository stores budgets in PostgreSQL.
type BudgetRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewBudgetRepository(db *pgxpool.Pool, logger *zap.Logger) *BudgetRepository {
	return &BudgetRepository{
		db:     db,
		logger: logger,
	}
}

func (r *BudgetRepository) Create(ctx context.Context, b *models.Budget) error {
	now := time.Now().UTC()
	id := uuid.New()

	query := squirrel.Insert("budgets").
		Columns("id", "month", "category", "budget", "created_at").
		Values(id, b.Month, string(b.Category), b.Budget, now).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}

	b.ID = id.String()
	b.CreatedAt = now
	return nil
}

func listBudgetsQuery(month string) squirrel.SelectBuilder {
	query := squirrel.Select("id::text", "month", "category", "budget::text", "created_at").
		From("budgets").
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)
	if month != "" {
		query = query.Where(squirrel.Eq{"month": month})
	}
	return query
}

func (r *BudgetRepository) List(ctx context.Context, month string) ([]*models.Budget, error) {
	sql, args, err := listBudgetsQuery(month).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	budgets := make([]*models.Budget, 0)
	for rows.Next() {
		var (
			b        models.Budget
			category string
			amount   string
		)
		if err := rows.Scan(&b.ID, &b.Month, &category, &amount, &b.CreatedAt); err != nil {
			return nil, err
		}
		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse budget %q: %w", amount, err)
		}
		b.Category = models.Category(category)
		b.Budget = parsed
		budgets = append(budgets, &b)
	}

	r.logger.Debug("Budgets loaded", zap.Int("count", len(budgets)), zap.String("month", month))

	return budgets, rows.Err()
}
