package dto

import (
	"time"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// BudgetRequest is the body of POST /api/budget.
type BudgetRequest struct {
	Month    string           `json:"month" validate:"required" example:"April'25"`
	Category string           `json:"category" validate:"required"`
	Budget   *decimal.Decimal `json:"budget" validate:"required"`
}

type BudgetResponse struct {
	ID        string          `json:"id"`
	Month     string          `json:"month"`
	Category  string          `json:"category"`
	Budget    decimal.Decimal `json:"budget"`
	CreatedAt string          `json:"created_at"`
}

func NewBudgetResponse(b *models.Budget) BudgetResponse {
	return BudgetResponse{
		ID:        b.ID,
		Month:     b.Month,
		Category:  b.Category.String(),
		Budget:    b.Budget,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func NewBudgetResponses(budgets []*models.Budget) []BudgetResponse {
	out := make([]BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, NewBudgetResponse(b))
	}
	return out
}
