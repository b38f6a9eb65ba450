package dto

import (
	"time"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// TransactionRequest is the body of POST and PUT /api/transactions.
type TransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	Date        string           `json:"date" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Category    string           `json:"category" validate:"required"`
}

type TransactionResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

func NewTransactionResponse(tx *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		Amount:      tx.Amount,
		Date:        tx.Date.Format(models.DateLayout),
		Description: tx.Description,
		Category:    tx.Category.String(),
		CreatedAt:   tx.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   tx.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func NewTransactionResponses(txs []*models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, NewTransactionResponse(tx))
	}
	return out
}
