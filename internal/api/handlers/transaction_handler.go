package handlers

import (
	"finance-tracker/internal/dto"
	"finance-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	txService *service.TransactionService
	logger    *zap.Logger
}

func NewTransactionHandler(txService *service.TransactionService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		txService: txService,
		logger:    logger,
	}
}

// ListTransactions godoc
// @Summary List transactions
// @Description All transactions, newest date first
// @Tags transactions
// @Produce json
// @Success 200 {array} dto.TransactionResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/transactions [get]
func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	txs, err := h.txService.List(c.Context())
	if err != nil {
		return respondError(c, h.logger, err, "transaction", "Failed to fetch transactions")
	}
	return c.JSON(txs)
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Description Records one expense. Category is case-insensitive.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body dto.TransactionRequest true "Transaction"
// @Security Bearer
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var req dto.TransactionRequest
	if err := dto.Decode(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	tx, err := h.txService.Create(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "transaction", "Failed to create transaction")
	}

	return c.Status(fiber.StatusCreated).JSON(tx)
}

// UpdateTransaction godoc
// @Summary Update a transaction
// @Description Replaces amount, date, description and category
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body dto.TransactionRequest true "Transaction"
// @Security Bearer
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *fiber.Ctx) error {
	var req dto.TransactionRequest
	if err := dto.Decode(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	tx, err := h.txService.Update(c.Context(), utils.CopyString(c.Params("id")), &req)
	if err != nil {
		return respondError(c, h.logger, err, "transaction", "Failed to update transaction")
	}

	return c.JSON(tx)
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Security Bearer
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *fiber.Ctx) error {
	if err := h.txService.Delete(c.Context(), utils.CopyString(c.Params("id"))); err != nil {
		return respondError(c, h.logger, err, "transaction", "Failed to delete transaction")
	}

	return c.JSON(dto.MessageResponse{Message: "Transaction deleted successfully"})
}
