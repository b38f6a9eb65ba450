package handlers

import (
	"finance-tracker/internal/dto"
	"finance-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BudgetHandler struct {
	budgetService *service.BudgetService
	logger        *zap.Logger
}

func NewBudgetHandler(budgetService *service.BudgetService, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		logger:        logger,
	}
}

// ListBudgets godoc
// @Summary List budgets
// @Description Budget entries in the order they were added
// @Tags budget
// @Produce json
// @Param month query string false "Budget month label, e.g. April'25"
// @Success 200 {array} dto.BudgetResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/budget [get]
func (h *BudgetHandler) ListBudgets(c *fiber.Ctx) error {
	budgets, err := h.budgetService.List(c.Context(), c.Query("month"))
	if err != nil {
		return respondError(c, h.logger, err, "budget", "Failed to fetch budgets")
	}
	return c.JSON(budgets)
}

// CreateBudget godoc
// @Summary Create a budget entry
// @Tags budget
// @Accept json
// @Produce json
// @Param request body dto.BudgetRequest true "Budget"
// @Security Bearer
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/budget [post]
func (h *BudgetHandler) CreateBudget(c *fiber.Ctx) error {
	var req dto.BudgetRequest
	if err := dto.Decode(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	budget, err := h.budgetService.Create(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "budget", "Failed to save budget")
	}

	return c.Status(fiber.StatusCreated).JSON(budget)
}
