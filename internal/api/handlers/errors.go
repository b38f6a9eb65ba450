package handlers

import (
	"errors"
	"strings"

	"finance-tracker/internal/repository"
	"finance-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// respondError maps service and repository errors onto the JSON error
// envelope. Anything unexpected is logged and reported as a 500 with
// fallback as the message.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error, entity, fallback string) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(err),
		})
	case errors.Is(err, repository.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid " + entity + " ID",
		})
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": strings.ToUpper(entity[:1]) + entity[1:] + " not found",
		})
	}

	logger.Error(fallback, zap.Error(err), zap.String("path", c.Path()))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fallback,
	})
}

func validationMessage(err error) string {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return verr.Reason
	}
	return err.Error()
}
