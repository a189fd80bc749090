package handlers

import (
	"errors"

	"katalog/internal/repositories"
	"katalog/internal/serializers"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// respondError maps a service error onto an HTTP response. resource names
// the entity in messages, e.g. "Product".
func respondError(c *fiber.Ctx, log *zap.Logger, err error, resource string) error {
	var fieldErrs serializers.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  fieldErrs,
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": resource + " not found",
		})
	case errors.Is(err, repositories.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": resource + " already exists",
		})
	case errors.Is(err, repositories.ErrConstraint):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Constraint violation",
			"error":   err.Error(),
		})
	}

	log.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
		"error":   err.Error(),
	})
}

func invalidBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// methodNotAllowed answers verbs a route does not support.
func methodNotAllowed(allow string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAllow, allow)
		return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
			"message": "Method \"" + c.Method() + "\" not allowed.",
		})
	}
}
