package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"orderdesk/internal/domain"
	applog "orderdesk/internal/log"
)

// respondErr maps the domain error taxonomy onto HTTP statuses. Client
// mistakes stay 4xx; only data-layer failures log as errors.
func respondErr(c *fiber.Ctx, action string, err error) error {
	var (
		validation domain.ValidationError
		reference  domain.ReferenceError
		index      domain.IndexError
		transition domain.InvalidTransitionError
		notfound   domain.NotFoundError
		transport  domain.TransportError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &index):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &reference):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &transition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &notfound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &transport):
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "data layer unavailable"})
	default:
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}

func badParam(c *fiber.Ctx, field string) error {
	applog.Security(c, "validation.fail", map[string]any{"field": field})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid " + field})
}
