package handlers

import (
	"github.com/gofiber/fiber/v2"

	"orderdesk/internal/query"
	"orderdesk/internal/services"
	"orderdesk/internal/validate"
)

type AnalyticsHandler struct {
	Catalog *services.CatalogService
}

// Rankings serves the full catalog ranked by price, overall and per category.
func (h *AnalyticsHandler) Rankings(c *fiber.Ctx) error {
	products, err := h.Catalog.ListProducts(query.ProductFilter{})
	if err != nil {
		return respondErr(c, "analytics.rankings", err)
	}
	return c.JSON(services.ProductRankings(products))
}

// CategoryStats serves per-category price and stock aggregates; minProducts
// drops sparse categories.
func (h *AnalyticsHandler) CategoryStats(c *fiber.Ctx) error {
	min := 1
	if raw := c.Query("minProducts"); raw != "" {
		n, ok := validate.Qty(raw)
		if !ok {
			return badParam(c, "minProducts")
		}
		min = n
	}
	products, err := h.Catalog.ListProducts(query.ProductFilter{})
	if err != nil {
		return respondErr(c, "analytics.categories", err)
	}
	return c.JSON(services.CategoryStats(products, min))
}
