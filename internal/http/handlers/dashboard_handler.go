package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "orderdesk/internal/log"
	"orderdesk/internal/services"
)

type DashboardHandler struct {
	Catalog  *services.CatalogService
	StatsSvc *services.StatsService
}

// Stats serves the aggregate numbers. The three fetches run concurrently;
// if any slot failed we still cannot aggregate a partial snapshot here, so
// the first failure is reported.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	snap := h.Catalog.LoadSnapshot()
	if err := snap.Err(); err != nil {
		return respondErr(c, "dashboard.stats", err)
	}
	stats := h.StatsSvc.Dashboard(snap, time.Now())
	applog.Info(c, "dashboard.stats", map[string]any{"orders": stats.TotalOrders})
	return c.JSON(stats)
}

// Recent serves recent orders plus the low-stock list. Partial data is
// acceptable here: a failed slot yields an empty list for that slot.
func (h *DashboardHandler) Recent(c *fiber.Ctx) error {
	snap := h.Catalog.LoadSnapshot()
	if snap.OrdersErr != nil {
		applog.Error(c, "dashboard.recent.orders", snap.OrdersErr, nil)
	}
	if snap.ProductsErr != nil {
		applog.Error(c, "dashboard.recent.products", snap.ProductsErr, nil)
	}
	return c.JSON(h.StatsSvc.Recent(snap, 5))
}
