package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/shopspring/decimal"

	"orderdesk/internal/config"
	"orderdesk/internal/http/handlers"
	applog "orderdesk/internal/log"
	"orderdesk/internal/repos"
)

func main() {
	cfg := config.Load()

	// Money renders as a JSON number, matching the legacy API payloads
	decimal.MarshalJSONWithoutQuotes = true

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))

	// ---------- API ----------
	deps := handlers.NewDeps(db, cfg)
	api := app.Group("/api")

	customers := api.Group("/customers")
	customers.Get("/", deps.CustomerHandler.List)
	customers.Post("/", deps.CustomerHandler.Create)
	customers.Get("/:id", deps.CustomerHandler.Get)
	customers.Put("/:id", deps.CustomerHandler.Update)
	customers.Delete("/:id", deps.CustomerHandler.Delete)

	products := api.Group("/products")
	products.Get("/", deps.ProductHandler.List)
	products.Post("/", deps.ProductHandler.Create)
	products.Get("/:id", deps.ProductHandler.Get)
	products.Put("/:id", deps.ProductHandler.Update)
	products.Delete("/:id", deps.ProductHandler.Delete)

	orders := api.Group("/orders")
	orders.Get("/", deps.OrderHandler.List)
	orders.Post("/", deps.OrderHandler.Create)
	orders.Get("/:id", deps.OrderHandler.Get)
	orders.Put("/:id", deps.OrderHandler.Update)
	orders.Patch("/:id/status", deps.OrderHandler.UpdateStatus)
	orders.Delete("/:id", deps.OrderHandler.Delete)

	dashboard := api.Group("/dashboard")
	dashboard.Get("/stats", deps.DashboardHandler.Stats)
	dashboard.Get("/recent-activity", deps.DashboardHandler.Recent)

	analytics := api.Group("/analytics")
	analytics.Get("/product-rankings", deps.AnalyticsHandler.Rankings)
	analytics.Get("/category-statistics", deps.AnalyticsHandler.CategoryStats)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
