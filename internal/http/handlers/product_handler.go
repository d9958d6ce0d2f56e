package handlers

import (
	"github.com/gofiber/fiber/v2"

	"orderdesk/internal/domain"
	applog "orderdesk/internal/log"
	"orderdesk/internal/query"
	"orderdesk/internal/services"
	"orderdesk/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Stats   *services.StatsService
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	var f query.ProductFilter
	if raw := c.Query("q"); raw != "" {
		q, ok := validate.Q(raw)
		if !ok {
			return badParam(c, "q")
		}
		f.Search = q
	}
	if raw := c.Query("category"); raw != "" {
		cat, ok := validate.Category(raw)
		if !ok {
			return badParam(c, "category")
		}
		f.Category = cat
	}
	active, ok := validate.Flag(c.Query("active"))
	if !ok {
		return badParam(c, "active")
	}
	f.Active = active
	inStock, ok := validate.Flag(c.Query("inStock"))
	if !ok {
		return badParam(c, "inStock")
	}
	f.InStock = inStock
	if raw := c.Query("minPrice"); raw != "" {
		d, ok := validate.Money(raw)
		if !ok {
			return badParam(c, "minPrice")
		}
		f.MinPrice = &d
	}
	if raw := c.Query("maxPrice"); raw != "" {
		d, ok := validate.Money(raw)
		if !ok {
			return badParam(c, "maxPrice")
		}
		f.MaxPrice = &d
	}

	products, err := h.Catalog.ListProducts(f)
	if err != nil {
		return respondErr(c, "products.list", err)
	}

	// lowStock narrows the result set after the shared filter ran
	lowStock, ok := validate.Flag(c.Query("lowStock"))
	if !ok {
		return badParam(c, "lowStock")
	}
	if lowStock != nil && *lowStock {
		products = services.LowStockProducts(products, h.Stats.LowStockThreshold)
	}
	return c.JSON(products)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badParam(c, "id")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return respondErr(c, "products.get", err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var p domain.Product
	if err := c.BodyParser(&p); err != nil {
		return badParam(c, "body")
	}
	p.ID = ""
	created, err := h.Catalog.CreateProduct(p)
	if err != nil {
		return respondErr(c, "products.create", err)
	}
	applog.Audit(c, "products.create", map[string]any{"id": created.ID})
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badParam(c, "id")
	}
	var p domain.Product
	if err := c.BodyParser(&p); err != nil {
		return badParam(c, "body")
	}
	updated, err := h.Catalog.UpdateProduct(id, p)
	if err != nil {
		return respondErr(c, "products.update", err)
	}
	applog.Audit(c, "products.update", map[string]any{"id": id})
	return c.JSON(updated)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badParam(c, "id")
	}
	if err := h.Catalog.DeleteProduct(id); err != nil {
		return respondErr(c, "products.delete", err)
	}
	applog.Audit(c, "products.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
