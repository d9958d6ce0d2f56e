package handlers

import (
	"github.com/gofiber/fiber/v2"

	"orderdesk/internal/domain"
	applog "orderdesk/internal/log"
	"orderdesk/internal/query"
	"orderdesk/internal/services"
	"orderdesk/internal/validate"
)

type CustomerHandler struct {
	Catalog *services.CatalogService
}

func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var f query.CustomerFilter
	if raw := c.Query("q"); raw != "" {
		q, ok := validate.Q(raw)
		if !ok {
			return badParam(c, "q")
		}
		f.Search = q
	}
	active, ok := validate.Flag(c.Query("active"))
	if !ok {
		return badParam(c, "active")
	}
	f.Active = active
	if raw := c.Query("city"); raw != "" {
		city, ok := validate.Q(raw)
		if !ok {
			return badParam(c, "city")
		}
		f.City = city
	}
	if raw := c.Query("country"); raw != "" {
		country, ok := validate.Q(raw)
		if !ok {
			return badParam(c, "country")
		}
		f.Country = country
	}

	customers, err := h.Catalog.ListCustomers(f)
	if err != nil {
		return respondErr(c, "customers.list", err)
	}
	return c.JSON(customers)
}

func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badParam(c, "id")
	}
	cu, err := h.Catalog.GetCustomer(id)
	if err != nil {
		return respondErr(c, "customers.get", err)
	}
	return c.JSON(cu)
}

func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var cu domain.Customer
	if err := c.BodyParser(&cu); err != nil {
		return badParam(c, "body")
	}
	cu.ID = "" // identity comes from the data layer
	created, err := h.Catalog.CreateCustomer(cu)
	if err != nil {
		return respondErr(c, "customers.create", err)
	}
	applog.Audit(c, "customers.create", map[string]any{"id": created.ID})
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badParam(c, "id")
	}
	var cu domain.Customer
	if err := c.BodyParser(&cu); err != nil {
		return badParam(c, "body")
	}
	updated, err := h.Catalog.UpdateCustomer(id, cu)
	if err != nil {
		return respondErr(c, "customers.update", err)
	}
	applog.Audit(c, "customers.update", map[string]any{"id": id})
	return c.JSON(updated)
}

func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badParam(c, "id")
	}
	if err := h.Catalog.DeleteCustomer(id); err != nil {
		return respondErr(c, "customers.delete", err)
	}
	applog.Audit(c, "customers.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
