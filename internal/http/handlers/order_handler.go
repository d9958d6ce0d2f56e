package handlers

import (
	"github.com/gofiber/fiber/v2"

	"orderdesk/internal/domain"
	applog "orderdesk/internal/log"
	"orderdesk/internal/query"
	"orderdesk/internal/services"
	"orderdesk/internal/validate"
)

type OrderHandler struct {
	Catalog *services.CatalogService
	Orders  *services.OrderService
}

// orderRequest is the submission shape: customer reference plus line items.
// Unit prices are never taken from the client; the composer snapshots them
// from the catalog.
type orderRequest struct {
	CustomerID string `json:"customerId"`
	Status     string `json:"status,omitempty"`
	Items      []struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
	Notes           string `json:"notes"`
	ShippingAddress string `json:"shippingAddress"`
	BillingAddress  string `json:"billingAddress"`
}

// compose applies a request to a draft against a fresh catalog snapshot.
// For edits the draft arrives seeded from the persisted order, so lines with
// an unchanged product keep their unit-price snapshot. Any failure leaves
// nothing persisted.
func (h *OrderHandler) compose(req orderRequest, draft *services.Draft) (*services.Composer, error) {
	catalog, err := h.Catalog.ComposerCatalog()
	if err != nil {
		return nil, err
	}
	composer := services.NewComposer(catalog)

	draft.CustomerID = req.CustomerID
	draft.Notes = req.Notes
	draft.ShippingAddress = req.ShippingAddress
	draft.BillingAddress = req.BillingAddress
	if req.Status != "" {
		status, ok := validate.Status(req.Status)
		if !ok {
			return nil, domain.ValidationError{Field: "status", Reason: "unknown status"}
		}
		draft.Status = status
	}

	lines := make([]services.LineRequest, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, services.LineRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	if err := composer.ApplyLines(draft, lines); err != nil {
		return nil, err
	}
	return composer, nil
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	var f query.OrderFilter
	if raw := c.Query("q"); raw != "" {
		q, ok := validate.Q(raw)
		if !ok {
			return badParam(c, "q")
		}
		f.Search = q
	}
	if raw := c.Query("status"); raw != "" {
		status, ok := validate.Status(raw)
		if !ok {
			return badParam(c, "status")
		}
		f.Status = status
	}
	if raw := c.Query("customerId"); raw != "" {
		id, ok := validate.ID(raw)
		if !ok {
			return badParam(c, "customerId")
		}
		f.CustomerID = id
	}
	if raw := c.Query("from"); raw != "" {
		t, ok := validate.Date(raw)
		if !ok {
			return badParam(c, "from")
		}
		f.From = t
	}
	if raw := c.Query("to"); raw != "" {
		t, ok := validate.Date(raw)
		if !ok {
			return badParam(c, "to")
		}
		f.To = t
	}

	orders, err := h.Orders.List(f)
	if err != nil {
		return respondErr(c, "orders.list", err)
	}
	return c.JSON(orders)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badParam(c, "id")
	}
	o, err := h.Orders.Get(id)
	if err != nil {
		return respondErr(c, "orders.get", err)
	}
	return c.JSON(o)
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req orderRequest
	if err := c.BodyParser(&req); err != nil {
		return badParam(c, "body")
	}
	req.Status = "" // new orders always start PENDING

	draft := services.NewDraft()
	composer, err := h.compose(req, draft)
	if err != nil {
		return respondErr(c, "orders.create", err)
	}
	submission, err := composer.ToSubmission(draft)
	if err != nil {
		return respondErr(c, "orders.create", err)
	}
	created, err := h.Orders.Submit(submission)
	if err != nil {
		return respondErr(c, "orders.create", err)
	}
	applog.Audit(c, "orders.create", map[string]any{
		"id": created.ID, "order_number": created.OrderNumber, "total": created.TotalAmount,
	})
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badParam(c, "id")
	}
	var req orderRequest
	if err := c.BodyParser(&req); err != nil {
		return badParam(c, "body")
	}

	// re-enter edit mode on the stored order; existing lines carry their
	// price snapshots into the new draft
	draft, err := h.Orders.EditDraft(id)
	if err != nil {
		return respondErr(c, "orders.update", err)
	}
	composer, err := h.compose(req, draft)
	if err != nil {
		return respondErr(c, "orders.update", err)
	}
	submission, err := composer.ToSubmission(draft)
	if err != nil {
		return respondErr(c, "orders.update", err)
	}
	updated, err := h.Orders.Resubmit(id, submission)
	if err != nil {
		return respondErr(c, "orders.update", err)
	}
	applog.Audit(c, "orders.update", map[string]any{"id": id, "total": updated.TotalAmount})
	return c.JSON(updated)
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badParam(c, "id")
	}
	status, ok := validate.Status(c.Query("status"))
	if !ok {
		return badParam(c, "status")
	}
	updated, err := h.Orders.Transition(id, status)
	if err != nil {
		return respondErr(c, "orders.status", err)
	}
	applog.Audit(c, "orders.status", map[string]any{"id": id, "status": status})
	return c.JSON(updated)
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badParam(c, "id")
	}
	if err := h.Orders.Delete(id); err != nil {
		return respondErr(c, "orders.delete", err)
	}
	applog.Audit(c, "orders.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
