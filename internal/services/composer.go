package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"orderdesk/internal/domain"
)

// Catalog is an immutable snapshot of the customer and product data the
// composer resolves references against. It is supplied by the caller; the
// composer holds no hidden state.
type Catalog struct {
	customers map[string]domain.Customer
	products  map[string]domain.Product
}

func NewCatalog(customers []domain.Customer, products []domain.Product) Catalog {
	c := Catalog{
		customers: make(map[string]domain.Customer, len(customers)),
		products:  make(map[string]domain.Product, len(products)),
	}
	for _, cu := range customers {
		c.customers[cu.ID] = cu
	}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c Catalog) Customer(id string) (domain.Customer, bool) {
	cu, ok := c.customers[id]
	return cu, ok
}

func (c Catalog) Product(id string) (domain.Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

// Draft is an order under construction or re-opened for edit. It is owned
// exclusively by the editing session and carries no identity until the data
// layer assigns one on submit. OrderID is set only for edits.
type Draft struct {
	OrderID         string
	CustomerID      string
	Status          domain.OrderStatus
	Items           []domain.OrderItem
	Notes           string
	ShippingAddress string
	BillingAddress  string
}

func NewDraft() *Draft {
	return &Draft{Status: domain.StatusPending, Items: []domain.OrderItem{}}
}

// DraftFromOrder re-enters edit mode seeded from a persisted order.
func DraftFromOrder(o domain.Order) *Draft {
	items := make([]domain.OrderItem, len(o.Items))
	copy(items, o.Items)
	return &Draft{
		OrderID:         o.ID,
		CustomerID:      o.CustomerID,
		Status:          o.Status,
		Items:           items,
		Notes:           o.Notes,
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
	}
}

// Composer mutates drafts against a catalog snapshot. Every operation
// either fully succeeds or leaves the draft untouched.
type Composer struct {
	catalog Catalog
}

func NewComposer(catalog Catalog) *Composer { return &Composer{catalog: catalog} }

// AddItem appends a line for the product with quantity 1 and the current
// catalog price as the unit-price snapshot.
func (cp *Composer) AddItem(d *Draft, productID string) error {
	p, ok := cp.catalog.Product(productID)
	if !ok || !p.Active {
		return domain.ReferenceError{Entity: "product", ID: productID}
	}
	d.Items = append(d.Items, domain.OrderItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    1,
		UnitPrice:   p.Price,
	})
	return nil
}

func (cp *Composer) RemoveItem(d *Draft, index int) error {
	if index < 0 || index >= len(d.Items) {
		return domain.IndexError{Index: index, Len: len(d.Items)}
	}
	d.Items = append(d.Items[:index], d.Items[index+1:]...)
	return nil
}

func (cp *Composer) SetQuantity(d *Draft, index, qty int) error {
	if index < 0 || index >= len(d.Items) {
		return domain.IndexError{Index: index, Len: len(d.Items)}
	}
	if qty <= 0 {
		return domain.ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	d.Items[index].Quantity = qty
	return nil
}

// LineRequest names a product and a quantity as submitted by a client.
// Unit prices never travel with it.
type LineRequest struct {
	ProductID string
	Quantity  int
}

// ApplyLines reshapes the draft's items to the requested lines. A line whose
// product matches the existing line at the same position keeps its unit-price
// snapshot; new or re-pointed lines snapshot the current catalog price. The
// draft is untouched on failure.
func (cp *Composer) ApplyLines(d *Draft, lines []LineRequest) error {
	items := make([]domain.OrderItem, 0, len(lines))
	for i, ln := range lines {
		if ln.Quantity <= 0 {
			return domain.ValidationError{Field: "quantity", Reason: "must be positive"}
		}
		if i < len(d.Items) && d.Items[i].ProductID == ln.ProductID {
			it := d.Items[i]
			it.Quantity = ln.Quantity
			items = append(items, it)
			continue
		}
		p, ok := cp.catalog.Product(ln.ProductID)
		if !ok || !p.Active {
			return domain.ReferenceError{Entity: "product", ID: ln.ProductID}
		}
		items = append(items, domain.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    ln.Quantity,
			UnitPrice:   p.Price,
		})
	}
	d.Items = items
	return nil
}

// Total is pure; zero for an empty draft.
func Total(d *Draft) decimal.Decimal {
	return domain.ItemsTotal(d.Items)
}

// ToSubmission shapes the draft for the data layer: resolved customer,
// copied items, computed total. The draft itself is left unchanged.
func (cp *Composer) ToSubmission(d *Draft) (domain.Order, error) {
	if strings.TrimSpace(d.CustomerID) == "" {
		return domain.Order{}, domain.ValidationError{Field: "customerId", Reason: "required"}
	}
	cu, ok := cp.catalog.Customer(d.CustomerID)
	if !ok {
		return domain.Order{}, domain.ReferenceError{Entity: "customer", ID: d.CustomerID}
	}
	if len(d.Items) == 0 {
		return domain.Order{}, domain.ValidationError{Field: "items", Reason: "at least one item required"}
	}

	status := d.Status
	if status == "" {
		status = domain.StatusPending
	}
	items := make([]domain.OrderItem, len(d.Items))
	copy(items, d.Items)

	o := domain.Order{
		ID:              d.OrderID,
		CustomerID:      cu.ID,
		CustomerName:    cu.FullName(),
		CustomerEmail:   cu.Email,
		Items:           items,
		Status:          status,
		Notes:           d.Notes,
		ShippingAddress: d.ShippingAddress,
		BillingAddress:  d.BillingAddress,
	}
	o.RecalculateTotal()
	if err := o.Validate(); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}
