package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is one line of an order. UnitPrice is a snapshot taken when the
// item was added; later catalog price changes never move an existing line.
type OrderItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

func (it OrderItem) LineTotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// ItemsTotal sums line totals. Zero for an empty list.
func ItemsTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	CustomerID      string          `json:"customerId"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	Items           []OrderItem     `json:"items"`
	Status          OrderStatus     `json:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Notes           string          `json:"notes,omitempty"`
	ShippingAddress string          `json:"shippingAddress,omitempty"`
	BillingAddress  string          `json:"billingAddress,omitempty"`
	OrderDate       time.Time       `json:"orderDate"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// RecalculateTotal rederives TotalAmount from the current items. It is the
// only way TotalAmount may change.
func (o *Order) RecalculateTotal() {
	o.TotalAmount = ItemsTotal(o.Items)
}

func (o Order) Validate() error {
	if strings.TrimSpace(o.CustomerID) == "" {
		return ValidationError{Field: "customerId", Reason: "required"}
	}
	if len(o.Items) == 0 {
		return ValidationError{Field: "items", Reason: "at least one item required"}
	}
	for _, it := range o.Items {
		if it.Quantity <= 0 {
			return ValidationError{Field: "quantity", Reason: "must be positive"}
		}
		if it.UnitPrice.IsNegative() {
			return ValidationError{Field: "unitPrice", Reason: "must not be negative"}
		}
	}
	if !o.Status.Valid() {
		return ValidationError{Field: "status", Reason: "unknown status"}
	}
	if !o.TotalAmount.Equal(ItemsTotal(o.Items)) {
		return ValidationError{Field: "totalAmount", Reason: "does not match item totals"}
	}
	return nil
}
