package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category is the closed set of catalog categories the store carries.
type Category string

const (
	CategoryElektronik  Category = "Elektronik"
	CategoryMoebel      Category = "Möbel"
	CategoryBeleuchtung Category = "Beleuchtung"
	CategoryBuerobedarf Category = "Bürobedarf"
	CategoryKleidung    Category = "Kleidung"
	CategoryHaushalt    Category = "Haushalt"
)

func Categories() []Category {
	return []Category{
		CategoryElektronik, CategoryMoebel, CategoryBeleuchtung,
		CategoryBuerobedarf, CategoryKleidung, CategoryHaushalt,
	}
}

func (c Category) Valid() bool {
	for _, k := range Categories() {
		if c == k {
			return true
		}
	}
	return false
}

// DefaultLowStockThreshold is the stock level at or below which a product
// counts as low-stock unless configured otherwise.
const DefaultLowStockThreshold = 10

type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      Category        `json:"category"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (p Product) InStock() bool { return p.StockQuantity > 0 }

// LowStock reports whether the product needs restocking. Inactive products
// never count; they are not for sale.
func (p Product) LowStock(threshold int) bool {
	return p.Active && p.StockQuantity <= threshold
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ValidationError{Field: "name", Reason: "required"}
	}
	if !p.Category.Valid() {
		return ValidationError{Field: "category", Reason: "unknown category"}
	}
	if p.Price.IsNegative() {
		return ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if p.StockQuantity < 0 {
		return ValidationError{Field: "stockQuantity", Reason: "must not be negative"}
	}
	return nil
}
