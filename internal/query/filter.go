// Package query defines the filter criteria shared by the in-memory
// predicate path and the SQL search path in repos. Both must agree: the
// criteria here are the single definition of what matches.
package query

import (
	"iter"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"orderdesk/internal/domain"
)

// OrderFilter holds optional criteria; absent ones impose no constraint.
// All supplied criteria are ANDed.
type OrderFilter struct {
	Search     string
	Status     domain.OrderStatus
	CustomerID string
	From       time.Time // inclusive
	To         time.Time // exclusive
}

func (f OrderFilter) Match(o domain.Order) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(o.CustomerName), q) &&
			!strings.Contains(strings.ToLower(o.CustomerEmail), q) &&
			!strings.Contains(strings.ToLower(o.ID), q) &&
			!strings.Contains(strings.ToLower(o.OrderNumber), q) {
			return false
		}
	}
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.CustomerID != "" && o.CustomerID != f.CustomerID {
		return false
	}
	if !f.From.IsZero() && o.OrderDate.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !o.OrderDate.Before(f.To) {
		return false
	}
	return true
}

type ProductFilter struct {
	Search   string
	Category domain.Category
	Active   *bool
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	InStock  *bool
}

func (f ProductFilter) Match(p domain.Product) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Active != nil && p.Active != *f.Active {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.InStock != nil && p.InStock() != *f.InStock {
		return false
	}
	return true
}

type CustomerFilter struct {
	Search  string
	Active  *bool
	City    string
	Country string
}

func (f CustomerFilter) Match(c domain.Customer) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.FullName()), q) &&
			!strings.Contains(strings.ToLower(c.Email), q) {
			return false
		}
	}
	if f.Active != nil && c.Active != *f.Active {
		return false
	}
	if f.City != "" && !strings.EqualFold(c.City, f.City) {
		return false
	}
	if f.Country != "" && !strings.EqualFold(c.Country, f.Country) {
		return false
	}
	return true
}

// filtered yields matching elements lazily in source order. The sequence is
// restartable; each range walks the source again.
func filtered[T any](src []T, match func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range src {
			if !match(v) {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

func Orders(src []domain.Order, f OrderFilter) iter.Seq[domain.Order] {
	return filtered(src, f.Match)
}

func Products(src []domain.Product, f ProductFilter) iter.Seq[domain.Product] {
	return filtered(src, f.Match)
}

func Customers(src []domain.Customer, f CustomerFilter) iter.Seq[domain.Customer] {
	return filtered(src, f.Match)
}
