package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"orderdesk/internal/domain"
)

// StatsService computes dashboard aggregates. Every aggregate is a full
// recomputation over the given snapshot; the data volumes here are small
// and an incremental scheme would not pay for itself.
type StatsService struct {
	LowStockThreshold int
}

func NewStatsService(lowStockThreshold int) *StatsService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = domain.DefaultLowStockThreshold
	}
	return &StatsService{LowStockThreshold: lowStockThreshold}
}

// CountsByStatus always carries all six status keys, zero-filled.
func CountsByStatus(orders []domain.Order) map[domain.OrderStatus]int {
	counts := make(map[domain.OrderStatus]int, 6)
	for _, s := range domain.Statuses() {
		counts[s] = 0
	}
	for _, o := range orders {
		counts[o.Status]++
	}
	return counts
}

// TotalRevenue sums totalAmount over all non-cancelled orders.
func TotalRevenue(orders []domain.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.Status == domain.StatusCancelled {
			continue
		}
		total = total.Add(o.TotalAmount)
	}
	return total
}

func RevenueByStatus(orders []domain.Order, status domain.OrderStatus) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.Status == status {
			total = total.Add(o.TotalAmount)
		}
	}
	return total
}

// RevenueInPeriod sums non-cancelled revenue for orders with
// start <= orderDate < end.
func RevenueInPeriod(orders []domain.Order, start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.Status == domain.StatusCancelled {
			continue
		}
		if o.OrderDate.Before(start) || !o.OrderDate.Before(end) {
			continue
		}
		total = total.Add(o.TotalAmount)
	}
	return total
}

// LowStockProducts returns active products at or below the threshold, in
// source order.
func LowStockProducts(products []domain.Product, threshold int) []domain.Product {
	out := []domain.Product{}
	for _, p := range products {
		if p.LowStock(threshold) {
			out = append(out, p)
		}
	}
	return out
}

type DashboardStats struct {
	TotalCustomers        int                        `json:"totalCustomers"`
	TotalProducts         int                        `json:"totalProducts"`
	TotalOrders           int                        `json:"totalOrders"`
	OrdersByStatus        map[domain.OrderStatus]int `json:"ordersByStatus"`
	TotalRevenue          decimal.Decimal            `json:"totalRevenue"`
	PendingRevenue        decimal.Decimal            `json:"pendingRevenue"`
	TodayRevenue          decimal.Decimal            `json:"todayRevenue"`
	MonthRevenue          decimal.Decimal            `json:"monthRevenue"`
	LowStockProductsCount int                        `json:"lowStockProductsCount"`
}

// Dashboard aggregates one snapshot relative to now. TotalProducts counts
// active products only, matching what the catalog shows.
func (s *StatsService) Dashboard(snap Snapshot, now time.Time) DashboardStats {
	activeProducts := 0
	for _, p := range snap.Products {
		if p.Active {
			activeProducts++
		}
	}

	// order dates are stored UTC; the day and month windows must use the
	// same zone or todayRevenue shifts on non-UTC servers
	now = now.UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	return DashboardStats{
		TotalCustomers:        len(snap.Customers),
		TotalProducts:         activeProducts,
		TotalOrders:           len(snap.Orders),
		OrdersByStatus:        CountsByStatus(snap.Orders),
		TotalRevenue:          TotalRevenue(snap.Orders),
		PendingRevenue:        RevenueByStatus(snap.Orders, domain.StatusPending),
		TodayRevenue:          RevenueInPeriod(snap.Orders, startOfDay, startOfDay.AddDate(0, 0, 1)),
		MonthRevenue:          RevenueInPeriod(snap.Orders, startOfMonth, startOfMonth.AddDate(0, 1, 0)),
		LowStockProductsCount: len(LowStockProducts(snap.Products, s.LowStockThreshold)),
	}
}

// CategoryStatistics aggregates the catalog for one category.
type CategoryStatistics struct {
	Category     domain.Category `json:"category"`
	ProductCount int             `json:"productCount"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	TotalValue   decimal.Decimal `json:"totalValue"`
	MinPrice     decimal.Decimal `json:"minPrice"`
	MaxPrice     decimal.Decimal `json:"maxPrice"`
	TotalStock   int             `json:"totalStock"`
}

// CategoryStats aggregates per category, in enum order. Categories with
// fewer than minProducts products are dropped; totalValue is price times
// stock summed over the category.
func CategoryStats(products []domain.Product, minProducts int) []CategoryStatistics {
	if minProducts < 1 {
		minProducts = 1
	}
	out := []CategoryStatistics{}
	for _, cat := range domain.Categories() {
		stat := CategoryStatistics{Category: cat}
		sum := decimal.Zero
		for _, p := range products {
			if p.Category != cat {
				continue
			}
			if stat.ProductCount == 0 || p.Price.LessThan(stat.MinPrice) {
				stat.MinPrice = p.Price
			}
			if stat.ProductCount == 0 || p.Price.GreaterThan(stat.MaxPrice) {
				stat.MaxPrice = p.Price
			}
			stat.ProductCount++
			stat.TotalStock += p.StockQuantity
			sum = sum.Add(p.Price)
			stat.TotalValue = stat.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.StockQuantity))))
		}
		if stat.ProductCount < minProducts {
			continue
		}
		stat.AveragePrice = sum.DivRound(decimal.NewFromInt(int64(stat.ProductCount)), 2)
		out = append(out, stat)
	}
	return out
}

// ProductRanking places one product by price against the whole catalog and
// within its own category. priceRatio relates the price to the category
// average, rounded to two places.
type ProductRanking struct {
	ProductID            string          `json:"productId"`
	Name                 string          `json:"name"`
	Category             domain.Category `json:"category"`
	Price                decimal.Decimal `json:"price"`
	StockQuantity        int             `json:"stockQuantity"`
	OverallRank          int             `json:"overallRank"`
	CategoryRank         int             `json:"categoryRank"`
	CategoryAveragePrice decimal.Decimal `json:"categoryAveragePrice"`
	PriceRatio           decimal.Decimal `json:"priceRatio"`
}

// ProductRankings orders the catalog by price, most expensive first, and
// ranks every product overall and per category. Equal prices share a rank;
// the next distinct price resumes at its position.
func ProductRankings(products []domain.Product) []ProductRanking {
	sorted := make([]domain.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price.GreaterThan(sorted[j].Price)
	})

	counts := map[domain.Category]int{}
	sums := map[domain.Category]decimal.Decimal{}
	for _, p := range products {
		counts[p.Category]++
		sums[p.Category] = sums[p.Category].Add(p.Price)
	}
	avgs := make(map[domain.Category]decimal.Decimal, len(counts))
	for cat, n := range counts {
		avgs[cat] = sums[cat].DivRound(decimal.NewFromInt(int64(n)), 2)
	}

	out := make([]ProductRanking, 0, len(sorted))
	catSeen := map[domain.Category]int{}
	catRank := map[domain.Category]int{}
	catPrev := map[domain.Category]decimal.Decimal{}
	overall := 0
	for i, p := range sorted {
		if i == 0 || !p.Price.Equal(sorted[i-1].Price) {
			overall = i + 1
		}
		catSeen[p.Category]++
		if prev, seen := catPrev[p.Category]; !seen || !p.Price.Equal(prev) {
			catRank[p.Category] = catSeen[p.Category]
		}
		catPrev[p.Category] = p.Price

		r := ProductRanking{
			ProductID:            p.ID,
			Name:                 p.Name,
			Category:             p.Category,
			Price:                p.Price,
			StockQuantity:        p.StockQuantity,
			OverallRank:          overall,
			CategoryRank:         catRank[p.Category],
			CategoryAveragePrice: avgs[p.Category],
		}
		if r.CategoryAveragePrice.IsPositive() {
			r.PriceRatio = p.Price.DivRound(r.CategoryAveragePrice, 2)
		}
		out = append(out, r)
	}
	return out
}

type RecentActivity struct {
	RecentOrders     []domain.Order   `json:"recentOrders"`
	LowStockProducts []domain.Product `json:"lowStockProducts"`
}

// Recent returns the latest orders (by order date, newest first) and the
// current low-stock list.
func (s *StatsService) Recent(snap Snapshot, limit int) RecentActivity {
	if limit <= 0 {
		limit = 5
	}
	orders := make([]domain.Order, len(snap.Orders))
	copy(orders, snap.Orders)
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	if len(orders) > limit {
		orders = orders[:limit]
	}
	return RecentActivity{
		RecentOrders:     orders,
		LowStockProducts: LowStockProducts(snap.Products, s.LowStockThreshold),
	}
}
