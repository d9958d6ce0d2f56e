package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"orderdesk/internal/domain"
	"orderdesk/internal/services"
)

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTotalRevenue_ExcludesCancelled(t *testing.T) {
	orders := []domain.Order{
		{ID: "o1", Status: domain.StatusDelivered, TotalAmount: amount("100")},
		{ID: "o2", Status: domain.StatusCancelled, TotalAmount: amount("200")},
		{ID: "o3", Status: domain.StatusPending, TotalAmount: amount("50")},
	}
	if got := services.TotalRevenue(orders); !got.Equal(amount("150")) {
		t.Fatalf("total revenue = %s, want 150", got)
	}
}

func TestCountsByStatus_AllKeysPresent(t *testing.T) {
	orders := []domain.Order{
		{Status: domain.StatusPending},
		{Status: domain.StatusPending},
		{Status: domain.StatusShipped},
	}
	counts := services.CountsByStatus(orders)
	if len(counts) != 6 {
		t.Fatalf("want all 6 status keys, got %d", len(counts))
	}
	if counts[domain.StatusPending] != 2 || counts[domain.StatusShipped] != 1 {
		t.Fatalf("bad counts: %v", counts)
	}
	for _, s := range []domain.OrderStatus{domain.StatusConfirmed, domain.StatusProcessing, domain.StatusDelivered, domain.StatusCancelled} {
		if n, ok := counts[s]; !ok || n != 0 {
			t.Fatalf("status %s should be present and zero, got %d (present=%v)", s, n, ok)
		}
	}
}

func TestRevenueInPeriod_HalfOpenWindow(t *testing.T) {
	start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	orders := []domain.Order{
		{Status: domain.StatusDelivered, TotalAmount: amount("10"), OrderDate: start},                    // inclusive start
		{Status: domain.StatusDelivered, TotalAmount: amount("20"), OrderDate: start.AddDate(0, 0, 15)}, // inside
		{Status: domain.StatusDelivered, TotalAmount: amount("40"), OrderDate: end},                     // exclusive end
		{Status: domain.StatusCancelled, TotalAmount: amount("80"), OrderDate: start.AddDate(0, 0, 1)},  // cancelled
		{Status: domain.StatusPending, TotalAmount: amount("160"), OrderDate: start.Add(-time.Hour)},    // before
	}
	if got := services.RevenueInPeriod(orders, start, end); !got.Equal(amount("30")) {
		t.Fatalf("period revenue = %s, want 30", got)
	}
}

func TestLowStockProducts(t *testing.T) {
	products := []domain.Product{
		{ID: "p1", StockQuantity: 5, Active: true},
		{ID: "p2", StockQuantity: 5, Active: false},
		{ID: "p3", StockQuantity: 10, Active: true},
		{ID: "p4", StockQuantity: 11, Active: true},
	}
	got := services.LowStockProducts(products, 10)
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p3" {
		t.Fatalf("low stock = %+v", got)
	}
}

func TestDashboard(t *testing.T) {
	now := time.Date(2025, 8, 20, 15, 30, 0, 0, time.UTC)
	snap := services.Snapshot{
		Customers: []domain.Customer{{ID: "c1"}, {ID: "c2"}},
		Products: []domain.Product{
			{ID: "p1", StockQuantity: 2, Active: true},
			{ID: "p2", StockQuantity: 50, Active: true},
			{ID: "p3", StockQuantity: 0, Active: false},
		},
		Orders: []domain.Order{
			{Status: domain.StatusDelivered, TotalAmount: amount("100"), OrderDate: now.Add(-2 * time.Hour)},
			{Status: domain.StatusPending, TotalAmount: amount("50"), OrderDate: now.AddDate(0, 0, -5)},
			{Status: domain.StatusCancelled, TotalAmount: amount("75"), OrderDate: now.AddDate(0, -2, 0)},
		},
	}

	stats := services.NewStatsService(10).Dashboard(snap, now)
	if stats.TotalCustomers != 2 || stats.TotalOrders != 3 {
		t.Fatalf("counts: %+v", stats)
	}
	if stats.TotalProducts != 2 {
		t.Fatalf("active products = %d, want 2", stats.TotalProducts)
	}
	if !stats.TotalRevenue.Equal(amount("150")) {
		t.Fatalf("total revenue = %s, want 150", stats.TotalRevenue)
	}
	if !stats.PendingRevenue.Equal(amount("50")) {
		t.Fatalf("pending revenue = %s, want 50", stats.PendingRevenue)
	}
	if !stats.TodayRevenue.Equal(amount("100")) {
		t.Fatalf("today revenue = %s, want 100", stats.TodayRevenue)
	}
	if !stats.MonthRevenue.Equal(amount("150")) {
		t.Fatalf("month revenue = %s, want 150", stats.MonthRevenue)
	}
	if stats.LowStockProductsCount != 1 {
		t.Fatalf("low stock count = %d, want 1", stats.LowStockProductsCount)
	}
}

func TestDashboard_WindowsUseUTCDay(t *testing.T) {
	// 01:30 on Aug 20 in Berlin is still Aug 19 in UTC; the windows must
	// follow the stored (UTC) order dates, not the server locale
	berlin := time.FixedZone("Europe/Berlin", 2*60*60)
	now := time.Date(2025, 8, 20, 1, 30, 0, 0, berlin)

	snap := services.Snapshot{
		Orders: []domain.Order{
			{Status: domain.StatusDelivered, TotalAmount: amount("100"), OrderDate: time.Date(2025, 8, 19, 22, 0, 0, 0, time.UTC)},
			{Status: domain.StatusDelivered, TotalAmount: amount("40"), OrderDate: time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)},
		},
	}
	stats := services.NewStatsService(10).Dashboard(snap, now)
	if !stats.TodayRevenue.Equal(amount("100")) {
		t.Fatalf("today revenue = %s, want 100 (UTC day)", stats.TodayRevenue)
	}
}

func TestCategoryStats(t *testing.T) {
	products := []domain.Product{
		{Name: "Monitor", Category: domain.CategoryElektronik, Price: amount("200.00"), StockQuantity: 2},
		{Name: "Tastatur", Category: domain.CategoryElektronik, Price: amount("100.00"), StockQuantity: 5},
		{Name: "Regal", Category: domain.CategoryMoebel, Price: amount("120.00"), StockQuantity: 1},
	}

	all := services.CategoryStats(products, 1)
	if len(all) != 2 {
		t.Fatalf("want 2 categories, got %+v", all)
	}
	// enum order puts Elektronik first
	el := all[0]
	if el.Category != domain.CategoryElektronik || el.ProductCount != 2 || el.TotalStock != 7 {
		t.Fatalf("elektronik: %+v", el)
	}
	if !el.AveragePrice.Equal(amount("150.00")) {
		t.Fatalf("average price = %s, want 150.00", el.AveragePrice)
	}
	if !el.MinPrice.Equal(amount("100.00")) || !el.MaxPrice.Equal(amount("200.00")) {
		t.Fatalf("price bounds: %+v", el)
	}
	// 200*2 + 100*5
	if !el.TotalValue.Equal(amount("900.00")) {
		t.Fatalf("total value = %s, want 900.00", el.TotalValue)
	}

	sparse := services.CategoryStats(products, 2)
	if len(sparse) != 1 || sparse[0].Category != domain.CategoryElektronik {
		t.Fatalf("minProducts filter: %+v", sparse)
	}
}

func TestProductRankings(t *testing.T) {
	products := []domain.Product{
		{ID: "p1", Name: "Monitor", Category: domain.CategoryElektronik, Price: amount("200.00")},
		{ID: "p2", Name: "Tastatur", Category: domain.CategoryElektronik, Price: amount("100.00")},
		{ID: "p3", Name: "Regal", Category: domain.CategoryMoebel, Price: amount("100.00")},
		{ID: "p4", Name: "Lampe", Category: domain.CategoryBeleuchtung, Price: amount("30.00")},
	}

	got := services.ProductRankings(products)
	if len(got) != 4 || got[0].ProductID != "p1" {
		t.Fatalf("order: %+v", got)
	}
	if got[0].OverallRank != 1 {
		t.Fatalf("p1 overall rank = %d", got[0].OverallRank)
	}
	// p2 and p3 share the price and therefore the overall rank
	if got[1].OverallRank != 2 || got[2].OverallRank != 2 {
		t.Fatalf("tied ranks: %d, %d", got[1].OverallRank, got[2].OverallRank)
	}
	// the next distinct price resumes at its position
	if got[3].OverallRank != 4 {
		t.Fatalf("p4 overall rank = %d, want 4", got[3].OverallRank)
	}
	// category ranks are independent of the overall ordering
	if got[0].CategoryRank != 1 || got[1].CategoryRank != 2 || got[2].CategoryRank != 1 {
		t.Fatalf("category ranks: %+v", got)
	}
	// Elektronik averages 150.00, so the Monitor sits at ratio 1.33
	if !got[0].CategoryAveragePrice.Equal(amount("150.00")) {
		t.Fatalf("category average = %s", got[0].CategoryAveragePrice)
	}
	if !got[0].PriceRatio.Equal(amount("1.33")) {
		t.Fatalf("price ratio = %s, want 1.33", got[0].PriceRatio)
	}
}

func TestRecent(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	snap := services.Snapshot{
		Orders: []domain.Order{
			{ID: "old", OrderDate: now.AddDate(0, 0, -9)},
			{ID: "newest", OrderDate: now},
			{ID: "mid", OrderDate: now.AddDate(0, 0, -3)},
		},
		Products: []domain.Product{{ID: "p1", StockQuantity: 1, Active: true}},
	}
	got := services.NewStatsService(10).Recent(snap, 2)
	if len(got.RecentOrders) != 2 || got.RecentOrders[0].ID != "newest" || got.RecentOrders[1].ID != "mid" {
		t.Fatalf("recent orders: %+v", got.RecentOrders)
	}
	if len(got.LowStockProducts) != 1 {
		t.Fatalf("low stock: %+v", got.LowStockProducts)
	}
}
