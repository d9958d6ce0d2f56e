package services_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"orderdesk/internal/domain"
	"orderdesk/internal/services"
)

func testCatalog() services.Catalog {
	customers := []domain.Customer{
		{ID: "c1", FirstName: "Anna", LastName: "Müller", Email: "anna@example.de", Active: true},
	}
	products := []domain.Product{
		{ID: "p1", Name: "Monitor", Category: domain.CategoryElektronik, Price: decimal.RequireFromString("20.00"), StockQuantity: 10, Active: true},
		{ID: "p2", Name: "Lampe", Category: domain.CategoryBeleuchtung, Price: decimal.RequireFromString("5.50"), StockQuantity: 10, Active: true},
		{ID: "p3", Name: "Altes Radio", Category: domain.CategoryElektronik, Price: decimal.RequireFromString("9.99"), StockQuantity: 1, Active: false},
	}
	return services.NewCatalog(customers, products)
}

func TestComposer_EmptyDraftTotalIsZero(t *testing.T) {
	d := services.NewDraft()
	if !services.Total(d).IsZero() {
		t.Fatalf("empty draft total = %s, want 0", services.Total(d))
	}
}

func TestComposer_AddItemSnapshotsPrice(t *testing.T) {
	cp := services.NewComposer(testCatalog())
	d := services.NewDraft()

	if err := cp.AddItem(d, "p1"); err != nil {
		t.Fatal(err)
	}
	if len(d.Items) != 1 {
		t.Fatalf("want 1 item, got %d", len(d.Items))
	}
	it := d.Items[0]
	if it.Quantity != 1 || !it.UnitPrice.Equal(decimal.RequireFromString("20.00")) {
		t.Fatalf("bad item: %+v", it)
	}
	if it.ProductName != "Monitor" {
		t.Fatalf("name not snapshotted: %q", it.ProductName)
	}
}

func TestComposer_AddItemRejectsUnknownAndInactive(t *testing.T) {
	cp := services.NewComposer(testCatalog())
	d := services.NewDraft()

	var refErr domain.ReferenceError
	if err := cp.AddItem(d, "nope"); !errors.As(err, &refErr) {
		t.Fatalf("unknown product: want ReferenceError, got %v", err)
	}
	// p3 exists but is inactive
	if err := cp.AddItem(d, "p3"); !errors.As(err, &refErr) {
		t.Fatalf("inactive product: want ReferenceError, got %v", err)
	}
	if len(d.Items) != 0 {
		t.Fatalf("draft mutated on failure: %+v", d.Items)
	}
}

func TestComposer_AddThenRemoveRoundTrips(t *testing.T) {
	cp := services.NewComposer(testCatalog())
	d := services.NewDraft()
	if err := cp.AddItem(d, "p1"); err != nil {
		t.Fatal(err)
	}
	before := services.Total(d)

	if err := cp.AddItem(d, "p2"); err != nil {
		t.Fatal(err)
	}
	if err := cp.RemoveItem(d, 1); err != nil {
		t.Fatal(err)
	}

	if len(d.Items) != 1 || d.Items[0].ProductID != "p1" {
		t.Fatalf("items not restored: %+v", d.Items)
	}
	if !services.Total(d).Equal(before) {
		t.Fatalf("total %s, want %s", services.Total(d), before)
	}
}

func TestComposer_RemoveItemOutOfRange(t *testing.T) {
	cp := services.NewComposer(testCatalog())
	d := services.NewDraft()
	_ = cp.AddItem(d, "p1")

	var idxErr domain.IndexError
	if err := cp.RemoveItem(d, 1); !errors.As(err, &idxErr) {
		t.Fatalf("want IndexError, got %v", err)
	}
	if err := cp.RemoveItem(d, -1); !errors.As(err, &idxErr) {
		t.Fatalf("want IndexError, got %v", err)
	}
	if len(d.Items) != 1 {
		t.Fatalf("draft mutated on failure")
	}
}

func TestComposer_SetQuantityRejectsNonPositive(t *testing.T) {
	cp := services.NewComposer(testCatalog())
	d := services.NewDraft()
	_ = cp.AddItem(d, "p1")

	var valErr domain.ValidationError
	for _, qty := range []int{0, -3} {
		if err := cp.SetQuantity(d, 0, qty); !errors.As(err, &valErr) {
			t.Fatalf("qty=%d: want ValidationError, got %v", qty, err)
		}
	}
	if d.Items[0].Quantity != 1 {
		t.Fatalf("quantity changed despite failure: %d", d.Items[0].Quantity)
	}

	if err := cp.SetQuantity(d, 0, 4); err != nil {
		t.Fatal(err)
	}
	if !services.Total(d).Equal(decimal.RequireFromString("80.00")) {
		t.Fatalf("total after qty=4: %s", services.Total(d))
	}
}

func TestComposer_TotalIsSumOfLineTotals(t *testing.T) {
	cp := services.NewComposer(testCatalog())
	d := services.NewDraft()
	_ = cp.AddItem(d, "p1")
	_ = cp.AddItem(d, "p2")
	_ = cp.SetQuantity(d, 0, 2)

	want := decimal.Zero
	for _, it := range d.Items {
		want = want.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	if !services.Total(d).Equal(want) {
		t.Fatalf("total %s, want %s", services.Total(d), want)
	}
	if !want.Equal(decimal.RequireFromString("45.50")) {
		t.Fatalf("fixture total drifted: %s", want)
	}
}

func TestComposer_ApplyLinesKeepsSnapshotForUnchangedProduct(t *testing.T) {
	cp := services.NewComposer(testCatalog())

	// an edit draft carries a line priced before the catalog changed
	d := services.NewDraft()
	d.CustomerID = "c1"
	d.Items = []domain.OrderItem{
		{ProductID: "p1", ProductName: "Monitor", Quantity: 2, UnitPrice: decimal.RequireFromString("12.00")},
	}

	err := cp.ApplyLines(d, []services.LineRequest{
		{ProductID: "p1", Quantity: 3},
		{ProductID: "p2", Quantity: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !d.Items[0].UnitPrice.Equal(decimal.RequireFromString("12.00")) || d.Items[0].Quantity != 3 {
		t.Fatalf("unchanged line lost its snapshot: %+v", d.Items[0])
	}
	if !d.Items[1].UnitPrice.Equal(decimal.RequireFromString("5.50")) {
		t.Fatalf("new line must snapshot the catalog price: %+v", d.Items[1])
	}
}

func TestComposer_ApplyLinesRepricesRepointedLine(t *testing.T) {
	cp := services.NewComposer(testCatalog())
	d := services.NewDraft()
	d.Items = []domain.OrderItem{
		{ProductID: "p1", ProductName: "Monitor", Quantity: 1, UnitPrice: decimal.RequireFromString("12.00")},
	}

	if err := cp.ApplyLines(d, []services.LineRequest{{ProductID: "p2", Quantity: 1}}); err != nil {
		t.Fatal(err)
	}
	if d.Items[0].ProductID != "p2" || !d.Items[0].UnitPrice.Equal(decimal.RequireFromString("5.50")) {
		t.Fatalf("re-pointed line: %+v", d.Items[0])
	}
}

func TestComposer_ApplyLinesKeepsRetiredProductLine(t *testing.T) {
	cp := services.NewComposer(testCatalog())

	// p3 is inactive in the catalog, but the stored line predates that
	d := services.NewDraft()
	d.Items = []domain.OrderItem{
		{ProductID: "p3", ProductName: "Altes Radio", Quantity: 1, UnitPrice: decimal.RequireFromString("9.99")},
	}

	if err := cp.ApplyLines(d, []services.LineRequest{{ProductID: "p3", Quantity: 2}}); err != nil {
		t.Fatalf("edit of a retired-product line must not fail: %v", err)
	}
	if d.Items[0].Quantity != 2 || !d.Items[0].UnitPrice.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("retired line: %+v", d.Items[0])
	}
}

func TestComposer_ApplyLinesFailureLeavesDraftUntouched(t *testing.T) {
	cp := services.NewComposer(testCatalog())
	d := services.NewDraft()
	_ = cp.AddItem(d, "p1")

	var refErr domain.ReferenceError
	if err := cp.ApplyLines(d, []services.LineRequest{{ProductID: "ghost", Quantity: 1}}); !errors.As(err, &refErr) {
		t.Fatalf("want ReferenceError, got %v", err)
	}
	var valErr domain.ValidationError
	if err := cp.ApplyLines(d, []services.LineRequest{{ProductID: "p1", Quantity: 0}}); !errors.As(err, &valErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(d.Items) != 1 || d.Items[0].ProductID != "p1" {
		t.Fatalf("draft mutated on failure: %+v", d.Items)
	}
}

func TestComposer_ToSubmission(t *testing.T) {
	cp := services.NewComposer(testCatalog())

	// no customer
	d := services.NewDraft()
	_ = cp.AddItem(d, "p1")
	var valErr domain.ValidationError
	if _, err := cp.ToSubmission(d); !errors.As(err, &valErr) {
		t.Fatalf("missing customer: want ValidationError, got %v", err)
	}

	// unknown customer
	d.CustomerID = "ghost"
	var refErr domain.ReferenceError
	if _, err := cp.ToSubmission(d); !errors.As(err, &refErr) {
		t.Fatalf("unknown customer: want ReferenceError, got %v", err)
	}

	// empty item list
	empty := services.NewDraft()
	empty.CustomerID = "c1"
	if _, err := cp.ToSubmission(empty); !errors.As(err, &valErr) {
		t.Fatalf("empty items: want ValidationError, got %v", err)
	}

	// happy path
	d.CustomerID = "c1"
	_ = cp.AddItem(d, "p2")
	_ = cp.SetQuantity(d, 0, 2)
	sub, err := cp.ToSubmission(d)
	if err != nil {
		t.Fatal(err)
	}
	if sub.CustomerID != "c1" || sub.CustomerName != "Anna Müller" {
		t.Fatalf("bad customer resolution: %+v", sub)
	}
	if sub.Status != domain.StatusPending {
		t.Fatalf("new submission status = %s, want PENDING", sub.Status)
	}
	if !sub.TotalAmount.Equal(decimal.RequireFromString("45.50")) {
		t.Fatalf("submission total %s, want 45.50", sub.TotalAmount)
	}
	// the submission copies items; mutating it must not touch the draft
	sub.Items[0].Quantity = 99
	if d.Items[0].Quantity != 2 {
		t.Fatal("submission aliases draft items")
	}
}
