package catalog

import (
	"context"
	"errors"
	"testing"

	"commerce/domain/catalog"
	"commerce/domain/shared"
	"commerce/infrastructure/persistence/memory"

	"github.com/shopspring/decimal"
)

func newTestService(t *testing.T) (*ApplicationService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewApplicationService(memory.NewProductRepository(store), memory.NewUnitOfWorkFactory(store)), store
}

func createProduct(t *testing.T, svc *ApplicationService, sku, name string, price string, stock int) *ProductResponse {
	t.Helper()
	resp, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		SKU:          sku,
		Name:         name,
		Description:  "test product",
		Price:        decimal.RequireFromString(price),
		Currency:     "USD",
		InitialStock: stock,
	})
	if err != nil {
		t.Fatalf("CreateProduct(%s) failed: %v", sku, err)
	}
	return resp
}

func TestCreateProduct(t *testing.T) {
	svc, store := newTestService(t)

	resp := createProduct(t, svc, "prod-001", "Widget", "19.99", 5)

	if resp.SKU != "PROD-001" {
		t.Errorf("SKU = %s, want PROD-001 (normalized)", resp.SKU)
	}
	if resp.Price != "19.99" || resp.Currency != "USD" {
		t.Errorf("price = %s %s, want 19.99 USD", resp.Price, resp.Currency)
	}
	if resp.Stock != 5 || !resp.IsActive {
		t.Errorf("stock = %d active = %v, want 5 true", resp.Stock, resp.IsActive)
	}
	if store.EventCount() != 1 {
		t.Errorf("event count = %d, want 1 (product.created)", store.EventCount())
	}
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	svc, _ := newTestService(t)
	createProduct(t, svc, "PROD-001", "Widget", "19.99", 5)

	_, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		SKU:      "prod-001", // same SKU after normalization
		Name:     "Other Widget",
		Price:    decimal.RequireFromString("9.99"),
		Currency: "USD",
	})
	if !errors.Is(err, catalog.ErrDuplicateSKU) {
		t.Errorf("expected ErrDuplicateSKU, got %v", err)
	}
}

func TestGetProductBySKU(t *testing.T) {
	svc, _ := newTestService(t)
	created := createProduct(t, svc, "PROD-001", "Widget", "19.99", 5)

	resp, err := svc.GetProductBySKU(context.Background(), "prod-001")
	if err != nil {
		t.Fatalf("GetProductBySKU failed: %v", err)
	}
	if resp.ID != created.ID {
		t.Errorf("got product %s, want %s", resp.ID, created.ID)
	}

	if _, err := svc.GetProductBySKU(context.Background(), "NO-SUCH"); !errors.Is(err, catalog.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestListProductsPagination(t *testing.T) {
	svc, _ := newTestService(t)
	createProduct(t, svc, "PROD-001", "Widget A", "10.00", 1)
	createProduct(t, svc, "PROD-002", "Widget B", "20.00", 1)
	createProduct(t, svc, "PROD-003", "Widget C", "30.00", 1)

	page, err := svc.ListProducts(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(page) != 2 {
		t.Errorf("page size = %d, want 2", len(page))
	}

	rest, err := svc.ListProducts(context.Background(), 10, 2)
	if err != nil {
		t.Fatalf("ListProducts past the end failed: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("expected empty page past the end, got %d items", len(rest))
	}
}

func TestUpdatePrice(t *testing.T) {
	svc, _ := newTestService(t)
	created := createProduct(t, svc, "PROD-001", "Widget", "100.00", 5)

	resp, err := svc.UpdatePrice(context.Background(), created.ID, UpdatePriceRequest{
		Price:    decimal.RequireFromString("140.00"),
		Currency: "USD",
	})
	if err != nil {
		t.Fatalf("UpdatePrice failed: %v", err)
	}
	if resp.Price != "140.00" {
		t.Errorf("price = %s, want 140.00", resp.Price)
	}

	_, err = svc.UpdatePrice(context.Background(), created.ID, UpdatePriceRequest{
		Price:    decimal.RequireFromString("300.00"),
		Currency: "USD",
	})
	if !errors.Is(err, catalog.ErrPriceChangeExceedsLimit) {
		t.Errorf("expected ErrPriceChangeExceedsLimit, got %v", err)
	}

	// The rejected change must not leak into storage.
	after, err := svc.GetProduct(context.Background(), created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.Price != "140.00" {
		t.Errorf("stored price = %s, want 140.00", after.Price)
	}
}

func TestUpdateDetails(t *testing.T) {
	svc, _ := newTestService(t)
	created := createProduct(t, svc, "PROD-001", "Widget", "10.00", 5)

	name := "Premium Widget"
	resp, err := svc.UpdateDetails(context.Background(), created.ID, UpdateDetailsRequest{Name: &name})
	if err != nil {
		t.Fatalf("UpdateDetails failed: %v", err)
	}
	if resp.Name != "Premium Widget" {
		t.Errorf("name = %s, want Premium Widget", resp.Name)
	}
	if resp.Description != "test product" {
		t.Errorf("description changed unexpectedly: %s", resp.Description)
	}
}

func TestReplenishStock(t *testing.T) {
	svc, _ := newTestService(t)
	created := createProduct(t, svc, "PROD-001", "Widget", "10.00", 5)

	resp, err := svc.ReplenishStock(context.Background(), created.ID, ReplenishStockRequest{Quantity: 7})
	if err != nil {
		t.Fatalf("ReplenishStock failed: %v", err)
	}
	if resp.Stock != 12 {
		t.Errorf("stock = %d, want 12", resp.Stock)
	}
}

func TestDeactivateAndActivate(t *testing.T) {
	svc, _ := newTestService(t)
	created := createProduct(t, svc, "PROD-001", "Widget", "10.00", 5)

	resp, err := svc.DeactivateProduct(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("DeactivateProduct failed: %v", err)
	}
	if resp.IsActive {
		t.Error("product should be inactive")
	}

	resp, err = svc.ActivateProduct(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("ActivateProduct failed: %v", err)
	}
	if !resp.IsActive {
		t.Error("product should be active again")
	}
}

func TestReserveStock(t *testing.T) {
	svc, _ := newTestService(t)
	a := createProduct(t, svc, "PROD-001", "Widget A", "50.00", 10)
	b := createProduct(t, svc, "PROD-002", "Widget B", "19.99", 4)

	reserved, err := svc.ReserveStock(context.Background(), []ReserveStockItem{
		{ProductID: a.ID, Quantity: 2},
		{ProductID: b.ID, Quantity: 4},
	})
	if err != nil {
		t.Fatalf("ReserveStock failed: %v", err)
	}
	if len(reserved) != 2 {
		t.Fatalf("reserved %d items, want 2", len(reserved))
	}
	if reserved[0].ProductID != a.ID || reserved[0].RemainingStock != 8 {
		t.Errorf("item 0 = %+v, want product %s with 8 remaining", reserved[0], a.ID)
	}
	if reserved[1].RemainingStock != 0 {
		t.Errorf("item 1 remaining = %d, want 0", reserved[1].RemainingStock)
	}
	if reserved[0].UnitPrice.StringFixed(2) != "50.00" {
		t.Errorf("item 0 unit price = %s, want 50.00", reserved[0].UnitPrice.StringFixed(2))
	}
}

func TestReserveStockAllOrNothing(t *testing.T) {
	svc, _ := newTestService(t)
	a := createProduct(t, svc, "PROD-001", "Widget A", "50.00", 10)
	b := createProduct(t, svc, "PROD-002", "Widget B", "19.99", 1)
	c := createProduct(t, svc, "PROD-003", "Widget C", "5.00", 10)

	_, err := svc.ReserveStock(context.Background(), []ReserveStockItem{
		{ProductID: a.ID, Quantity: 2},
		{ProductID: b.ID, Quantity: 5}, // only 1 in stock
		{ProductID: c.ID, Quantity: 1},
	})
	if !errors.Is(err, catalog.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// No reservation of the failed batch may survive.
	for _, p := range []*ProductResponse{a, b, c} {
		after, err := svc.GetProduct(context.Background(), p.ID)
		if err != nil {
			t.Fatal(err)
		}
		if after.Stock != p.Stock {
			t.Errorf("product %s stock = %d, want unchanged %d", p.SKU, after.Stock, p.Stock)
		}
	}
}

func TestReserveStockInactiveProduct(t *testing.T) {
	svc, _ := newTestService(t)
	a := createProduct(t, svc, "PROD-001", "Widget A", "50.00", 10)
	if _, err := svc.DeactivateProduct(context.Background(), a.ID); err != nil {
		t.Fatal(err)
	}

	_, err := svc.ReserveStock(context.Background(), []ReserveStockItem{
		{ProductID: a.ID, Quantity: 1},
	})
	if !errors.Is(err, catalog.ErrInactiveProduct) {
		t.Errorf("expected ErrInactiveProduct, got %v", err)
	}
}

func TestReserveStockUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ReserveStock(context.Background(), []ReserveStockItem{
		{ProductID: "missing", Quantity: 1},
	})
	if !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected a not-found error, got %v", err)
	}
}

func TestReleaseStock(t *testing.T) {
	svc, _ := newTestService(t)
	a := createProduct(t, svc, "PROD-001", "Widget A", "50.00", 10)

	if _, err := svc.ReserveStock(context.Background(), []ReserveStockItem{{ProductID: a.ID, Quantity: 4}}); err != nil {
		t.Fatal(err)
	}
	if err := svc.ReleaseStock(context.Background(), []ReserveStockItem{{ProductID: a.ID, Quantity: 4}}); err != nil {
		t.Fatalf("ReleaseStock failed: %v", err)
	}

	after, err := svc.GetProduct(context.Background(), a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.Stock != 10 {
		t.Errorf("stock = %d, want 10 after release", after.Stock)
	}
}
