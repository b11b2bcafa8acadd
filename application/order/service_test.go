package order

import (
	"context"
	"errors"
	"testing"

	catalogapp "commerce/application/catalog"
	"commerce/domain/catalog"
	"commerce/domain/order"
	"commerce/domain/shared"
	"commerce/infrastructure/persistence/memory"

	"github.com/shopspring/decimal"
)

type testEnv struct {
	orders  *ApplicationService
	catalog *catalogapp.ApplicationService
	store   *memory.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	catalogSvc := catalogapp.NewApplicationService(
		memory.NewProductRepository(store), memory.NewUnitOfWorkFactory(store))
	orderSvc := NewApplicationService(
		memory.NewOrderRepository(store),
		NewCatalogInventoryGateway(catalogSvc),
		memory.NewUnitOfWorkFactory(store))
	return &testEnv{orders: orderSvc, catalog: catalogSvc, store: store}
}

func (e *testEnv) createProduct(t *testing.T, sku, name, price string, stock int) *catalogapp.ProductResponse {
	t.Helper()
	resp, err := e.catalog.CreateProduct(context.Background(), catalogapp.CreateProductRequest{
		SKU:          sku,
		Name:         name,
		Price:        decimal.RequireFromString(price),
		Currency:     "USD",
		InitialStock: stock,
	})
	if err != nil {
		t.Fatalf("CreateProduct(%s) failed: %v", sku, err)
	}
	return resp
}

func (e *testEnv) productStock(t *testing.T, id string) int {
	t.Helper()
	resp, err := e.catalog.GetProduct(context.Background(), id)
	if err != nil {
		t.Fatalf("GetProduct(%s) failed: %v", id, err)
	}
	return resp.Stock
}

func placeOrderRequest(items ...OrderItemRequest) PlaceOrderRequest {
	return PlaceOrderRequest{
		Customer: CustomerInfoRequest{
			CustomerID: "cust-1",
			Name:       "Alice Smith",
			Email:      "alice@example.com",
			Phone:      "555-0100",
		},
		ShippingAddress: AddressRequest{
			Street:     "123 Main Street",
			City:       "Springfield",
			State:      "IL",
			PostalCode: "62701",
			Country:    "USA",
		},
		Items: items,
	}
}

func TestPlaceOrder(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "PROD-12345", "Widget", "50.00", 10)

	resp, err := env.orders.PlaceOrder(context.Background(),
		placeOrderRequest(OrderItemRequest{ProductID: product.ID, Quantity: 2}))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	if resp.Status != "CONFIRMED" {
		t.Errorf("status = %s, want CONFIRMED", resp.Status)
	}
	if resp.TotalAmount != "100.00" || resp.Currency != "USD" {
		t.Errorf("total = %s %s, want 100.00 USD", resp.TotalAmount, resp.Currency)
	}
	if resp.ConfirmedAt == nil {
		t.Error("confirmed order should carry a confirmation time")
	}
	if len(resp.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(resp.Items))
	}
	item := resp.Items[0]
	if item.ProductName != "Widget" || item.UnitPrice != "50.00" || item.Subtotal != "100.00" {
		t.Errorf("item snapshot = %+v, want catalog name and price", item)
	}

	if got := env.productStock(t, product.ID); got != 8 {
		t.Errorf("product stock = %d, want 8 after reservation", got)
	}

	types := env.store.EventTypes()
	for _, want := range []string{"product.created", "product.stock_reserved", "order.placed", "order.confirmed"} {
		found := false
		for _, typ := range types {
			if typ == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing stored event %s in %v", want, types)
		}
	}
}

func TestPlaceOrderMultipleItems(t *testing.T) {
	env := newTestEnv(t)
	a := env.createProduct(t, "PROD-001", "Widget A", "50.00", 10)
	b := env.createProduct(t, "PROD-002", "Widget B", "19.99", 5)

	resp, err := env.orders.PlaceOrder(context.Background(), placeOrderRequest(
		OrderItemRequest{ProductID: a.ID, Quantity: 2},
		OrderItemRequest{ProductID: b.ID, Quantity: 3},
	))
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	if resp.TotalAmount != "159.97" {
		t.Errorf("total = %s, want 159.97", resp.TotalAmount)
	}
	if got := env.productStock(t, a.ID); got != 8 {
		t.Errorf("product A stock = %d, want 8", got)
	}
	if got := env.productStock(t, b.ID); got != 2 {
		t.Errorf("product B stock = %d, want 2", got)
	}
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	env := newTestEnv(t)
	a := env.createProduct(t, "PROD-001", "Widget A", "50.00", 10)
	b := env.createProduct(t, "PROD-002", "Widget B", "19.99", 1)
	eventsBefore := env.store.EventCount()

	_, err := env.orders.PlaceOrder(context.Background(), placeOrderRequest(
		OrderItemRequest{ProductID: a.ID, Quantity: 2},
		OrderItemRequest{ProductID: b.ID, Quantity: 5},
	))
	if !errors.Is(err, order.ErrStockReservation) {
		t.Fatalf("expected a stock reservation error, got %v", err)
	}
	if !errors.Is(err, catalog.ErrInsufficientStock) {
		t.Errorf("cause should stay reachable, got %v", err)
	}

	// Nothing of the failed placement may survive: no stock change, no
	// order, no events.
	if got := env.productStock(t, a.ID); got != 10 {
		t.Errorf("product A stock = %d, want 10", got)
	}
	if got := env.productStock(t, b.ID); got != 1 {
		t.Errorf("product B stock = %d, want 1", got)
	}
	orders, err := env.orders.ListOrders(context.Background(), 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 0 {
		t.Errorf("expected no persisted orders, got %d", len(orders))
	}
	if env.store.EventCount() != eventsBefore {
		t.Errorf("event count = %d, want unchanged %d", env.store.EventCount(), eventsBefore)
	}
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.orders.PlaceOrder(context.Background(),
		placeOrderRequest(OrderItemRequest{ProductID: "missing", Quantity: 1}))
	if !errors.Is(err, order.ErrStockReservation) {
		t.Errorf("expected a stock reservation error, got %v", err)
	}
	if !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("not-found cause should stay reachable, got %v", err)
	}
}

func TestPlaceOrderInvalidCustomer(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "PROD-001", "Widget", "50.00", 10)

	req := placeOrderRequest(OrderItemRequest{ProductID: product.ID, Quantity: 1})
	req.Customer.Email = "not-an-email"

	_, err := env.orders.PlaceOrder(context.Background(), req)
	if !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
	if got := env.productStock(t, product.ID); got != 10 {
		t.Errorf("stock = %d, want untouched 10", got)
	}
}

func TestGetOrder(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "PROD-001", "Widget", "50.00", 10)

	placed, err := env.orders.PlaceOrder(context.Background(),
		placeOrderRequest(OrderItemRequest{ProductID: product.ID, Quantity: 1}))
	if err != nil {
		t.Fatal(err)
	}

	found, err := env.orders.GetOrder(context.Background(), placed.ID)
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if found.ID != placed.ID || found.Status != "CONFIRMED" {
		t.Errorf("got %s/%s, want %s/CONFIRMED", found.ID, found.Status, placed.ID)
	}

	if _, err := env.orders.GetOrder(context.Background(), "missing"); !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestListCustomerOrders(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "PROD-001", "Widget", "50.00", 10)

	for i := 0; i < 2; i++ {
		if _, err := env.orders.PlaceOrder(context.Background(),
			placeOrderRequest(OrderItemRequest{ProductID: product.ID, Quantity: 1})); err != nil {
			t.Fatal(err)
		}
	}

	mine, err := env.orders.ListCustomerOrders(context.Background(), "cust-1")
	if err != nil {
		t.Fatalf("ListCustomerOrders failed: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("got %d orders, want 2", len(mine))
	}

	none, err := env.orders.ListCustomerOrders(context.Background(), "cust-other")
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("got %d orders for a stranger, want 0", len(none))
	}
}

func TestCancelOrderReleasesStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "PROD-001", "Widget", "50.00", 10)

	placed, err := env.orders.PlaceOrder(context.Background(),
		placeOrderRequest(OrderItemRequest{ProductID: product.ID, Quantity: 4}))
	if err != nil {
		t.Fatal(err)
	}
	if got := env.productStock(t, product.ID); got != 6 {
		t.Fatalf("stock = %d, want 6 after placement", got)
	}

	cancelled, err := env.orders.CancelOrder(context.Background(), placed.ID,
		CancelOrderRequest{Reason: "changed my mind"})
	if err != nil {
		t.Fatalf("CancelOrder failed: %v", err)
	}
	if cancelled.Status != "CANCELLED" {
		t.Errorf("status = %s, want CANCELLED", cancelled.Status)
	}
	if got := env.productStock(t, product.ID); got != 10 {
		t.Errorf("stock = %d, want 10 after release", got)
	}
}

func TestCancelOrderTwice(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "PROD-001", "Widget", "50.00", 10)

	placed, err := env.orders.PlaceOrder(context.Background(),
		placeOrderRequest(OrderItemRequest{ProductID: product.ID, Quantity: 4}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.orders.CancelOrder(context.Background(), placed.ID, CancelOrderRequest{}); err != nil {
		t.Fatal(err)
	}

	_, err = env.orders.CancelOrder(context.Background(), placed.ID, CancelOrderRequest{})
	if !errors.Is(err, order.ErrInvalidStateTransition) {
		t.Fatalf("second cancel should fail on the state machine, got %v", err)
	}

	// The failed second cancel must not release stock again.
	if got := env.productStock(t, product.ID); got != 10 {
		t.Errorf("stock = %d, want 10", got)
	}
}

func TestCancelShippedOrderKeepsStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "PROD-001", "Widget", "50.00", 10)

	placed, err := env.orders.PlaceOrder(context.Background(),
		placeOrderRequest(OrderItemRequest{ProductID: product.ID, Quantity: 2}))
	if err != nil {
		t.Fatal(err)
	}
	for _, status := range []string{"PROCESSING", "SHIPPED"} {
		if _, err := env.orders.UpdateStatus(context.Background(), placed.ID, UpdateStatusRequest{Status: status}); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	_, err = env.orders.CancelOrder(context.Background(), placed.ID, CancelOrderRequest{Reason: "too late"})
	if !errors.Is(err, order.ErrInvalidStateTransition) {
		t.Fatalf("expected ErrInvalidStateTransition, got %v", err)
	}
	if got := env.productStock(t, product.ID); got != 8 {
		t.Errorf("stock = %d, want 8 (shipped stock stays reserved)", got)
	}
}

func TestUpdateStatusLifecycle(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "PROD-001", "Widget", "50.00", 10)

	placed, err := env.orders.PlaceOrder(context.Background(),
		placeOrderRequest(OrderItemRequest{ProductID: product.ID, Quantity: 1}))
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"PROCESSING", "SHIPPED", "DELIVERED"} {
		resp, err := env.orders.UpdateStatus(context.Background(), placed.ID, UpdateStatusRequest{Status: want})
		if err != nil {
			t.Fatalf("transition to %s failed: %v", want, err)
		}
		if resp.Status != want {
			t.Fatalf("status = %s, want %s", resp.Status, want)
		}
	}
}

func TestUpdateStatusRejectsSkips(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "PROD-001", "Widget", "50.00", 10)

	placed, err := env.orders.PlaceOrder(context.Background(),
		placeOrderRequest(OrderItemRequest{ProductID: product.ID, Quantity: 1}))
	if err != nil {
		t.Fatal(err)
	}

	_, err = env.orders.UpdateStatus(context.Background(), placed.ID, UpdateStatusRequest{Status: "DELIVERED"})
	if !errors.Is(err, order.ErrInvalidStateTransition) {
		t.Errorf("expected ErrInvalidStateTransition, got %v", err)
	}

	_, err = env.orders.UpdateStatus(context.Background(), placed.ID, UpdateStatusRequest{Status: "TELEPORTED"})
	if !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("expected invalid input for unknown status, got %v", err)
	}
}
