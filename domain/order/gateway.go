package order

import (
	"context"
	"errors"

	"commerce/domain/shared"
)

// ErrStockReservation sentinel for gateway-level reservation failures.
// The Orders context only ever sees this error (wrapping the cause), never
// catalog-internal error types, which keeps the contexts decoupled.
var ErrStockReservation = errors.New("stock reservation failed")

// StockReservationError wraps any failure of the reservation protocol:
// unknown product, insufficient stock, or an unexpected internal error.
// The cause stays reachable through errors.Is/As for classification
// (shared.ErrNotFound vs shared.ErrBusinessRule) without exposing catalog
// types to order code.
type StockReservationError struct {
	Message string
	Cause   error
}

func (e *StockReservationError) Error() string {
	return e.Message
}

func (e *StockReservationError) Unwrap() error {
	return e.Cause
}

func (e *StockReservationError) Is(target error) bool {
	return target == ErrStockReservation
}

// NewStockReservationError wraps a reservation failure.
func NewStockReservationError(message string, cause error) error {
	return &StockReservationError{Message: message, Cause: cause}
}

// ReservationRequest one (product, quantity) pair of a reservation batch.
type ReservationRequest struct {
	ProductID string
	Quantity  int
}

// ReservedItem the authoritative catalog snapshot returned for one reserved
// item: the name and unit price the order lines are built from.
type ReservedItem struct {
	ProductID      string
	ProductName    string
	SKU            string
	UnitPrice      shared.Money
	RemainingStock int
}

// InventoryGateway is the port through which the Orders context asks the
// Catalog context to verify and reserve stock, without depending on catalog
// internals. The batch signatures (verify+reserve, explicit release) are
// deliberately network-ready: if the contexts are ever split into separate
// services the same port can be re-implemented as a client.
type InventoryGateway interface {
	// VerifyAndReserveStock reserves stock for every item or for none.
	// The returned slice corresponds positionally to the request slice.
	// Fails with a StockReservationError on any failure.
	VerifyAndReserveStock(ctx context.Context, items []ReservationRequest) ([]ReservedItem, error)

	// ReleaseStock reverses a prior reservation (order cancellation).
	// Not idempotent: releasing the same reservation twice adds stock twice.
	// Callers must release at most once per reservation; the order aggregate
	// enforces this by rejecting a second cancellation of the same order.
	ReleaseStock(ctx context.Context, items []ReservationRequest) error

	// VerifyProductExists reports whether a product exists in the catalog.
	VerifyProductExists(ctx context.Context, productID string) (bool, error)
}
