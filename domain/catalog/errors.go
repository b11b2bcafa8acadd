/*
Package catalog - catalog domain error definitions.

Sentinel errors support errors.Is() classification; the constructors capture
the call stack at the point of failure (skip=3: runtime.Callers, CaptureStack,
NewXxxError).
*/
package catalog

import (
	"errors"
	"fmt"

	"commerce/domain/shared"
)

// ============================================================================
// Sentinel errors
// ============================================================================

var (
	// ErrProductNotFound product not found
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateSKU a product with the same SKU already exists
	ErrDuplicateSKU = errors.New("a product with this SKU already exists")

	// ErrInsufficientStock requested quantity exceeds the available stock
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInactiveProduct stock cannot be reserved on a deactivated product
	ErrInactiveProduct = errors.New("product is not active")

	// ErrPriceChangeExceedsLimit a single price update may not move the price
	// by more than 50%
	ErrPriceChangeExceedsLimit = errors.New("price cannot change by more than 50% at once")

	// ErrInvalidProductName product name is empty or shorter than 3 characters
	ErrInvalidProductName = errors.New("product name must have at least 3 characters")

	// ErrConcurrentModification the product row was modified by another
	// transaction; the caller should retry
	ErrConcurrentModification = errors.New("product was modified by another transaction, please retry")
)

// ============================================================================
// Constructors
// ============================================================================

// NewProductNotFoundError creates a product-not-found error with stack.
func NewProductNotFoundError(productID string) error {
	return &catalogDomainError{
		sentinel: ErrProductNotFound,
		kind:     shared.ErrNotFound,
		message:  "product not found: " + productID,
		stack:    shared.CaptureStack(3),
	}
}

// NewDuplicateSKUError creates a duplicate-SKU error.
func NewDuplicateSKUError(sku string) error {
	return &catalogDomainError{
		sentinel: ErrDuplicateSKU,
		kind:     shared.ErrBusinessRule,
		message:  "a product with SKU " + sku + " already exists",
		stack:    shared.CaptureStack(3),
	}
}

// NewInsufficientStockError creates an insufficient-stock error.
// name may be empty when the product is not known at the call site.
func NewInsufficientStockError(name string, available, requested int) error {
	msg := fmt.Sprintf("insufficient stock: available %d, requested %d", available, requested)
	if name != "" {
		msg = fmt.Sprintf("insufficient stock for product %q: available %d, requested %d",
			name, available, requested)
	}
	return &catalogDomainError{
		sentinel: ErrInsufficientStock,
		kind:     shared.ErrBusinessRule,
		message:  msg,
		stack:    shared.CaptureStack(3),
	}
}

// NewInactiveProductError creates an inactive-product error.
func NewInactiveProductError(name string) error {
	return &catalogDomainError{
		sentinel: ErrInactiveProduct,
		kind:     shared.ErrBusinessRule,
		message:  fmt.Sprintf("cannot reserve stock of inactive product %q", name),
		stack:    shared.CaptureStack(3),
	}
}

// NewPriceChangeExceedsLimitError creates a price-cap error carrying the
// requested change ratio.
func NewPriceChangeExceedsLimitError(ratio string) error {
	return &catalogDomainError{
		sentinel: ErrPriceChangeExceedsLimit,
		kind:     shared.ErrBusinessRule,
		message:  "price cannot change by more than 50% at once, requested change: " + ratio,
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError creates an optimistic-lock conflict error.
func NewConcurrentModificationError(productID string) error {
	return &catalogDomainError{
		sentinel: ErrConcurrentModification,
		kind:     shared.ErrConflict,
		message:  "product " + productID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

// ============================================================================
// Internal error struct, implements error, Unwrap and shared.Stacker
// ============================================================================

type catalogDomainError struct {
	sentinel error
	kind     error // shared taxonomy sentinel (ErrNotFound, ErrBusinessRule, ...)
	message  string
	stack    []uintptr
}

func (e *catalogDomainError) Error() string {
	return e.message
}

func (e *catalogDomainError) Unwrap() error {
	return e.sentinel
}

// Is lets errors.Is match both the catalog sentinel and the shared taxonomy.
func (e *catalogDomainError) Is(target error) bool {
	return target == e.sentinel || target == e.kind
}

// Stack implements shared.Stacker.
func (e *catalogDomainError) Stack() []string {
	return shared.FormatStack(e.stack)
}
