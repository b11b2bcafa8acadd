package catalog

import (
	"fmt"
	"strings"

	"commerce/domain/shared"
)

// ============================================================================
// SKU
// ============================================================================

// SKU value object - immutable identity of a product within the catalog.
// At least 5 characters, alphanumeric and hyphens only, normalized to upper case.
type SKU struct {
	value string
}

// NewSKU creates a validated, case-normalized SKU.
func NewSKU(value string) (*SKU, error) {
	value = strings.TrimSpace(value)

	if value == "" {
		return nil, shared.NewValidationError("product", "sku", "SKU cannot be empty")
	}
	if len(value) < 5 {
		return nil, shared.NewValidationError("product", "sku", "SKU must have at least 5 characters")
	}
	for _, c := range value {
		if !isAlnum(c) && c != '-' {
			return nil, shared.NewValidationError("product", "sku",
				"SKU may only contain alphanumeric characters and hyphens")
		}
	}

	return &SKU{value: strings.ToUpper(value)}, nil
}

func isAlnum(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// RebuildSKU reconstructs a SKU from persisted state without validation.
// For repository use only.
func RebuildSKU(value string) SKU {
	return SKU{value: value}
}

// Value returns the normalized SKU string.
func (s SKU) Value() string {
	return s.value
}

// Equals compares two SKUs by value.
func (s SKU) Equals(other SKU) bool {
	return s.value == other.value
}

// String implements Stringer.
func (s SKU) String() string {
	return s.value
}

// ============================================================================
// Stock
// ============================================================================

// Stock value object - a non-negative available quantity.
// Decrease and Increase are pure: they return a new Stock and leave the
// receiver untouched.
type Stock struct {
	quantity int
}

// NewStock creates a validated Stock.
func NewStock(quantity int) (*Stock, error) {
	if quantity < 0 {
		return nil, shared.NewValidationError("product", "stock", "stock cannot be negative")
	}
	return &Stock{quantity: quantity}, nil
}

// RebuildStock reconstructs a Stock from persisted state without validation.
// For repository use only.
func RebuildStock(quantity int) Stock {
	return Stock{quantity: quantity}
}

// Quantity returns the available quantity.
func (s Stock) Quantity() int {
	return s.quantity
}

// IsAvailable reports whether the requested quantity can be served.
func (s Stock) IsAvailable(requested int) bool {
	return s.quantity >= requested
}

// Decrease returns a new Stock reduced by amount.
// Fails for negative amounts and when the result would go below zero.
func (s Stock) Decrease(amount int) (*Stock, error) {
	if amount < 0 {
		return nil, shared.NewValidationError("product", "stock", "cannot decrease stock by a negative amount")
	}
	if amount > s.quantity {
		return nil, NewInsufficientStockError("", s.quantity, amount)
	}
	return &Stock{quantity: s.quantity - amount}, nil
}

// Increase returns a new Stock raised by amount.
func (s Stock) Increase(amount int) (*Stock, error) {
	if amount < 0 {
		return nil, shared.NewValidationError("product", "stock", "cannot increase stock by a negative amount")
	}
	return &Stock{quantity: s.quantity + amount}, nil
}

// String implements Stringer.
func (s Stock) String() string {
	return fmt.Sprintf("%d", s.quantity)
}
