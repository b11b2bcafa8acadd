/*
Package order - order domain error definitions.

Same conventions as the catalog package: sentinel errors for errors.Is(),
constructors that capture the call stack at the point of failure, and an Is
method that additionally classifies each error under the shared taxonomy.
*/
package order

import (
	"errors"

	"commerce/domain/shared"
)

// ============================================================================
// Sentinel errors
// ============================================================================

var (
	// ErrOrderNotFound order not found
	ErrOrderNotFound = errors.New("order not found")

	// ErrEmptyOrderItems an order must carry at least one item
	ErrEmptyOrderItems = errors.New("order must have at least one item")

	// ErrInvalidStateTransition the requested lifecycle transition is not
	// allowed from the order's current status
	ErrInvalidStateTransition = errors.New("invalid order state transition")

	// ErrCannotModifyNonPendingOrder items can only be added while PENDING
	ErrCannotModifyNonPendingOrder = errors.New("can only modify pending orders")

	// ErrConcurrentModification the order row was modified by another
	// transaction; the caller should retry
	ErrConcurrentModification = errors.New("order was modified by another transaction, please retry")
)

// ============================================================================
// Constructors
// ============================================================================

// NewOrderNotFoundError creates an order-not-found error with stack.
func NewOrderNotFoundError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrOrderNotFound,
		kind:     shared.ErrNotFound,
		message:  "order not found: " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidStateTransitionError creates a lifecycle-violation error
// identifying the current and the required status.
func NewInvalidStateTransitionError(current, target Status) error {
	return &orderDomainError{
		sentinel: ErrInvalidStateTransition,
		kind:     shared.ErrBusinessRule,
		message:  "cannot transition order from " + string(current) + " to " + string(target),
		stack:    shared.CaptureStack(3),
	}
}

// NewEmptyOrderItemsError creates an empty-items error.
func NewEmptyOrderItemsError() error {
	return &orderDomainError{
		sentinel: ErrEmptyOrderItems,
		kind:     shared.ErrBusinessRule,
		message:  "order must have at least one item",
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError creates an optimistic-lock conflict error.
func NewConcurrentModificationError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrConcurrentModification,
		kind:     shared.ErrConflict,
		message:  "order " + orderID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

// ============================================================================
// Internal error struct
// ============================================================================

type orderDomainError struct {
	sentinel error
	kind     error
	message  string
	stack    []uintptr
}

func (e *orderDomainError) Error() string {
	return e.message
}

func (e *orderDomainError) Unwrap() error {
	return e.sentinel
}

// Is lets errors.Is match both the order sentinel and the shared taxonomy.
func (e *orderDomainError) Is(target error) bool {
	return target == e.sentinel || target == e.kind
}

// Stack implements shared.Stacker.
func (e *orderDomainError) Stack() []string {
	return shared.FormatStack(e.stack)
}
