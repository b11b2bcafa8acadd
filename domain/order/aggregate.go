/*
Package order - Orders bounded context domain layer.

The Order aggregate root owns the customer snapshot, shipping address, line
items and the status lifecycle. Items exist only inside their order's
lifetime; the aggregate references catalog products by identity plus a
point-in-time name/price snapshot captured at reservation, never by a live
Product reference.
*/
package order

import (
	"fmt"
	"time"

	"commerce/domain/shared"

	"github.com/google/uuid"
)

// Status order lifecycle state.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return s, nil
	default:
		return "", shared.NewValidationError("order", "status", "unknown order status: "+raw)
	}
}

// OrderItem - entity inside the Order aggregate, accessible only through it.
// Carries the product identity plus the authoritative name and unit price
// snapshotted from the catalog at reservation time.
type OrderItem struct {
	id          string
	productID   string
	productName string
	quantity    Quantity
	unitPrice   shared.Money
	subtotal    shared.Money
}

// NewOrderItem creates a priced order line. The unit price comes from the
// reservation response, so it is already a validated positive Money.
func NewOrderItem(productID, productName string, quantity Quantity, unitPrice shared.Money) (*OrderItem, error) {
	if productID == "" {
		return nil, shared.NewValidationError("order", "product_id", "product ID is required")
	}

	subtotal, err := unitPrice.MultiplyByQuantity(quantity.Value())
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order item ID: %w", err)
	}

	return &OrderItem{
		id:          id.String(),
		productID:   productID,
		productName: productName,
		quantity:    quantity,
		unitPrice:   unitPrice,
		subtotal:    *subtotal,
	}, nil
}

func (item OrderItem) ID() string              { return item.id }
func (item OrderItem) ProductID() string       { return item.productID }
func (item OrderItem) ProductName() string     { return item.productName }
func (item OrderItem) Quantity() Quantity      { return item.quantity }
func (item OrderItem) UnitPrice() shared.Money { return item.unitPrice }
func (item OrderItem) Subtotal() shared.Money  { return item.subtotal }

// Order aggregate root.
type Order struct {
	id              string
	customer        CustomerInfo
	items           []OrderItem
	shippingAddress Address
	status          Status
	totalAmount     shared.Money
	version         int // optimistic lock version
	createdAt       time.Time
	updatedAt       time.Time
	confirmedAt     *time.Time

	events []shared.DomainEvent
	isNew  bool
}

// NewOrder creates a new Order aggregate root in PENDING state.
// Requires at least one priced item; the total amount is computed here as the
// sum of the item subtotals, rounded to 2 decimal places.
func NewOrder(customer CustomerInfo, shippingAddress Address, items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, NewEmptyOrderItemsError()
	}

	total, err := sumSubtotals(items)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order ID: %w", err)
	}

	now := time.Now()
	o := &Order{
		id:              id.String(),
		customer:        customer,
		items:           items,
		shippingAddress: shippingAddress,
		status:          StatusPending,
		totalAmount:     *total,
		version:         0,
		createdAt:       now,
		updatedAt:       now,
		events:          make([]shared.DomainEvent, 0),
		isNew:           true,
	}

	o.events = append(o.events, NewOrderPlacedEvent(o.id, customer.CustomerID(), o.totalAmount))

	return o, nil
}

func sumSubtotals(items []OrderItem) (*shared.Money, error) {
	total := items[0].subtotal
	for _, item := range items[1:] {
		sum, err := total.Add(item.subtotal)
		if err != nil {
			return nil, err
		}
		total = *sum
	}
	rounded, err := shared.NewMoney(total.Amount().Round(2), total.Currency())
	if err != nil {
		return nil, err
	}
	return rounded, nil
}

// ============================================================================
// ReconstructionDTO - for repository layer use only
// ============================================================================

// ReconstructionDTO rebuilds an Order from persisted state.
type ReconstructionDTO struct {
	ID              string
	Customer        CustomerInfo
	Items           []OrderItem
	ShippingAddress Address
	Status          Status
	TotalAmount     shared.Money
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ConfirmedAt     *time.Time
}

// RebuildFromDTO reconstructs an Order aggregate root from persisted state.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:              dto.ID,
		customer:        dto.Customer,
		items:           dto.Items,
		shippingAddress: dto.ShippingAddress,
		status:          dto.Status,
		totalAmount:     dto.TotalAmount,
		version:         dto.Version,
		createdAt:       dto.CreatedAt,
		updatedAt:       dto.UpdatedAt,
		confirmedAt:     dto.ConfirmedAt,
		events:          nil,
		isNew:           false,
	}
}

// ItemReconstructionDTO rebuilds an OrderItem from persisted state.
type ItemReconstructionDTO struct {
	ID          string
	ProductID   string
	ProductName string
	Quantity    Quantity
	UnitPrice   shared.Money
	Subtotal    shared.Money
}

// RebuildItemFromDTO reconstructs an OrderItem.
func RebuildItemFromDTO(dto ItemReconstructionDTO) OrderItem {
	return OrderItem{
		id:          dto.ID,
		productID:   dto.ProductID,
		productName: dto.ProductName,
		quantity:    dto.Quantity,
		unitPrice:   dto.UnitPrice,
		subtotal:    dto.Subtotal,
	}
}

// ============================================================================
// Lifecycle transitions
// ============================================================================
//
// PENDING → CONFIRMED → PROCESSING → SHIPPED → DELIVERED
// CANCELLED is reachable from PENDING, CONFIRMED and PROCESSING only.
// Any disallowed transition fails identifying the current vs. required state.

// Confirm transitions PENDING → CONFIRMED and stamps confirmedAt.
func (o *Order) Confirm() error {
	if o.status != StatusPending {
		return NewInvalidStateTransitionError(o.status, StatusConfirmed)
	}

	now := time.Now()
	o.status = StatusConfirmed
	o.confirmedAt = &now
	o.updatedAt = now
	o.events = append(o.events, NewOrderConfirmedEvent(o.id))
	return nil
}

// MarkProcessing transitions CONFIRMED → PROCESSING.
func (o *Order) MarkProcessing() error {
	if o.status != StatusConfirmed {
		return NewInvalidStateTransitionError(o.status, StatusProcessing)
	}

	o.status = StatusProcessing
	o.updatedAt = time.Now()
	return nil
}

// MarkShipped transitions PROCESSING → SHIPPED.
func (o *Order) MarkShipped() error {
	if o.status != StatusProcessing {
		return NewInvalidStateTransitionError(o.status, StatusShipped)
	}

	o.status = StatusShipped
	o.updatedAt = time.Now()
	o.events = append(o.events, NewOrderShippedEvent(o.id))
	return nil
}

// MarkDelivered transitions SHIPPED → DELIVERED.
func (o *Order) MarkDelivered() error {
	if o.status != StatusShipped {
		return NewInvalidStateTransitionError(o.status, StatusDelivered)
	}

	o.status = StatusDelivered
	o.updatedAt = time.Now()
	o.events = append(o.events, NewOrderDeliveredEvent(o.id))
	return nil
}

// Cancel transitions to CANCELLED from PENDING, CONFIRMED or PROCESSING.
// Shipped, delivered and already-cancelled orders cannot be cancelled.
func (o *Order) Cancel(reason string) error {
	switch o.status {
	case StatusShipped, StatusDelivered, StatusCancelled:
		return NewInvalidStateTransitionError(o.status, StatusCancelled)
	}

	o.status = StatusCancelled
	o.updatedAt = time.Now()
	o.events = append(o.events, NewOrderCancelledEvent(o.id, reason))
	return nil
}

// AddItem appends a priced line to a PENDING order and recomputes the total.
func (o *Order) AddItem(item OrderItem) error {
	if o.status != StatusPending {
		return ErrCannotModifyNonPendingOrder
	}

	o.items = append(o.items, item)
	total, err := sumSubtotals(o.items)
	if err != nil {
		o.items = o.items[:len(o.items)-1]
		return err
	}
	o.totalAmount = *total
	o.updatedAt = time.Now()
	return nil
}

// ItemCount returns the number of units across all lines.
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.items {
		count += item.quantity.Value()
	}
	return count
}

// ============================================================================
// Getters
// ============================================================================

func (o *Order) ID() string                { return o.id }
func (o *Order) Customer() CustomerInfo    { return o.customer }
func (o *Order) ShippingAddress() Address  { return o.shippingAddress }
func (o *Order) Status() Status            { return o.status }
func (o *Order) TotalAmount() shared.Money { return o.totalAmount }
func (o *Order) Version() int              { return o.version }
func (o *Order) CreatedAt() time.Time      { return o.createdAt }
func (o *Order) UpdatedAt() time.Time      { return o.updatedAt }
func (o *Order) ConfirmedAt() *time.Time   { return o.confirmedAt }

// Items returns a copy of the order lines; external code cannot mutate the
// aggregate's internals through it.
func (o *Order) Items() []OrderItem {
	items := make([]OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

// ============================================================================
// Persistence bookkeeping - for repository layer use only
// ============================================================================

// IsNew reports whether the aggregate was created in this session.
func (o *Order) IsNew() bool { return o.isNew }

// IncrementVersionForSave bumps the optimistic-lock version after a
// successful persist.
func (o *Order) IncrementVersionForSave() {
	o.version++
}

// ClearNewFlag marks the aggregate as persisted.
func (o *Order) ClearNewFlag() {
	o.isNew = false
}

// PullEvents returns and clears the recorded domain events.
func (o *Order) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(o.events))
	copy(events, o.events)
	o.events = o.events[:0]
	return events
}

var _ shared.AggregateRoot = (*Order)(nil)
