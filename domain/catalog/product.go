/*
Package catalog - Catalog bounded context domain layer.

The Product aggregate root owns SKU, price, stock and the active flag, and
enforces the catalog invariants: stock never goes negative, a single price
update may not move the price by more than 50%, reservations require an
active product. All mutation goes through aggregate methods; callers never
set price or stock directly from untrusted input.
*/
package catalog

import (
	"fmt"
	"time"

	"commerce/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// priceChangeLimit maximum relative change a single price update may apply.
var priceChangeLimit = decimal.RequireFromString("0.5")

// Product aggregate root.
// Owned exclusively by the Catalog context; the Orders context only ever sees
// its identity plus a point-in-time name/price snapshot taken at reservation.
type Product struct {
	id          string
	sku         SKU
	name        string
	description string
	price       shared.Money
	stock       Stock
	isActive    bool
	version     int // optimistic lock version
	createdAt   time.Time
	updatedAt   time.Time

	events []shared.DomainEvent
	isNew  bool
}

// NewProduct creates a new Product aggregate root.
// The only entry point for product creation; it validates the name invariant
// and records a ProductCreatedEvent.
func NewProduct(sku SKU, name, description string, price shared.Money, initialStock Stock) (*Product, error) {
	if len(name) < 3 {
		return nil, ErrInvalidProductName
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate product ID: %w", err)
	}

	now := time.Now()
	p := &Product{
		id:          id.String(),
		sku:         sku,
		name:        name,
		description: description,
		price:       price,
		stock:       initialStock,
		isActive:    true,
		version:     0,
		createdAt:   now,
		updatedAt:   now,
		events:      make([]shared.DomainEvent, 0),
		isNew:       true,
	}

	p.events = append(p.events, NewProductCreatedEvent(p.id, sku.Value(), name, price))

	return p, nil
}

// ============================================================================
// ReconstructionDTO - for repository layer use only
// ============================================================================

// ReconstructionDTO rebuilds a Product from persisted state. Fields are
// private on the aggregate, so repositories go through this factory instead
// of setters or reflection. Not for application-layer use.
type ReconstructionDTO struct {
	ID          string
	SKU         SKU
	Name        string
	Description string
	Price       shared.Money
	Stock       Stock
	IsActive    bool
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RebuildFromDTO reconstructs a Product aggregate root from persisted state.
func RebuildFromDTO(dto ReconstructionDTO) *Product {
	return &Product{
		id:          dto.ID,
		sku:         dto.SKU,
		name:        dto.Name,
		description: dto.Description,
		price:       dto.Price,
		stock:       dto.Stock,
		isActive:    dto.IsActive,
		version:     dto.Version,
		createdAt:   dto.CreatedAt,
		updatedAt:   dto.UpdatedAt,
		events:      nil,
		isNew:       false,
	}
}

// ============================================================================
// Domain behavior
// ============================================================================

// UpdatePrice replaces the product price.
// Invariant: |new − old| / old must not exceed 0.5; exactly 50% is allowed.
// The limit guards against erroneous bulk price changes. There is no limit on
// the first price a product receives.
func (p *Product) UpdatePrice(newPrice shared.Money) error {
	ratio := newPrice.Amount().Sub(p.price.Amount()).Abs().Div(p.price.Amount())
	if ratio.GreaterThan(priceChangeLimit) {
		return NewPriceChangeExceedsLimitError(ratio.Mul(decimal.NewFromInt(100)).Round(1).String() + "%")
	}

	old := p.price
	p.price = newPrice
	p.updatedAt = time.Now()
	p.events = append(p.events, NewProductPriceChangedEvent(p.id, old, newPrice))
	return nil
}

// ReserveStock provisionally decrements available stock to back an order.
// Fails when the product is inactive or the available stock is short.
func (p *Product) ReserveStock(quantity int) error {
	if !p.isActive {
		return NewInactiveProductError(p.name)
	}
	if !p.stock.IsAvailable(quantity) {
		return NewInsufficientStockError(p.name, p.stock.Quantity(), quantity)
	}

	decreased, err := p.stock.Decrease(quantity)
	if err != nil {
		return err
	}
	p.stock = *decreased
	p.updatedAt = time.Now()
	p.events = append(p.events, NewStockReservedEvent(p.id, quantity, p.stock.Quantity()))
	return nil
}

// ReleaseStock reverses a prior reservation, e.g. when an order is cancelled.
// The quantity must equal what was reserved for the item; the one-shot
// CANCELLED transition on the order side prevents a second release.
func (p *Product) ReleaseStock(quantity int) error {
	increased, err := p.stock.Increase(quantity)
	if err != nil {
		return err
	}
	p.stock = *increased
	p.updatedAt = time.Now()
	p.events = append(p.events, NewStockReleasedEvent(p.id, quantity, p.stock.Quantity()))
	return nil
}

// ReplenishStock increases available stock; always succeeds for quantity >= 0.
func (p *Product) ReplenishStock(quantity int) error {
	increased, err := p.stock.Increase(quantity)
	if err != nil {
		return err
	}
	p.stock = *increased
	p.updatedAt = time.Now()
	return nil
}

// Activate makes the product reservable again.
func (p *Product) Activate() {
	p.isActive = true
	p.updatedAt = time.Now()
}

// Deactivate blocks future reservations. Existing orders are unaffected.
func (p *Product) Deactivate() {
	p.isActive = false
	p.updatedAt = time.Now()
}

// UpdateDetails changes name and/or description. nil means "leave unchanged".
// A supplied name must have at least 3 characters.
func (p *Product) UpdateDetails(name, description *string) error {
	if name != nil {
		if len(*name) < 3 {
			return ErrInvalidProductName
		}
		p.name = *name
	}
	if description != nil {
		p.description = *description
	}
	p.updatedAt = time.Now()
	return nil
}

// ============================================================================
// Getters
// ============================================================================

func (p *Product) ID() string           { return p.id }
func (p *Product) SKU() SKU             { return p.sku }
func (p *Product) Name() string         { return p.name }
func (p *Product) Description() string  { return p.description }
func (p *Product) Price() shared.Money  { return p.price }
func (p *Product) Stock() Stock         { return p.stock }
func (p *Product) IsActive() bool       { return p.isActive }
func (p *Product) Version() int         { return p.version }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

// ============================================================================
// Persistence bookkeeping - for repository layer use only
// ============================================================================

// IsNew reports whether the aggregate was created in this session rather than
// loaded from the database. Repositories use it to choose INSERT vs UPDATE.
func (p *Product) IsNew() bool { return p.isNew }

// IncrementVersionForSave bumps the optimistic-lock version after a
// successful persist. Called by the repository, never by application code.
func (p *Product) IncrementVersionForSave() {
	p.version++
}

// ClearNewFlag marks the aggregate as persisted.
func (p *Product) ClearNewFlag() {
	p.isNew = false
}

// PullEvents returns and clears the recorded domain events.
func (p *Product) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(p.events))
	copy(events, p.events)
	p.events = p.events[:0]
	return events
}

// Compile-time check that Product implements AggregateRoot.
var _ shared.AggregateRoot = (*Product)(nil)
