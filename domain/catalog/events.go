package catalog

import (
	"time"

	"commerce/domain/shared"
)

type ProductCreatedEvent struct {
	productID  string
	sku        string
	name       string
	price      shared.Money
	occurredOn time.Time
}

func NewProductCreatedEvent(productID, sku, name string, price shared.Money) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		productID:  productID,
		sku:        sku,
		name:       name,
		price:      price,
		occurredOn: time.Now(),
	}
}

func (e *ProductCreatedEvent) EventName() string      { return "product.created" }
func (e *ProductCreatedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *ProductCreatedEvent) GetAggregateID() string { return e.productID }
func (e *ProductCreatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"product_id": e.productID,
		"sku":        e.sku,
		"name":       e.name,
		"price":      e.price.Amount().StringFixed(2),
		"currency":   e.price.Currency(),
	}
}

type ProductPriceChangedEvent struct {
	productID  string
	oldPrice   shared.Money
	newPrice   shared.Money
	occurredOn time.Time
}

func NewProductPriceChangedEvent(productID string, oldPrice, newPrice shared.Money) *ProductPriceChangedEvent {
	return &ProductPriceChangedEvent{
		productID:  productID,
		oldPrice:   oldPrice,
		newPrice:   newPrice,
		occurredOn: time.Now(),
	}
}

func (e *ProductPriceChangedEvent) EventName() string      { return "product.price_changed" }
func (e *ProductPriceChangedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *ProductPriceChangedEvent) GetAggregateID() string { return e.productID }
func (e *ProductPriceChangedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"product_id": e.productID,
		"old_price":  e.oldPrice.Amount().StringFixed(2),
		"new_price":  e.newPrice.Amount().StringFixed(2),
		"currency":   e.newPrice.Currency(),
	}
}

type StockReservedEvent struct {
	productID  string
	quantity   int
	remaining  int
	occurredOn time.Time
}

func NewStockReservedEvent(productID string, quantity, remaining int) *StockReservedEvent {
	return &StockReservedEvent{
		productID:  productID,
		quantity:   quantity,
		remaining:  remaining,
		occurredOn: time.Now(),
	}
}

func (e *StockReservedEvent) EventName() string      { return "product.stock_reserved" }
func (e *StockReservedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *StockReservedEvent) GetAggregateID() string { return e.productID }
func (e *StockReservedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"product_id": e.productID,
		"quantity":   e.quantity,
		"remaining":  e.remaining,
	}
}

type StockReleasedEvent struct {
	productID  string
	quantity   int
	remaining  int
	occurredOn time.Time
}

func NewStockReleasedEvent(productID string, quantity, remaining int) *StockReleasedEvent {
	return &StockReleasedEvent{
		productID:  productID,
		quantity:   quantity,
		remaining:  remaining,
		occurredOn: time.Now(),
	}
}

func (e *StockReleasedEvent) EventName() string      { return "product.stock_released" }
func (e *StockReleasedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *StockReleasedEvent) GetAggregateID() string { return e.productID }
func (e *StockReleasedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"product_id": e.productID,
		"quantity":   e.quantity,
		"remaining":  e.remaining,
	}
}
