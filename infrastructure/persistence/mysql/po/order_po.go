package po

import (
	"time"

	"commerce/domain/order"
	"commerce/domain/shared"

	"github.com/shopspring/decimal"
)

// OrderPO order persistence object. Mapping only, no business logic and no
// GORM associations; items reference the order by ID alone.
type OrderPO struct {
	ID                 string          `gorm:"primaryKey;size:64"`
	CustomerID         string          `gorm:"size:64;index;not null"`
	CustomerName       string          `gorm:"size:100;not null"`
	CustomerEmail      string          `gorm:"size:255;not null"`
	CustomerPhone      string          `gorm:"size:32;not null"`
	ShippingStreet     string          `gorm:"size:255;not null"`
	ShippingCity       string          `gorm:"size:100;not null"`
	ShippingState      string          `gorm:"size:100;not null"`
	ShippingPostalCode string          `gorm:"size:20;not null"`
	ShippingCountry    string          `gorm:"size:100;not null"`
	Status             string          `gorm:"size:20;not null"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalCurrency      string          `gorm:"size:3;not null"`
	Version            int             `gorm:"default:0"`
	CreatedAt          time.Time       `gorm:"autoCreateTime"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime"`
	ConfirmedAt        *time.Time      `gorm:""`
}

func (OrderPO) TableName() string {
	return "orders"
}

// OrderItemPO order line persistence object.
type OrderItemPO struct {
	ID               string          `gorm:"primaryKey;size:64"`
	OrderID          string          `gorm:"size:64;index;not null"`
	ProductID        string          `gorm:"size:64;not null"`
	ProductName      string          `gorm:"size:255;not null"`
	Quantity         int             `gorm:"not null"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UnitCurrency     string          `gorm:"size:3;not null"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SubtotalCurrency string          `gorm:"size:3;not null"`
}

func (OrderItemPO) TableName() string {
	return "order_items"
}

// FromOrderDomain converts the aggregate and its items to persistence shape.
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderItemPO) {
	customer := o.Customer()
	address := o.ShippingAddress()

	orderPO := &OrderPO{
		ID:                 o.ID(),
		CustomerID:         customer.CustomerID(),
		CustomerName:       customer.Name(),
		CustomerEmail:      customer.Email(),
		CustomerPhone:      customer.Phone(),
		ShippingStreet:     address.Street(),
		ShippingCity:       address.City(),
		ShippingState:      address.State(),
		ShippingPostalCode: address.PostalCode(),
		ShippingCountry:    address.Country(),
		Status:             string(o.Status()),
		TotalAmount:        o.TotalAmount().Amount(),
		TotalCurrency:      o.TotalAmount().Currency(),
		Version:            o.Version(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
		ConfirmedAt:        o.ConfirmedAt(),
	}

	items := o.Items()
	itemPOs := make([]OrderItemPO, len(items))
	for i, item := range items {
		itemPOs[i] = OrderItemPO{
			ID:               item.ID(),
			OrderID:          o.ID(),
			ProductID:        item.ProductID(),
			ProductName:      item.ProductName(),
			Quantity:         item.Quantity().Value(),
			UnitPrice:        item.UnitPrice().Amount(),
			UnitCurrency:     item.UnitPrice().Currency(),
			Subtotal:         item.Subtotal().Amount(),
			SubtotalCurrency: item.Subtotal().Currency(),
		}
	}

	return orderPO, itemPOs
}

// ToDomain reconstructs the Order aggregate from persisted state.
func (po *OrderPO) ToDomain(itemPOs []OrderItemPO) *order.Order {
	items := make([]order.OrderItem, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = order.RebuildItemFromDTO(order.ItemReconstructionDTO{
			ID:          itemPO.ID,
			ProductID:   itemPO.ProductID,
			ProductName: itemPO.ProductName,
			Quantity:    order.RebuildQuantity(itemPO.Quantity),
			UnitPrice:   shared.RebuildMoney(itemPO.UnitPrice, itemPO.UnitCurrency),
			Subtotal:    shared.RebuildMoney(itemPO.Subtotal, itemPO.SubtotalCurrency),
		})
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:       po.ID,
		Customer: order.RebuildCustomerInfo(po.CustomerID, po.CustomerName, po.CustomerEmail, po.CustomerPhone),
		Items:    items,
		ShippingAddress: order.RebuildAddress(
			po.ShippingStreet, po.ShippingCity, po.ShippingState, po.ShippingPostalCode, po.ShippingCountry),
		Status:      order.Status(po.Status),
		TotalAmount: shared.RebuildMoney(po.TotalAmount, po.TotalCurrency),
		Version:     po.Version,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
		ConfirmedAt: po.ConfirmedAt,
	})
}
