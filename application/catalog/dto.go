package catalog

import (
	"time"

	"commerce/domain/catalog"

	"github.com/shopspring/decimal"
)

// CreateProductRequest create-product request DTO.
type CreateProductRequest struct {
	SKU          string          `json:"sku" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	Currency     string          `json:"currency" binding:"required"`
	InitialStock int             `json:"initial_stock" binding:"min=0"`
}

// UpdatePriceRequest price-update request DTO.
type UpdatePriceRequest struct {
	Price    decimal.Decimal `json:"price" binding:"required"`
	Currency string          `json:"currency" binding:"required"`
}

// UpdateDetailsRequest detail-update request DTO; nil fields stay unchanged.
type UpdateDetailsRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ReplenishStockRequest stock-replenishment request DTO.
type ReplenishStockRequest struct {
	Quantity int `json:"quantity" binding:"required,min=0"`
}

// ProductResponse product response DTO.
type ProductResponse struct {
	ID          string    `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Currency    string    `json:"currency"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ReserveStockItem one (product, quantity) pair of a reservation batch.
type ReserveStockItem struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// ReservedProductInfo authoritative product snapshot returned per reserved item.
type ReservedProductInfo struct {
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	SKU              string          `json:"sku"`
	ReservedQuantity int             `json:"reserved_quantity"`
	RemainingStock   int             `json:"remaining_stock"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Currency         string          `json:"currency"`
}

func toProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID(),
		SKU:         p.SKU().Value(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price().Amount().StringFixed(2),
		Currency:    p.Price().Currency(),
		Stock:       p.Stock().Quantity(),
		IsActive:    p.IsActive(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}
