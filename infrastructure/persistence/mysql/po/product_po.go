package po

import (
	"time"

	"commerce/domain/catalog"
	"commerce/domain/shared"

	"github.com/shopspring/decimal"
)

// ProductPO product persistence object. Mapping only, no business logic and
// no GORM associations.
type ProductPO struct {
	ID            string          `gorm:"primaryKey;size:64"`
	SKU           string          `gorm:"size:64;uniqueIndex;not null"`
	Name          string          `gorm:"size:255;not null"`
	Description   string          `gorm:"type:text"`
	PriceAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PriceCurrency string          `gorm:"size:3;not null"`
	StockQuantity int             `gorm:"not null"`
	IsActive      bool            `gorm:"default:true"`
	Version       int             `gorm:"default:0"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
}

func (ProductPO) TableName() string {
	return "products"
}

// FromProductDomain converts the aggregate to its persistence shape.
func FromProductDomain(p *catalog.Product) *ProductPO {
	return &ProductPO{
		ID:            p.ID(),
		SKU:           p.SKU().Value(),
		Name:          p.Name(),
		Description:   p.Description(),
		PriceAmount:   p.Price().Amount(),
		PriceCurrency: p.Price().Currency(),
		StockQuantity: p.Stock().Quantity(),
		IsActive:      p.IsActive(),
		Version:       p.Version(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

// ToDomain reconstructs the Product aggregate from persisted state.
func (po *ProductPO) ToDomain() *catalog.Product {
	return catalog.RebuildFromDTO(catalog.ReconstructionDTO{
		ID:          po.ID,
		SKU:         catalog.RebuildSKU(po.SKU),
		Name:        po.Name,
		Description: po.Description,
		Price:       shared.RebuildMoney(po.PriceAmount, po.PriceCurrency),
		Stock:       catalog.RebuildStock(po.StockQuantity),
		IsActive:    po.IsActive,
		Version:     po.Version,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	})
}
