package mysql

import (
	"context"
	"errors"
	"strings"

	"commerce/domain/catalog"
	"commerce/infrastructure/persistence"
	"commerce/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// ProductRepository GORM implementation of the catalog repository.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Duplicate entry") ||
		strings.Contains(errStr, "1062")
}

// Save inserts a new product, or updates an existing one under an
// optimistic-lock version check. Zero affected rows on the update means the
// version moved underneath us, never a silent overwrite.
func (r *ProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, p)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, p)
	})
}

func (r *ProductRepository) saveWithTx(tx *gorm.DB, p *catalog.Product) error {
	productPO := po.FromProductDomain(p)

	if p.IsNew() {
		if err := tx.Create(productPO).Error; err != nil {
			if isDuplicateKeyError(err) {
				return catalog.NewDuplicateSKUError(productPO.SKU)
			}
			return err
		}
	} else {
		expectedVersion := p.Version()

		result := tx.Model(&po.ProductPO{}).
			Where("id = ? AND version = ?", p.ID(), expectedVersion).
			Updates(map[string]interface{}{
				"sku":            productPO.SKU,
				"name":           productPO.Name,
				"description":    productPO.Description,
				"price_amount":   productPO.PriceAmount,
				"price_currency": productPO.PriceCurrency,
				"stock_quantity": productPO.StockQuantity,
				"is_active":      productPO.IsActive,
				"version":        expectedVersion + 1,
				"updated_at":     productPO.UpdatedAt,
			})

		if result.Error != nil {
			if isDuplicateKeyError(result.Error) {
				return catalog.NewDuplicateSKUError(productPO.SKU)
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.ProductPO{}).Where("id = ?", p.ID()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return catalog.NewProductNotFoundError(p.ID())
			}
			return catalog.NewConcurrentModificationError(p.ID())
		}

		p.IncrementVersionForSave()
	}
	p.ClearNewFlag()
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var productPO po.ProductPO

	result := r.getDB(ctx).First(&productPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, catalog.NewProductNotFoundError(id)
		}
		return nil, result.Error
	}

	return productPO.ToDomain(), nil
}

func (r *ProductRepository) FindBySKU(ctx context.Context, sku catalog.SKU) (*catalog.Product, error) {
	var productPO po.ProductPO

	result := r.getDB(ctx).First(&productPO, "sku = ?", sku.Value())
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, catalog.NewProductNotFoundError(sku.Value())
		}
		return nil, result.Error
	}

	return productPO.ToDomain(), nil
}

func (r *ProductRepository) FindAll(ctx context.Context, skip, limit int) ([]*catalog.Product, error) {
	var productPOs []po.ProductPO

	err := r.getDB(ctx).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&productPOs).Error
	if err != nil {
		return nil, err
	}

	products := make([]*catalog.Product, len(productPOs))
	for i, productPO := range productPOs {
		products[i] = productPO.ToDomain()
	}

	return products, nil
}

func (r *ProductRepository) ExistsBySKU(ctx context.Context, sku catalog.SKU) (bool, error) {
	var count int64

	err := r.getDB(ctx).Model(&po.ProductPO{}).
		Where("sku = ?", sku.Value()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

var _ catalog.Repository = (*ProductRepository)(nil)
