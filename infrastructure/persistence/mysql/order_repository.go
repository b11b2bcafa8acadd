package mysql

import (
	"context"
	"errors"

	"commerce/domain/order"
	"commerce/infrastructure/persistence"
	"commerce/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// OrderRepository GORM implementation of the order repository.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save inserts a new order with its items, or updates an existing order
// under an optimistic-lock version check. Items are immutable after
// placement except through AddItem on a pending order, so updates rewrite
// the item rows wholesale.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, o)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, o)
	})
}

func (r *OrderRepository) saveWithTx(tx *gorm.DB, o *order.Order) error {
	orderPO, itemPOs := po.FromOrderDomain(o)

	if o.IsNew() {
		if err := tx.Create(orderPO).Error; err != nil {
			return err
		}
		if len(itemPOs) > 0 {
			if err := tx.Create(&itemPOs).Error; err != nil {
				return err
			}
		}
	} else {
		expectedVersion := o.Version()

		result := tx.Model(&po.OrderPO{}).
			Where("id = ? AND version = ?", o.ID(), expectedVersion).
			Updates(map[string]interface{}{
				"status":       orderPO.Status,
				"total_amount": orderPO.TotalAmount,
				"version":      expectedVersion + 1,
				"updated_at":   orderPO.UpdatedAt,
				"confirmed_at": orderPO.ConfirmedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.OrderPO{}).Where("id = ?", o.ID()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return order.NewOrderNotFoundError(o.ID())
			}
			return order.NewConcurrentModificationError(o.ID())
		}

		if err := tx.Where("order_id = ?", o.ID()).Delete(&po.OrderItemPO{}).Error; err != nil {
			return err
		}
		if len(itemPOs) > 0 {
			if err := tx.Create(&itemPOs).Error; err != nil {
				return err
			}
		}

		o.IncrementVersionForSave()
	}
	o.ClearNewFlag()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var orderPO po.OrderPO

	result := r.getDB(ctx).First(&orderPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, result.Error
	}

	itemPOs, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}

	return orderPO.ToDomain(itemPOs), nil
}

func (r *OrderRepository) FindAll(ctx context.Context, skip, limit int) ([]*order.Order, error) {
	var orderPOs []po.OrderPO

	err := r.getDB(ctx).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&orderPOs).Error
	if err != nil {
		return nil, err
	}

	return r.hydrate(ctx, orderPOs)
}

func (r *OrderRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*order.Order, error) {
	var orderPOs []po.OrderPO

	err := r.getDB(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orderPOs).Error
	if err != nil {
		return nil, err
	}

	return r.hydrate(ctx, orderPOs)
}

func (r *OrderRepository) loadItems(ctx context.Context, orderID string) ([]po.OrderItemPO, error) {
	var itemPOs []po.OrderItemPO
	if err := r.getDB(ctx).Where("order_id = ?", orderID).Order("id").Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	return itemPOs, nil
}

func (r *OrderRepository) hydrate(ctx context.Context, orderPOs []po.OrderPO) ([]*order.Order, error) {
	if len(orderPOs) == 0 {
		return []*order.Order{}, nil
	}

	ids := make([]string, len(orderPOs))
	for i, orderPO := range orderPOs {
		ids[i] = orderPO.ID
	}

	var itemPOs []po.OrderItemPO
	if err := r.getDB(ctx).Where("order_id IN ?", ids).Order("id").Find(&itemPOs).Error; err != nil {
		return nil, err
	}

	itemsByOrder := make(map[string][]po.OrderItemPO, len(orderPOs))
	for _, itemPO := range itemPOs {
		itemsByOrder[itemPO.OrderID] = append(itemsByOrder[itemPO.OrderID], itemPO)
	}

	orders := make([]*order.Order, len(orderPOs))
	for i, orderPO := range orderPOs {
		orders[i] = orderPO.ToDomain(itemsByOrder[orderPO.ID])
	}

	return orders, nil
}

var _ order.Repository = (*OrderRepository)(nil)
