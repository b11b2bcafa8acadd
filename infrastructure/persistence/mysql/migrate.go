package mysql

import (
	"fmt"

	"commerce/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all persistence objects.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&po.ProductPO{},
		&po.OrderPO{},
		&po.OrderItemPO{},
		&po.OutboxEventPO{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
