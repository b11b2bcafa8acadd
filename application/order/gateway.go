package order

import (
	"context"
	"fmt"

	catalogapp "commerce/application/catalog"
	"commerce/domain/order"
	"commerce/domain/shared"
)

// catalogInventoryGateway adapts the catalog application service to the
// Orders context's InventoryGateway port. It is intentionally thin: it
// translates request/response shapes and wraps failures, nothing more.
type catalogInventoryGateway struct {
	catalog *catalogapp.ApplicationService
}

// NewCatalogInventoryGateway builds the in-process gateway between the
// Orders context and the Catalog context.
func NewCatalogInventoryGateway(catalog *catalogapp.ApplicationService) order.InventoryGateway {
	return &catalogInventoryGateway{catalog: catalog}
}

func (g *catalogInventoryGateway) VerifyAndReserveStock(ctx context.Context, items []order.ReservationRequest) ([]order.ReservedItem, error) {
	reserved, err := g.catalog.ReserveStock(ctx, toReserveStockItems(items))
	if err != nil {
		return nil, order.NewStockReservationError(
			fmt.Sprintf("stock reservation failed: %v", err), err)
	}

	result := make([]order.ReservedItem, len(reserved))
	for i, info := range reserved {
		unitPrice, err := shared.NewMoney(info.UnitPrice, info.Currency)
		if err != nil {
			return nil, order.NewStockReservationError(
				fmt.Sprintf("invalid unit price for product %s: %v", info.ProductID, err), err)
		}
		result[i] = order.ReservedItem{
			ProductID:      info.ProductID,
			ProductName:    info.ProductName,
			SKU:            info.SKU,
			UnitPrice:      *unitPrice,
			RemainingStock: info.RemainingStock,
		}
	}
	return result, nil
}

func (g *catalogInventoryGateway) ReleaseStock(ctx context.Context, items []order.ReservationRequest) error {
	if err := g.catalog.ReleaseStock(ctx, toReserveStockItems(items)); err != nil {
		return order.NewStockReservationError(
			fmt.Sprintf("stock release failed: %v", err), err)
	}
	return nil
}

func (g *catalogInventoryGateway) VerifyProductExists(ctx context.Context, productID string) (bool, error) {
	return g.catalog.ProductExists(ctx, productID)
}

func toReserveStockItems(items []order.ReservationRequest) []catalogapp.ReserveStockItem {
	converted := make([]catalogapp.ReserveStockItem, len(items))
	for i, item := range items {
		converted[i] = catalogapp.ReserveStockItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}
	return converted
}
