package catalog

import (
	"context"

	"commerce/domain/catalog"
)

// ReserveStock reserves stock for all items of the batch or for none.
//
// The protocol runs in two phases within one unit of work:
//
//  1. Verification - load every product; fail the whole batch if any product
//     is missing, inactive, or short of stock. No mutation occurs here.
//  2. Commit - only entered when phase 1 passed for every item: reserve and
//     persist each product, capturing the authoritative name and unit price
//     for the caller.
//
// Both phases share the caller's transaction, so a persistence failure in
// phase 2 rolls back every prior decrement of the batch. Overbooking under
// concurrent batches is prevented by the optimistic version check in the
// repository: the second writer gets a concurrent-modification error and the
// whole unit of work is retried or surfaced to the caller.
//
// The returned slice corresponds positionally to the request slice.
func (s *ApplicationService) ReserveStock(ctx context.Context, items []ReserveStockItem) ([]ReservedProductInfo, error) {
	if len(items) == 0 {
		return nil, nil
	}

	uow := s.uowFactory.New()
	result := make([]ReservedProductInfo, 0, len(items))

	err := uow.Execute(ctx, func(ctx context.Context) error {
		result = result[:0]

		// Phase 1: verify every item before touching anything.
		loaded := make([]*catalog.Product, len(items))
		for i, item := range items {
			product, err := s.products.FindByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if !product.IsActive() {
				return catalog.NewInactiveProductError(product.Name())
			}
			if !product.Stock().IsAvailable(item.Quantity) {
				return catalog.NewInsufficientStockError(product.Name(), product.Stock().Quantity(), item.Quantity)
			}
			loaded[i] = product
		}

		// Phase 2: commit every reservation.
		for i, item := range items {
			product := loaded[i]
			if err := product.ReserveStock(item.Quantity); err != nil {
				return err
			}
			if err := s.products.Save(ctx, product); err != nil {
				return err
			}
			uow.RegisterDirty(product)

			result = append(result, ReservedProductInfo{
				ProductID:        product.ID(),
				ProductName:      product.Name(),
				SKU:              product.SKU().Value(),
				ReservedQuantity: item.Quantity,
				RemainingStock:   product.Stock().Quantity(),
				UnitPrice:        product.Price().Amount(),
				Currency:         product.Price().Currency(),
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ReleaseStock reverses a prior reservation batch, increasing each product's
// stock by the released quantity. Idempotence per order is guaranteed by the
// caller: release is driven by the one-shot CANCELLED transition, so the same
// reservation is never released twice.
func (s *ApplicationService) ReleaseStock(ctx context.Context, items []ReserveStockItem) error {
	if len(items) == 0 {
		return nil
	}

	uow := s.uowFactory.New()
	return uow.Execute(ctx, func(ctx context.Context) error {
		for _, item := range items {
			product, err := s.products.FindByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if err := product.ReleaseStock(item.Quantity); err != nil {
				return err
			}
			if err := s.products.Save(ctx, product); err != nil {
				return err
			}
			uow.RegisterDirty(product)
		}
		return nil
	})
}
