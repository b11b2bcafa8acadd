package memory

import (
	"context"

	"commerce/domain/order"
)

// OrderRepository in-memory implementation of the order repository.
type OrderRepository struct {
	store *Store
}

func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

func orderToDTO(o *order.Order, version int) order.ReconstructionDTO {
	return order.ReconstructionDTO{
		ID:              o.ID(),
		Customer:        o.Customer(),
		Items:           o.Items(),
		ShippingAddress: o.ShippingAddress(),
		Status:          o.Status(),
		TotalAmount:     o.TotalAmount(),
		Version:         version,
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		ConfirmedAt:     o.ConfirmedAt(),
	}
}

// Save mirrors the MySQL repository: INSERT for new aggregates,
// version-guarded UPDATE otherwise.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	defer r.store.txGuard(ctx)()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if o.IsNew() {
		r.store.orders[o.ID()] = orderToDTO(o, o.Version())
	} else {
		existing, ok := r.store.orders[o.ID()]
		if !ok {
			return order.NewOrderNotFoundError(o.ID())
		}
		if existing.Version != o.Version() {
			return order.NewConcurrentModificationError(o.ID())
		}
		r.store.orders[o.ID()] = orderToDTO(o, o.Version()+1)
		o.IncrementVersionForSave()
	}
	o.ClearNewFlag()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	defer r.store.txGuard(ctx)()
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	dto, ok := r.store.orders[id]
	if !ok {
		return nil, order.NewOrderNotFoundError(id)
	}
	return order.RebuildFromDTO(dto), nil
}

func (r *OrderRepository) FindAll(ctx context.Context, skip, limit int) ([]*order.Order, error) {
	defer r.store.txGuard(ctx)()
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	dtos := make([]order.ReconstructionDTO, 0, len(r.store.orders))
	for _, dto := range r.store.orders {
		dtos = append(dtos, dto)
	}
	sortByCreatedAtDesc(dtos, func(d order.ReconstructionDTO) int64 { return d.CreatedAt.UnixNano() })

	if skip >= len(dtos) {
		return []*order.Order{}, nil
	}
	dtos = dtos[skip:]
	if limit < len(dtos) {
		dtos = dtos[:limit]
	}

	orders := make([]*order.Order, len(dtos))
	for i, dto := range dtos {
		orders[i] = order.RebuildFromDTO(dto)
	}
	return orders, nil
}

func (r *OrderRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*order.Order, error) {
	defer r.store.txGuard(ctx)()
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	dtos := make([]order.ReconstructionDTO, 0)
	for _, dto := range r.store.orders {
		if dto.Customer.CustomerID() == customerID {
			dtos = append(dtos, dto)
		}
	}
	sortByCreatedAtDesc(dtos, func(d order.ReconstructionDTO) int64 { return d.CreatedAt.UnixNano() })

	orders := make([]*order.Order, len(dtos))
	for i, dto := range dtos {
		orders[i] = order.RebuildFromDTO(dto)
	}
	return orders, nil
}

var _ order.Repository = (*OrderRepository)(nil)
