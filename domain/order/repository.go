package order

import "context"

// Repository is the persistence port for the Order aggregate.
type Repository interface {
	// Save persists an order and its items: INSERT when the aggregate is
	// new, otherwise an optimistic-lock UPDATE guarded by the version.
	Save(ctx context.Context, order *Order) error

	// FindByID loads an order aggregate by ID.
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindAll returns orders with skip/limit pagination, newest first.
	FindAll(ctx context.Context, skip, limit int) ([]*Order, error)

	// FindByCustomerID returns a customer's orders, newest first.
	FindByCustomerID(ctx context.Context, customerID string) ([]*Order, error)
}
