package catalog

import "context"

// Repository is the persistence port for the Product aggregate.
// Implemented by the persistence layer; the domain and application layers
// depend only on this interface.
type Repository interface {
	// Save persists a product: INSERT when the aggregate is new, otherwise
	// an optimistic-lock UPDATE guarded by the aggregate's version.
	// Returns ErrConcurrentModification when another transaction won.
	Save(ctx context.Context, product *Product) error

	// FindByID loads a product aggregate by ID.
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindBySKU loads a product aggregate by its SKU.
	FindBySKU(ctx context.Context, sku SKU) (*Product, error)

	// FindAll returns products with skip/limit pagination.
	FindAll(ctx context.Context, skip, limit int) ([]*Product, error)

	// ExistsBySKU reports whether a product with the given SKU exists.
	ExistsBySKU(ctx context.Context, sku SKU) (bool, error)
}
