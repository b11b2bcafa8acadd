package memory

import (
	"context"

	"commerce/domain/catalog"
)

// ProductRepository in-memory implementation of the catalog repository.
type ProductRepository struct {
	store *Store
}

func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func productToDTO(p *catalog.Product, version int) catalog.ReconstructionDTO {
	return catalog.ReconstructionDTO{
		ID:          p.ID(),
		SKU:         p.SKU(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
		Stock:       p.Stock(),
		IsActive:    p.IsActive(),
		Version:     version,
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

// Save mirrors the MySQL repository: INSERT for new aggregates with a SKU
// uniqueness check, version-guarded UPDATE otherwise.
func (r *ProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	defer r.store.txGuard(ctx)()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if p.IsNew() {
		for _, existing := range r.store.products {
			if existing.SKU.Equals(p.SKU()) {
				return catalog.NewDuplicateSKUError(p.SKU().Value())
			}
		}
		r.store.products[p.ID()] = productToDTO(p, p.Version())
	} else {
		existing, ok := r.store.products[p.ID()]
		if !ok {
			return catalog.NewProductNotFoundError(p.ID())
		}
		if existing.Version != p.Version() {
			return catalog.NewConcurrentModificationError(p.ID())
		}
		r.store.products[p.ID()] = productToDTO(p, p.Version()+1)
		p.IncrementVersionForSave()
	}
	p.ClearNewFlag()
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	defer r.store.txGuard(ctx)()
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	dto, ok := r.store.products[id]
	if !ok {
		return nil, catalog.NewProductNotFoundError(id)
	}
	return catalog.RebuildFromDTO(dto), nil
}

func (r *ProductRepository) FindBySKU(ctx context.Context, sku catalog.SKU) (*catalog.Product, error) {
	defer r.store.txGuard(ctx)()
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, dto := range r.store.products {
		if dto.SKU.Equals(sku) {
			return catalog.RebuildFromDTO(dto), nil
		}
	}
	return nil, catalog.NewProductNotFoundError(sku.Value())
}

func (r *ProductRepository) FindAll(ctx context.Context, skip, limit int) ([]*catalog.Product, error) {
	defer r.store.txGuard(ctx)()
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	dtos := make([]catalog.ReconstructionDTO, 0, len(r.store.products))
	for _, dto := range r.store.products {
		dtos = append(dtos, dto)
	}
	sortByCreatedAtDesc(dtos, func(d catalog.ReconstructionDTO) int64 { return d.CreatedAt.UnixNano() })

	if skip >= len(dtos) {
		return []*catalog.Product{}, nil
	}
	dtos = dtos[skip:]
	if limit < len(dtos) {
		dtos = dtos[:limit]
	}

	products := make([]*catalog.Product, len(dtos))
	for i, dto := range dtos {
		products[i] = catalog.RebuildFromDTO(dto)
	}
	return products, nil
}

func (r *ProductRepository) ExistsBySKU(ctx context.Context, sku catalog.SKU) (bool, error) {
	defer r.store.txGuard(ctx)()
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, dto := range r.store.products {
		if dto.SKU.Equals(sku) {
			return true, nil
		}
	}
	return false, nil
}

var _ catalog.Repository = (*ProductRepository)(nil)
