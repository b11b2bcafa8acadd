/*
Package catalog - Catalog application layer.

The application service orchestrates catalog use cases: it builds value
objects from raw input, calls aggregate methods, and persists through the
repository inside a unit of work. Domain errors are not caught here; they
propagate to the API layer for mapping.
*/
package catalog

import (
	"context"
	"errors"

	"commerce/domain/catalog"
	"commerce/domain/shared"
)

// ApplicationService coordinates catalog business processes. Each write use
// case mints its own unit of work from the factory, so concurrent requests
// never share transaction state.
type ApplicationService struct {
	products   catalog.Repository
	uowFactory shared.UnitOfWorkFactory
}

// NewApplicationService creates the catalog application service.
func NewApplicationService(products catalog.Repository, uowFactory shared.UnitOfWorkFactory) *ApplicationService {
	return &ApplicationService{products: products, uowFactory: uowFactory}
}

// CreateProduct creates a catalog product.
// Application rule: the SKU must be unique across the catalog.
func (s *ApplicationService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	sku, err := catalog.NewSKU(req.SKU)
	if err != nil {
		return nil, err
	}
	price, err := shared.NewMoney(req.Price, req.Currency)
	if err != nil {
		return nil, err
	}
	stock, err := catalog.NewStock(req.InitialStock)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.New()
	var product *catalog.Product
	err = uow.Execute(ctx, func(ctx context.Context) error {
		exists, err := s.products.ExistsBySKU(ctx, *sku)
		if err != nil {
			return err
		}
		if exists {
			return catalog.NewDuplicateSKUError(sku.Value())
		}

		product, err = catalog.NewProduct(*sku, req.Name, req.Description, *price, *stock)
		if err != nil {
			return err
		}

		if err := s.products.Save(ctx, product); err != nil {
			return err
		}
		uow.RegisterNew(product)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toProductResponse(product), nil
}

// GetProduct loads one product by ID.
func (s *ApplicationService) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetProductBySKU loads one product by SKU.
func (s *ApplicationService) GetProductBySKU(ctx context.Context, rawSKU string) (*ProductResponse, error) {
	sku, err := catalog.NewSKU(rawSKU)
	if err != nil {
		return nil, err
	}
	product, err := s.products.FindBySKU(ctx, *sku)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// ListProducts returns a page of products.
func (s *ApplicationService) ListProducts(ctx context.Context, skip, limit int) ([]*ProductResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	products, err := s.products.FindAll(ctx, skip, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = toProductResponse(p)
	}
	return responses, nil
}

// ProductExists reports whether a product with the given ID exists.
func (s *ApplicationService) ProductExists(ctx context.Context, id string) (bool, error) {
	_, err := s.products.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// UpdatePrice applies a price change, subject to the 50% change cap.
func (s *ApplicationService) UpdatePrice(ctx context.Context, id string, req UpdatePriceRequest) (*ProductResponse, error) {
	price, err := shared.NewMoney(req.Price, req.Currency)
	if err != nil {
		return nil, err
	}

	return s.mutateProduct(ctx, id, func(p *catalog.Product) error {
		return p.UpdatePrice(*price)
	})
}

// ReplenishStock increases a product's available stock.
func (s *ApplicationService) ReplenishStock(ctx context.Context, id string, req ReplenishStockRequest) (*ProductResponse, error) {
	return s.mutateProduct(ctx, id, func(p *catalog.Product) error {
		return p.ReplenishStock(req.Quantity)
	})
}

// UpdateDetails changes name and/or description.
func (s *ApplicationService) UpdateDetails(ctx context.Context, id string, req UpdateDetailsRequest) (*ProductResponse, error) {
	return s.mutateProduct(ctx, id, func(p *catalog.Product) error {
		return p.UpdateDetails(req.Name, req.Description)
	})
}

// ActivateProduct makes a product reservable again.
func (s *ApplicationService) ActivateProduct(ctx context.Context, id string) (*ProductResponse, error) {
	return s.mutateProduct(ctx, id, func(p *catalog.Product) error {
		p.Activate()
		return nil
	})
}

// DeactivateProduct blocks future reservations of a product.
func (s *ApplicationService) DeactivateProduct(ctx context.Context, id string) (*ProductResponse, error) {
	return s.mutateProduct(ctx, id, func(p *catalog.Product) error {
		p.Deactivate()
		return nil
	})
}

// mutateProduct runs a load-mutate-save cycle inside the unit of work.
func (s *ApplicationService) mutateProduct(ctx context.Context, id string, mutate func(*catalog.Product) error) (*ProductResponse, error) {
	uow := s.uowFactory.New()
	var product *catalog.Product
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		product, err = s.products.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := mutate(product); err != nil {
			return err
		}
		if err := s.products.Save(ctx, product); err != nil {
			return err
		}
		uow.RegisterDirty(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

func isNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}
