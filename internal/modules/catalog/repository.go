package catalog

import "context"

// Repository defines data access for products.
type Repository interface {
	Create(ctx context.Context, p *Product) error

	// GetProduct returns the current product row: price, stock and owning supplier.
	GetProduct(ctx context.Context, id string) (*Product, error)

	ListBySupplier(ctx context.Context, supplierID string) ([]*Product, error)
	CountBySupplier(ctx context.Context, supplierID string) (int, error)
}
