package shipping

import "context"

// Repository defines data access for shipping rates.
type Repository interface {
	Create(ctx context.Context, rate *Rate) error
	ListBySupplier(ctx context.Context, supplierID string) ([]*Rate, error)
}
