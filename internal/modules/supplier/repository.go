package supplier

import "context"

// Repository defines data access for suppliers.
type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, id string) (*Supplier, error)
	GetByUserID(ctx context.Context, userID string) (*Supplier, error)
	Update(ctx context.Context, s *Supplier) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	ListAll(ctx context.Context) ([]*Supplier, error)
}
