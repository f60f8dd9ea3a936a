package payment

import "context"

// Repository defines data access for payment records.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	ListByOrder(ctx context.Context, orderID string) ([]*Payment, error)
}
