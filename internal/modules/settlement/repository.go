package settlement

import "context"

// Repository defines data access for payouts. Payouts are never deleted;
// only their dispatch outcome changes.
type Repository interface {
	Create(ctx context.Context, p *Payout) error
	GetByID(ctx context.Context, id string) (*Payout, error)
	ListByOrder(ctx context.Context, orderID string) ([]*Payout, error)
	ListAll(ctx context.Context) ([]*Payout, error)

	// MarkCompleted records a successful dispatch with its external
	// transaction id and stamps processed_at.
	MarkCompleted(ctx context.Context, id string, transactionID string) error

	// MarkFailed records a failed dispatch with the gateway's reason.
	MarkFailed(ctx context.Context, id string, errorMessage string) error

	// UpdateDestination fills the payout destination in, for payouts created
	// while the supplier had none configured.
	UpdateDestination(ctx context.Context, id, method, phoneNumber string) error
}
