package plan

import "context"

// Repository defines data access for plans and supplier subscriptions.
type Repository interface {
	ListPlans(ctx context.Context) ([]*Plan, error)
	GetPlanByName(ctx context.Context, name string) (*Plan, error)

	// GetActivePlan returns the plan behind the supplier's most recent ACTIVE
	// subscription, or sql.ErrNoRows if the supplier has none.
	GetActivePlan(ctx context.Context, supplierID string) (*Plan, error)

	CancelActiveSubscriptions(ctx context.Context, supplierID string) error
	CreateSubscription(ctx context.Context, sub *Subscription) error
	CreatePayment(ctx context.Context, payment *SubscriptionPayment) error
}
