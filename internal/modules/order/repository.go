package order

import "context"

// Repository defines data access for orders.
type Repository interface {
	// CreateOrder persists the order header, its supplier orders, its items
	// and the matching stock decrements inside a single transaction. Either
	// all of it becomes visible or none of it does.
	CreateOrder(ctx context.Context, o *Order) error

	// GetOrderByID retrieves an order with its supplier orders and items.
	// Each item carries the owning supplier resolved through its product.
	GetOrderByID(ctx context.Context, id string) (*Order, error)

	// ListOrdersByUser returns all orders placed by a user, newest first.
	ListOrdersByUser(ctx context.Context, userID string) ([]*Order, error)

	// ConfirmOrder transitions the order PENDING -> CONFIRMED. It reports
	// whether this call performed the transition, which makes duplicate
	// payment notifications detectable.
	ConfirmOrder(ctx context.Context, id string) (bool, error)

	GetSupplierOrder(ctx context.Context, id string) (*SupplierOrder, error)
	UpdateSupplierOrderStatus(ctx context.Context, id string, status SupplierOrderStatus) error
}
