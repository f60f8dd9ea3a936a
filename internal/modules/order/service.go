package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Notifier is the fire-and-forget side-effect egress used after a checkout
// commits. Implementations must swallow their own failures.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message string)
}

// Service defines checkout and order business logic.
type Service interface {
	// Checkout validates the cart, prices it per supplier and commits the
	// whole order atomically. Nothing is persisted when it returns an error.
	Checkout(ctx context.Context, req CheckoutRequest) (*Order, error)

	// GetOrder retrieves a full order with supplier orders and items.
	GetOrder(ctx context.Context, id string) (*Order, error)

	// ListUserOrders returns the orders a user has placed.
	ListUserOrders(ctx context.Context, userID string) ([]*Order, error)

	// UpdateSupplierOrderStatus advances one supplier's fulfilment status.
	UpdateSupplierOrderStatus(ctx context.Context, id string, req UpdateSupplierOrderStatusRequest) (*SupplierOrder, error)
}

type service struct {
	repo     Repository
	products ProductSource
	rates    RateSource
	notifier Notifier
}

// NewService creates a new order service.
func NewService(repo Repository, products ProductSource, rates RateSource, notifier Notifier) Service {
	return &service{repo: repo, products: products, rates: rates, notifier: notifier}
}

// validSupplierOrderTransitions defines the forward-only fulfilment state machine.
var validSupplierOrderTransitions = map[SupplierOrderStatus][]SupplierOrderStatus{
	SupplierOrderPending:   {SupplierOrderPreparing, SupplierOrderCancelled},
	SupplierOrderPreparing: {SupplierOrderShipped, SupplierOrderCancelled},
	SupplierOrderShipped:   {SupplierOrderDelivered},
	SupplierOrderDelivered: {},
	SupplierOrderCancelled: {},
}

func (s *service) Checkout(ctx context.Context, req CheckoutRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user_id: %w", err)
	}

	plan, err := compose(ctx, s.products, s.rates, req.Items)
	if err != nil {
		return nil, err
	}

	o := &Order{
		ID:     uuid.New(),
		UserID: userID,
		Total:  plan.Total,
		Status: StatusPending,
	}
	if req.CustomerInfo != nil {
		o.CustomerFirstName = req.CustomerInfo.FirstName
		o.CustomerLastName = req.CustomerInfo.LastName
		o.CustomerPhoneNumber = req.CustomerInfo.PhoneNumber
		o.CustomerAddress = req.CustomerInfo.Address
	}

	for _, g := range plan.Groups {
		o.SupplierOrders = append(o.SupplierOrders, &SupplierOrder{
			ID:            uuid.New(),
			OrderID:       o.ID,
			SupplierID:    g.SupplierID,
			ShippingPrice: g.ShippingPrice,
			Status:        SupplierOrderPending,
		})
		for _, item := range g.Items {
			item.OrderID = o.ID
			o.Items = append(o.Items, item)
		}
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, o.UserID, "Commande reçue",
			fmt.Sprintf("Votre commande de %.0f FCFA a bien été enregistrée.", o.Total))
	}

	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *service) ListUserOrders(ctx context.Context, userID string) ([]*Order, error) {
	return s.repo.ListOrdersByUser(ctx, userID)
}

func (s *service) UpdateSupplierOrderStatus(ctx context.Context, id string, req UpdateSupplierOrderStatusRequest) (*SupplierOrder, error) {
	so, err := s.repo.GetSupplierOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("supplier order not found: %w", err)
	}

	newStatus := SupplierOrderStatus(strings.ToUpper(req.Status))
	allowed := validSupplierOrderTransitions[so.Status]
	valid := false
	for _, st := range allowed {
		if st == newStatus {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("cannot transition supplier order from %s to %s", so.Status, newStatus)
	}

	if err := s.repo.UpdateSupplierOrderStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	so.Status = newStatus
	return so, nil
}
