package payment

import (
	"context"
	"fmt"

	"github.com/mfn0002-png/terangaFil-backend/internal/modules/order"
)

// OrderSource reads orders when initiating a checkout payment.
type OrderSource interface {
	GetOrderByID(ctx context.Context, id string) (*order.Order, error)
}

// Service defines buyer-side payment business logic.
type Service interface {
	// Initiate creates a hosted payment page for an existing order. The
	// charged amount is the stored order total, never the caller's figure.
	Initiate(ctx context.Context, req InitiatePaymentRequest) (*CheckoutSession, error)

	// Verify queries the gateway for an invoice's status.
	Verify(ctx context.Context, token string) (*VerifyResult, error)

	// ListOrderPayments returns the payments recorded against an order.
	ListOrderPayments(ctx context.Context, orderID string) ([]*Payment, error)
}

type service struct {
	repo    Repository
	orders  OrderSource
	gateway Gateway
}

// NewService creates a new payment service.
func NewService(repo Repository, orders OrderSource, gateway Gateway) Service {
	return &service{repo: repo, orders: orders, gateway: gateway}
}

func (s *service) Initiate(ctx context.Context, req InitiatePaymentRequest) (*CheckoutSession, error) {
	if req.OrderID == "" {
		return nil, fmt.Errorf("order_id is required")
	}

	o, err := s.orders.GetOrderByID(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}

	session, err := s.gateway.InitiateCheckout(ctx, &CheckoutRequest{
		OrderID:       o.ID.String(),
		Amount:        o.Total,
		Description:   fmt.Sprintf("Commande #%s - Teranga Fil", o.ID),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initiate payment: %w", err)
	}
	return session, nil
}

func (s *service) Verify(ctx context.Context, token string) (*VerifyResult, error) {
	return s.gateway.VerifyCheckout(ctx, token)
}

func (s *service) ListOrderPayments(ctx context.Context, orderID string) ([]*Payment, error) {
	return s.repo.ListByOrder(ctx, orderID)
}
