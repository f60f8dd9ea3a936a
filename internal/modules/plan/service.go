package plan

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/supplier"
)

// Service defines subscription plan business logic.
type Service interface {
	// ListPlans returns all available plans.
	ListPlans(ctx context.Context) ([]*Plan, error)

	// Subscribe replaces the supplier's active subscription with a new 30-day
	// subscription to the named plan and records the subscription payment.
	Subscribe(ctx context.Context, req SubscribeRequest) (*Subscription, error)

	// ActiveCommissionRate returns the commission rate of the supplier's
	// active plan, or the platform default when there is none.
	ActiveCommissionRate(ctx context.Context, supplierID string) (float64, error)
}

type service struct {
	repo      Repository
	suppliers supplier.Repository
}

// NewService creates a new plan service.
func NewService(repo Repository, suppliers supplier.Repository) Service {
	return &service{repo: repo, suppliers: suppliers}
}

func (s *service) ListPlans(ctx context.Context) ([]*Plan, error) {
	return s.repo.ListPlans(ctx)
}

func (s *service) Subscribe(ctx context.Context, req SubscribeRequest) (*Subscription, error) {
	sup, err := s.suppliers.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("supplier profile not found: %w", err)
	}

	p, err := s.repo.GetPlanByName(ctx, req.PlanName)
	if err != nil {
		return nil, fmt.Errorf("plan %s not found", req.PlanName)
	}

	if err := s.repo.CancelActiveSubscriptions(ctx, sup.ID.String()); err != nil {
		return nil, err
	}

	now := time.Now()
	sub := &Subscription{
		ID:         uuid.New(),
		SupplierID: sup.ID,
		PlanID:     p.ID,
		PlanName:   p.Name,
		Status:     SubActive,
		StartDate:  now,
		EndDate:    now.AddDate(0, 0, 30),
	}
	if err := s.repo.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	payment := &SubscriptionPayment{
		ID:             uuid.New(),
		SubscriptionID: sub.ID,
		Amount:         p.Price,
		PaymentMethod:  req.PaymentMethod,
		Status:         "SUCCESS",
	}
	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	return sub, nil
}

func (s *service) ActiveCommissionRate(ctx context.Context, supplierID string) (float64, error) {
	p, err := s.repo.GetActivePlan(ctx, supplierID)
	if err == sql.ErrNoRows {
		return DefaultCommissionRate, nil
	}
	if err != nil {
		return 0, err
	}
	return p.CommissionRate, nil
}
