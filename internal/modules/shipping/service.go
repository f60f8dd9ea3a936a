package shipping

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/supplier"
)

// Service defines shipping rate business logic.
type Service interface {
	// AddRate publishes a new per-zone rate for the supplier owned by the given user.
	AddRate(ctx context.Context, req AddRateRequest) (*Rate, error)

	// ListRates returns a supplier's published rates.
	ListRates(ctx context.Context, supplierID string) ([]*Rate, error)
}

type service struct {
	repo      Repository
	suppliers supplier.Repository
}

// NewService creates a new shipping service.
func NewService(repo Repository, suppliers supplier.Repository) Service {
	return &service{repo: repo, suppliers: suppliers}
}

func (s *service) AddRate(ctx context.Context, req AddRateRequest) (*Rate, error) {
	if strings.TrimSpace(req.Zone) == "" {
		return nil, fmt.Errorf("zone is required")
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price must not be negative")
	}

	sup, err := s.suppliers.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("supplier profile not found: %w", err)
	}

	rate := &Rate{
		ID:         uuid.New(),
		SupplierID: sup.ID,
		Zone:       strings.TrimSpace(req.Zone),
		Price:      req.Price,
		Delay:      req.Delay,
	}
	if err := s.repo.Create(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

func (s *service) ListRates(ctx context.Context, supplierID string) ([]*Rate, error) {
	return s.repo.ListBySupplier(ctx, supplierID)
}
