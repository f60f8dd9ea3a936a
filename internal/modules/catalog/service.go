package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/plan"
	"github.com/mfn0002-png/terangaFil-backend/internal/modules/supplier"
)

// Free-tier suppliers can list this many products.
const freeProductLimit = 5

// Service defines product catalog business logic.
type Service interface {
	// AddProduct lists a new product, enforcing the supplier's plan product limit.
	AddProduct(ctx context.Context, req AddProductRequest) (*Product, error)

	GetProduct(ctx context.Context, id string) (*Product, error)
	ListSupplierProducts(ctx context.Context, supplierID string) ([]*Product, error)
}

type service struct {
	repo      Repository
	suppliers supplier.Repository
	plans     plan.Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository, suppliers supplier.Repository, plans plan.Repository) Service {
	return &service{repo: repo, suppliers: suppliers, plans: plans}
}

func (s *service) AddProduct(ctx context.Context, req AddProductRequest) (*Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("price must be greater than 0")
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("stock must not be negative")
	}

	sup, err := s.suppliers.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("supplier profile not found: %w", err)
	}

	limit := freeProductLimit
	if p, err := s.plans.GetActivePlan(ctx, sup.ID.String()); err == nil {
		limit = p.ProductLimit
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	count, err := s.repo.CountBySupplier(ctx, sup.ID.String())
	if err != nil {
		return nil, err
	}
	if count >= limit {
		return nil, fmt.Errorf("product limit reached for current plan (%d)", limit)
	}

	p := &Product{
		ID:          uuid.New(),
		SupplierID:  sup.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *service) ListSupplierProducts(ctx context.Context, supplierID string) ([]*Product, error) {
	return s.repo.ListBySupplier(ctx, supplierID)
}
