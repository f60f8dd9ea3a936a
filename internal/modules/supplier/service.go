package supplier

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service defines supplier business logic.
type Service interface {
	// SetupProfile creates the supplier profile for a user, or updates it if one exists.
	SetupProfile(ctx context.Context, req SetupProfileRequest) (*Supplier, error)

	// GetSupplier retrieves a supplier by id.
	GetSupplier(ctx context.Context, id string) (*Supplier, error)

	// GetByUserID retrieves the supplier profile owned by a user.
	GetByUserID(ctx context.Context, userID string) (*Supplier, error)

	// UpdateStatus lets an admin validate or suspend a supplier account.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Supplier, error)

	// ListSuppliers returns all suppliers (admin view).
	ListSuppliers(ctx context.Context) ([]*Supplier, error)
}

type service struct {
	repo Repository
}

// NewService creates a new supplier service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetupProfile(ctx context.Context, req SetupProfileRequest) (*Supplier, error) {
	if req.ShopName == "" {
		return nil, fmt.Errorf("shop_name is required")
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user_id: %w", err)
	}

	method := PaymentMethod(strings.ToUpper(req.PaymentMethod))
	if method != "" && method != MethodWave && method != MethodOrangeMoney {
		return nil, fmt.Errorf("unsupported payment_method: %s", req.PaymentMethod)
	}

	existing, err := s.repo.GetByUserID(ctx, req.UserID)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if existing != nil {
		existing.ShopName = req.ShopName
		existing.Description = req.Description
		existing.PaymentMethod = method
		existing.PaymentPhoneNumber = req.PaymentPhoneNumber
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	sup := &Supplier{
		ID:                 uuid.New(),
		UserID:             userID,
		ShopName:           req.ShopName,
		Description:        req.Description,
		Status:             StatusPending,
		PaymentMethod:      method,
		PaymentPhoneNumber: req.PaymentPhoneNumber,
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *service) GetSupplier(ctx context.Context, id string) (*Supplier, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByUserID(ctx context.Context, userID string) (*Supplier, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Supplier, error) {
	status := Status(strings.ToUpper(req.Status))
	switch status {
	case StatusPending, StatusActive, StatusSuspended:
	default:
		return nil, fmt.Errorf("unknown supplier status: %s", req.Status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListSuppliers(ctx context.Context) ([]*Supplier, error) {
	return s.repo.ListAll(ctx)
}
