package supplier

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the validation state of a supplier account.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

// PaymentMethod is the mobile-money network a supplier receives payouts on.
type PaymentMethod string

const (
	MethodWave        PaymentMethod = "WAVE"
	MethodOrangeMoney PaymentMethod = "OM"
)

// Supplier represents a seller with a shop on the marketplace.
// @Description Supplier information
// @Description with id, user_id, shop_name, status, payout destination, created_at, and updated_at
type Supplier struct {
	ID                 uuid.UUID     `json:"id"`
	UserID             uuid.UUID     `json:"user_id"`
	ShopName           string        `json:"shop_name"`
	Description        string        `json:"description,omitempty"`
	Status             Status        `json:"status"`
	PaymentMethod      PaymentMethod `json:"payment_method,omitempty"`
	PaymentPhoneNumber string        `json:"payment_phone_number,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// HasPayoutDestination reports whether the supplier configured where to
// receive money. A supplier without one still sells; their payouts simply
// stay PENDING until an operator fills the gap.
func (s *Supplier) HasPayoutDestination() bool {
	return s.PaymentMethod != "" && s.PaymentPhoneNumber != ""
}

// SetupProfileRequest is the payload for creating or updating a supplier profile.
type SetupProfileRequest struct {
	UserID             string `json:"user_id"`
	ShopName           string `json:"shop_name"`
	Description        string `json:"description,omitempty"`
	PaymentMethod      string `json:"payment_method,omitempty"`
	PaymentPhoneNumber string `json:"payment_phone_number,omitempty"`
}

// UpdateStatusRequest is the payload for an admin validating or suspending a supplier.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
