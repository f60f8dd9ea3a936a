package settlement

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrAlreadyCompleted is returned when an operator retries a payout that
// already went through.
var ErrAlreadyCompleted = errors.New("payout already completed")

// PayoutStatus is the dispatch state of one supplier's payout.
type PayoutStatus string

const (
	PayoutPending   PayoutStatus = "PENDING"
	PayoutCompleted PayoutStatus = "COMPLETED"
	PayoutFailed    PayoutStatus = "FAILED"
)

// Payout is the recorded obligation to transfer one supplier's net proceeds
// for one order, and the outcome of dispatching it. Amounts are computed once
// at creation and never recalculated; a retry resends NetAmount as stored,
// even if the supplier's plan has changed since.
type Payout struct {
	ID             uuid.UUID    `json:"id"`
	OrderID        uuid.UUID    `json:"order_id"`
	SupplierID     uuid.UUID    `json:"supplier_id"`
	Subtotal       float64      `json:"subtotal"`
	CommissionRate float64      `json:"commission_rate"`
	Commission     float64      `json:"commission"`
	ShippingPrice  float64      `json:"shipping_price"`
	NetAmount      float64      `json:"net_amount"`
	PaymentMethod  string       `json:"payment_method,omitempty"`
	PhoneNumber    string       `json:"phone_number,omitempty"`
	Status         PayoutStatus `json:"status"`
	TransactionID  string       `json:"transaction_id,omitempty"`
	ErrorMessage   string       `json:"error_message,omitempty"`
	ProcessedAt    *time.Time   `json:"processed_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
