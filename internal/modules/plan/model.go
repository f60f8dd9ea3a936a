package plan

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCommissionRate applies to suppliers without an active subscription.
const DefaultCommissionRate = 15.0

// Plan is a subscription tier a supplier can pay for. The commission rate is
// the percentage the platform keeps on each sale under that plan.
type Plan struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Price          float64   `json:"price"`
	CommissionRate float64   `json:"commission_rate"`
	ProductLimit   int       `json:"product_limit"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SubscriptionStatus is the lifecycle state of a supplier subscription.
type SubscriptionStatus string

const (
	SubActive   SubscriptionStatus = "ACTIVE"
	SubCanceled SubscriptionStatus = "CANCELED"
	SubExpired  SubscriptionStatus = "EXPIRED"
)

// Subscription links a supplier to a plan for a billing period.
type Subscription struct {
	ID         uuid.UUID          `json:"id"`
	SupplierID uuid.UUID          `json:"supplier_id"`
	PlanID     uuid.UUID          `json:"plan_id"`
	PlanName   string             `json:"plan_name,omitempty"`
	Status     SubscriptionStatus `json:"status"`
	StartDate  time.Time          `json:"start_date"`
	EndDate    time.Time          `json:"end_date"`
	CreatedAt  time.Time          `json:"created_at"`
}

// SubscriptionPayment records the payment made for a subscription period.
type SubscriptionPayment struct {
	ID             uuid.UUID `json:"id"`
	SubscriptionID uuid.UUID `json:"subscription_id"`
	Amount         float64   `json:"amount"`
	PaymentMethod  string    `json:"payment_method"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// SubscribeRequest is the payload for a supplier subscribing to a plan.
type SubscribeRequest struct {
	UserID        string `json:"user_id"`
	PlanName      string `json:"plan_name"`
	PaymentMethod string `json:"payment_method"` // STRIPE | MOBILE_MONEY
}
