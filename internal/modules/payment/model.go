package payment

import (
	"time"

	"github.com/google/uuid"
)

// Payment is the buyer-side record of funds received for an order, created
// when the gateway confirms the checkout.
type Payment struct {
	ID            uuid.UUID `json:"id"`
	OrderID       uuid.UUID `json:"order_id"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"` // WAVE | OM
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id,omitempty"`
	PaydunyaToken string    `json:"paydunya_token,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// InitiatePaymentRequest is the payload to start a checkout payment.
type InitiatePaymentRequest struct {
	OrderID       string `json:"order_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerPhone string `json:"customer_phone"`
}

// CallbackPayload is the asynchronous notification PayDunya sends once the
// buyer has paid (or failed to).
type CallbackPayload struct {
	Status        string `json:"status"` // completed | failed
	Token         string `json:"token"`
	TransactionID string `json:"transaction_id"`
	PaymentMethod string `json:"payment_method,omitempty"`
	CustomData    struct {
		OrderID string `json:"order_id"`
	} `json:"custom_data"`
}
