package order

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of an order. Transitions only move
// forward: PENDING to CONFIRMED or CANCELLED, never back.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// SupplierOrderStatus is the fulfilment state of one supplier's portion of an
// order, advanced by the supplier after payment.
type SupplierOrderStatus string

const (
	SupplierOrderPending   SupplierOrderStatus = "PENDING"
	SupplierOrderPreparing SupplierOrderStatus = "PREPARING"
	SupplierOrderShipped   SupplierOrderStatus = "SHIPPED"
	SupplierOrderDelivered SupplierOrderStatus = "DELIVERED"
	SupplierOrderCancelled SupplierOrderStatus = "CANCELLED"
)

// Order is the aggregate created at checkout, spanning every supplier in the cart.
type Order struct {
	ID                  uuid.UUID        `json:"id"`
	UserID              uuid.UUID        `json:"user_id"`
	Total               float64          `json:"total"`
	Status              Status           `json:"status"`
	CustomerFirstName   string           `json:"customer_first_name,omitempty"`
	CustomerLastName    string           `json:"customer_last_name,omitempty"`
	CustomerPhoneNumber string           `json:"customer_phone_number,omitempty"`
	CustomerAddress     string           `json:"customer_address,omitempty"`
	SupplierOrders      []*SupplierOrder `json:"supplier_orders,omitempty"`
	Items               []*Item          `json:"items,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// SupplierOrder is the portion of an order belonging to one supplier, with
// that supplier's shipping cost. It anchors the later payout.
type SupplierOrder struct {
	ID            uuid.UUID           `json:"id"`
	OrderID       uuid.UUID           `json:"order_id"`
	SupplierID    uuid.UUID           `json:"supplier_id"`
	ShippingPrice float64             `json:"shipping_price"`
	Status        SupplierOrderStatus `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// Item is a single order line. Price is a snapshot of the product price at
// checkout time and never changes afterwards.
type Item struct {
	ID           uuid.UUID `json:"id"`
	OrderID      uuid.UUID `json:"order_id"`
	ProductID    uuid.UUID `json:"product_id"`
	SupplierID   uuid.UUID `json:"supplier_id,omitempty"` // resolved via the product on reads
	Quantity     int       `json:"quantity"`
	Price        float64   `json:"price"`
	Color        string    `json:"color,omitempty"`
	Size         string    `json:"size,omitempty"`
	ShippingZone string    `json:"shipping_zone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// CartItem describes one requested line of a checkout.
type CartItem struct {
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"`
	Color        string `json:"color,omitempty"`
	Size         string `json:"size,omitempty"`
	ShippingZone string `json:"shipping_zone,omitempty"`
}

// CustomerInfo is the delivery contact captured on the order.
type CustomerInfo struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// CheckoutRequest is the payload for placing a new order.
type CheckoutRequest struct {
	UserID       string        `json:"user_id"`
	Items        []CartItem    `json:"items"`
	CustomerInfo *CustomerInfo `json:"customer_info,omitempty"`
}

// UpdateSupplierOrderStatusRequest advances one supplier order's fulfilment status.
type UpdateSupplierOrderStatusRequest struct {
	Status string `json:"status"`
}
