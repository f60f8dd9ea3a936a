package shipping

import (
	"time"

	"github.com/google/uuid"
)

// Rate is the price a supplier charges to ship into one zone.
// @Description Shipping rate information
// @Description with id, supplier_id, zone, price, delay, created_at, and updated_at
type Rate struct {
	ID         uuid.UUID `json:"id"`
	SupplierID uuid.UUID `json:"supplier_id"`
	Zone       string    `json:"zone"`
	Price      float64   `json:"price"`
	Delay      string    `json:"delay,omitempty"` // e.g. "24-48h"
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AddRateRequest is the payload for a supplier publishing a new shipping rate.
type AddRateRequest struct {
	UserID string  `json:"user_id"`
	Zone   string  `json:"zone"`
	Price  float64 `json:"price"`
	Delay  string  `json:"delay,omitempty"`
}
