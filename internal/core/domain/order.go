package domain

import (
	"errors"
	"time"
)

var ErrOrderNotFound = errors.New("order not found")

// Order is the record written after a successful checkout submission.
// OrderNumber is the customer-facing identifier (ORD-XXXX-YYYY); ID is the
// internal storage identifier.
type Order struct {
	ID          string       `json:"id"`
	OrderNumber string       `json:"order_number"`
	UserID      string       `json:"user_id"`
	Items       []CartItem   `json:"items"`
	Shipping    ShippingInfo `json:"shipping"`
	Totals      Totals       `json:"totals"`
	PlacedAt    time.Time    `json:"placed_at"`
}
