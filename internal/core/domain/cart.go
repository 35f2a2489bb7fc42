package domain

import (
	"errors"
	"math"
)

// Pricing rules applied when totals are computed.
const (
	TaxRate               = 0.07
	FreeShippingThreshold = 100.0
	StandardShippingFee   = 5.99
	ExpressShippingFee    = 15.99
)

var ErrItemNotFound = errors.New("cart item not found")
var ErrProductNotFound = errors.New("product not found")
var ErrInvalidQuantity = errors.New("quantity must be at least 1")
var ErrPromoRejected = errors.New("promo code not recognized")
var ErrCartEmpty = errors.New("cart is empty")

// ShippingMethod selects the shipping fee rule during checkout.
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

// Valid reports whether m is a known shipping method.
func (m ShippingMethod) Valid() bool {
	return m == ShippingStandard || m == ShippingExpress
}

// CartItem is a single line in the cart. Quantity is always >= 1 while the
// line exists; a line is removed, never kept at zero.
type CartItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"image_url"`
}

// PromoState holds the single active promo code. The discount amount is frozen
// at the value computed when the code was applied; it is not re-derived when
// the subtotal later changes.
type PromoState struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
	Applied  bool    `json:"applied"`
}

// CartState is the cart partition's full state.
type CartState struct {
	Items []CartItem `json:"items"`
	Promo PromoState `json:"promo"`
}

// Totals is the derived order pricing. Never stored; recomputed on every read.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// Subtotal returns the sum of unit price times quantity across all lines,
// rounded to cents.
func (s CartState) Subtotal() float64 {
	var sum float64
	for _, it := range s.Items {
		sum += it.UnitPrice * float64(it.Quantity)
	}
	return RoundCents(sum)
}

// ShippingFee returns the fee for the given method. Standard shipping is free
// above FreeShippingThreshold; express is a flat fee regardless of order value.
func ShippingFee(method ShippingMethod, subtotal float64) float64 {
	if method == ShippingExpress {
		return ExpressShippingFee
	}
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return StandardShippingFee
}

// ComputeTotals derives order totals from the cart state and shipping method.
// The total is clamped at zero when the frozen discount exceeds the rest of
// the order value.
func (s CartState) ComputeTotals(method ShippingMethod) Totals {
	subtotal := s.Subtotal()
	shipping := ShippingFee(method, subtotal)
	tax := RoundCents(subtotal * TaxRate)
	discount := RoundCents(s.Promo.Discount)

	total := RoundCents(subtotal + shipping + tax - discount)
	if total < 0 {
		total = 0
	}

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Discount: discount,
		Total:    total,
	}
}

// Totals derives order totals using the standard shipping rule.
func (s CartState) Totals() Totals {
	return s.ComputeTotals(ShippingStandard)
}

// FindItem returns the index of the line with the given id, or -1.
func (s CartState) FindItem(id string) int {
	for i, it := range s.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// RoundCents rounds a monetary amount to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
