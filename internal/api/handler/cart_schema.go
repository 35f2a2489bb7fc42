package handler

import (
	"github.com/supfront/commerce-system/internal/core/domain"
	"github.com/supfront/commerce-system/internal/core/ports"
)

// --- Request types ---

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

type applyPromoRequest struct {
	Code string `json:"code" validate:"required"`
}

// --- Response types ---

type cartItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"image_url"`
}

type promoResponse struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
	Applied  bool    `json:"applied"`
}

type totalsResponse struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

type cartResponse struct {
	Items  []cartItemResponse `json:"items"`
	Promo  promoResponse      `json:"promo"`
	Totals totalsResponse     `json:"totals"`
}

func toCartResponse(view ports.CartView) cartResponse {
	items := make([]cartItemResponse, 0, len(view.Items))
	for _, it := range view.Items {
		items = append(items, cartItemResponse{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			ImageURL:    it.ImageURL,
		})
	}
	return cartResponse{
		Items: items,
		Promo: promoResponse{
			Code:     view.Promo.Code,
			Discount: view.Promo.Discount,
			Applied:  view.Promo.Applied,
		},
		Totals: toTotalsResponse(view.Totals),
	}
}

func toTotalsResponse(t domain.Totals) totalsResponse {
	return totalsResponse{
		Subtotal: t.Subtotal,
		Shipping: t.Shipping,
		Tax:      t.Tax,
		Discount: t.Discount,
		Total:    t.Total,
	}
}
