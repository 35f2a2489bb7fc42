package handler

import (
	"github.com/supfront/commerce-system/internal/core/domain"
	"github.com/supfront/commerce-system/internal/core/ports"
)

// --- Request types ---

type shippingRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
	Method    string `json:"method"`
}

type billingAddressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

type paymentRequest struct {
	CardName       string                `json:"card_name"`
	CardNumber     string                `json:"card_number"`
	Expiry         string                `json:"expiry"`
	CVV            string                `json:"cvv"`
	BillingSame    bool                  `json:"billing_same"`
	BillingAddress billingAddressRequest `json:"billing_address"`
}

// --- Response types ---

type checkoutResponse struct {
	Stage       string          `json:"stage"`
	Shipping    shippingRequest `json:"shipping"`
	Totals      totalsResponse  `json:"totals"`
	OrderNumber string          `json:"order_number,omitempty"`
}

type placeOrderResponse struct {
	OrderNumber string         `json:"order_number"`
	Totals      totalsResponse `json:"totals"`
}

func toShippingInfo(req shippingRequest) domain.ShippingInfo {
	return domain.ShippingInfo{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		ZipCode:   req.ZipCode,
		Country:   req.Country,
		Method:    domain.ShippingMethod(req.Method),
	}
}

func toPaymentInfo(req paymentRequest) domain.PaymentInfo {
	return domain.PaymentInfo{
		CardName:    req.CardName,
		CardNumber:  req.CardNumber,
		Expiry:      req.Expiry,
		CVV:         req.CVV,
		BillingSame: req.BillingSame,
		BillingAddress: domain.BillingAddress{
			Street:  req.BillingAddress.Street,
			City:    req.BillingAddress.City,
			State:   req.BillingAddress.State,
			ZipCode: req.BillingAddress.ZipCode,
			Country: req.BillingAddress.Country,
		},
	}
}

func toCheckoutResponse(s ports.CheckoutSession) checkoutResponse {
	return checkoutResponse{
		Stage: string(s.Stage),
		Shipping: shippingRequest{
			FirstName: s.Shipping.FirstName,
			LastName:  s.Shipping.LastName,
			Email:     s.Shipping.Email,
			Phone:     s.Shipping.Phone,
			Street:    s.Shipping.Street,
			City:      s.Shipping.City,
			State:     s.Shipping.State,
			ZipCode:   s.Shipping.ZipCode,
			Country:   s.Shipping.Country,
			Method:    string(s.Shipping.Method),
		},
		Totals:      toTotalsResponse(s.Totals),
		OrderNumber: s.OrderNumber,
	}
}
