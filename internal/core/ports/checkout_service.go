package ports

import (
	"context"

	"github.com/supfront/commerce-system/internal/core/domain"
)

// CheckoutSession is the read-only view of the active checkout session.
type CheckoutSession struct {
	Stage       domain.CheckoutStage
	Shipping    domain.ShippingInfo
	Payment     domain.PaymentInfo
	Totals      domain.Totals
	OrderNumber string
}

// PlaceOrderResult is returned by a successful order submission.
type PlaceOrderResult struct {
	OrderNumber string
	Totals      domain.Totals
}

// CheckoutService drives the three-stage checkout wizard.
type CheckoutService interface {
	// Start opens a fresh checkout session at the shipping stage, discarding
	// any prior draft. An empty cart is rejected with domain.ErrCartEmpty.
	Start(ctx context.Context) (CheckoutSession, error)

	// Session returns the current session, or domain.ErrCheckoutNotStarted.
	Session(ctx context.Context) (CheckoutSession, error)

	// UpdateShipping replaces the draft's shipping info. Only valid at the
	// shipping stage.
	UpdateShipping(ctx context.Context, info domain.ShippingInfo) (CheckoutSession, error)

	// UpdatePayment replaces the draft's payment info. Only valid at the
	// payment stage.
	UpdatePayment(ctx context.Context, info domain.PaymentInfo) (CheckoutSession, error)

	// Next advances shipping→payment or payment→review, gated on the current
	// stage's guard. A failed guard returns domain.ErrStageIncomplete with the
	// stage unchanged.
	Next(ctx context.Context) (CheckoutSession, error)

	// Back moves payment→shipping or review→payment.
	Back(ctx context.Context) (CheckoutSession, error)

	// PlaceOrder submits the order. Only callable from review; a second call
	// while submitting returns domain.ErrSubmissionInFlight. Failure restores
	// the review stage and returns domain.ErrSubmissionFailed wrapping the
	// cause. Success clears the cart and completes the session.
	PlaceOrder(ctx context.Context) (PlaceOrderResult, error)
}

// SubmitOrderInput is handed to the external order-submission collaborator.
type SubmitOrderInput struct {
	UserID   string
	Items    []domain.CartItem
	Shipping domain.ShippingInfo
	Payment  domain.PaymentInfo
	Totals   domain.Totals
}

// OrderSubmitter is the external order-submission collaborator. It returns
// the customer-facing order number or a failure; once a submission starts it
// always resolves, never orphans.
type OrderSubmitter interface {
	Submit(ctx context.Context, input SubmitOrderInput) (string, error)
}
