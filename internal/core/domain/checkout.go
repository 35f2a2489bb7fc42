package domain

import (
	"errors"
	"time"
)

// CheckoutStage represents the lifecycle state of a checkout session.
type CheckoutStage string

const (
	StageShipping   CheckoutStage = "shipping"
	StagePayment    CheckoutStage = "payment"
	StageReview     CheckoutStage = "review"
	StageSubmitting CheckoutStage = "submitting"
	StageComplete   CheckoutStage = "complete"
)

// validStageTransitions defines the allowed state machine transitions.
var validStageTransitions = map[CheckoutStage][]CheckoutStage{
	StageShipping:   {StagePayment},
	StagePayment:    {StageShipping, StageReview},
	StageReview:     {StagePayment, StageSubmitting},
	StageSubmitting: {StageReview, StageComplete},
}

var ErrInvalidTransition = errors.New("invalid checkout stage transition")
var ErrStageIncomplete = errors.New("required fields missing for this stage")
var ErrCheckoutNotStarted = errors.New("no active checkout session")
var ErrSubmissionInFlight = errors.New("order submission already in progress")
var ErrSubmissionFailed = errors.New("order submission failed")
var ErrInvalidShippingMethod = errors.New("unknown shipping method")

// CanTransitionTo reports whether a transition from the current stage to next is valid.
func (s CheckoutStage) CanTransitionTo(next CheckoutStage) bool {
	for _, allowed := range validStageTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ShippingInfo holds the shipping contact, address, and method for one checkout.
type ShippingInfo struct {
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Street    string         `json:"street"`
	City      string         `json:"city"`
	State     string         `json:"state"`
	ZipCode   string         `json:"zip_code"`
	Country   string         `json:"country"`
	Method    ShippingMethod `json:"method"`
}

// Complete reports whether every required shipping field is non-empty.
// Presence only; format validation is deliberately not performed.
func (i ShippingInfo) Complete() bool {
	return i.FirstName != "" &&
		i.LastName != "" &&
		i.Email != "" &&
		i.Phone != "" &&
		i.Street != "" &&
		i.City != "" &&
		i.State != "" &&
		i.ZipCode != "" &&
		i.Country != ""
}

// BillingAddress is the billing address captured with payment details.
type BillingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// PaymentInfo holds card details and the billing address for one checkout.
type PaymentInfo struct {
	CardName       string         `json:"card_name"`
	CardNumber     string         `json:"card_number"`
	Expiry         string         `json:"expiry"`
	CVV            string         `json:"cvv"`
	BillingSame    bool           `json:"billing_same"`
	BillingAddress BillingAddress `json:"billing_address"`
}

// Complete reports whether every required payment field is non-empty.
func (i PaymentInfo) Complete() bool {
	return i.CardName != "" &&
		i.CardNumber != "" &&
		i.Expiry != "" &&
		i.CVV != ""
}

// CheckoutDraft is the working state of one checkout session. It is scoped to
// the session and discarded on submission or cancellation, never persisted.
type CheckoutDraft struct {
	Stage       CheckoutStage
	Shipping    ShippingInfo
	Payment     PaymentInfo
	OrderNumber string
	StartedAt   time.Time
}
