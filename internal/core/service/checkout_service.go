package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/supfront/commerce-system/internal/api/metrics"
	"github.com/supfront/commerce-system/internal/core/domain"
	"github.com/supfront/commerce-system/internal/core/ports"
	"github.com/supfront/commerce-system/internal/store"
)

// CheckoutService drives the checkout wizard over a single session draft.
// The draft lives in memory only; it is created by Start and discarded on
// completion, never persisted across launches.
type CheckoutService struct {
	store     *store.Store
	cart      ports.CartService
	submitter ports.OrderSubmitter
	orders    ports.OrderRepository
	logger    zerolog.Logger

	mu    sync.Mutex
	draft *domain.CheckoutDraft
}

func NewCheckoutService(
	st *store.Store,
	cart ports.CartService,
	submitter ports.OrderSubmitter,
	orders ports.OrderRepository,
	logger zerolog.Logger,
) *CheckoutService {
	return &CheckoutService{
		store:     st,
		cart:      cart,
		submitter: submitter,
		orders:    orders,
		logger:    logger,
	}
}

// Start opens a fresh session at the shipping stage, discarding any prior
// draft. A session whose order submission is still in flight cannot be
// replaced, and an empty cart cannot enter checkout.
func (s *CheckoutService) Start(ctx context.Context) (ports.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft != nil && s.draft.Stage == domain.StageSubmitting {
		return ports.CheckoutSession{}, domain.ErrSubmissionInFlight
	}

	view := s.cart.View(ctx)
	if len(view.Items) == 0 {
		return ports.CheckoutSession{}, domain.ErrCartEmpty
	}

	s.draft = &domain.CheckoutDraft{
		Stage:     domain.StageShipping,
		Shipping:  domain.ShippingInfo{Method: domain.ShippingStandard},
		StartedAt: time.Now().UTC(),
	}
	s.logger.Info().Msg("checkout started")
	return s.sessionLocked(ctx), nil
}

// Session returns the current session view.
func (s *CheckoutService) Session(ctx context.Context) (ports.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return ports.CheckoutSession{}, domain.ErrCheckoutNotStarted
	}
	return s.sessionLocked(ctx), nil
}

// UpdateShipping replaces the draft's shipping info, including the shipping
// method. Only valid while the session is at the shipping stage.
func (s *CheckoutService) UpdateShipping(ctx context.Context, info domain.ShippingInfo) (ports.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return ports.CheckoutSession{}, domain.ErrCheckoutNotStarted
	}
	if s.draft.Stage != domain.StageShipping {
		return ports.CheckoutSession{}, domain.ErrInvalidTransition
	}
	if info.Method == "" {
		info.Method = domain.ShippingStandard
	}
	if !info.Method.Valid() {
		return ports.CheckoutSession{}, domain.ErrInvalidShippingMethod
	}

	s.draft.Shipping = info
	return s.sessionLocked(ctx), nil
}

// UpdatePayment replaces the draft's payment info. Only valid while the
// session is at the payment stage.
func (s *CheckoutService) UpdatePayment(ctx context.Context, info domain.PaymentInfo) (ports.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return ports.CheckoutSession{}, domain.ErrCheckoutNotStarted
	}
	if s.draft.Stage != domain.StagePayment {
		return ports.CheckoutSession{}, domain.ErrInvalidTransition
	}

	if info.BillingSame {
		info.BillingAddress = domain.BillingAddress{
			Street:  s.draft.Shipping.Street,
			City:    s.draft.Shipping.City,
			State:   s.draft.Shipping.State,
			ZipCode: s.draft.Shipping.ZipCode,
			Country: s.draft.Shipping.Country,
		}
	}

	s.draft.Payment = info
	return s.sessionLocked(ctx), nil
}

// Next advances the wizard one stage forward, gated on the current stage's
// guard. A failed guard leaves the stage unchanged.
func (s *CheckoutService) Next(ctx context.Context) (ports.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return ports.CheckoutSession{}, domain.ErrCheckoutNotStarted
	}

	switch s.draft.Stage {
	case domain.StageShipping:
		if !s.draft.Shipping.Complete() {
			return ports.CheckoutSession{}, domain.ErrStageIncomplete
		}
		s.advanceLocked(domain.StagePayment)
	case domain.StagePayment:
		if !s.draft.Payment.Complete() {
			return ports.CheckoutSession{}, domain.ErrStageIncomplete
		}
		s.advanceLocked(domain.StageReview)
	default:
		// Review submits through PlaceOrder, not Next.
		return ports.CheckoutSession{}, domain.ErrInvalidTransition
	}

	return s.sessionLocked(ctx), nil
}

// Back moves the wizard one stage backward.
func (s *CheckoutService) Back(ctx context.Context) (ports.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return ports.CheckoutSession{}, domain.ErrCheckoutNotStarted
	}

	switch s.draft.Stage {
	case domain.StagePayment:
		s.advanceLocked(domain.StageShipping)
	case domain.StageReview:
		s.advanceLocked(domain.StagePayment)
	default:
		return ports.CheckoutSession{}, domain.ErrInvalidTransition
	}

	return s.sessionLocked(ctx), nil
}

// PlaceOrder submits the order to the external collaborator. Only callable
// from review; the submitting stage is the sole mutual-exclusion mechanism,
// so a re-entrant call while in flight is rejected. Failure restores review
// so the user may retry; success records the order, clears the cart, and
// completes the session.
func (s *CheckoutService) PlaceOrder(ctx context.Context) (ports.PlaceOrderResult, error) {
	s.mu.Lock()
	if s.draft == nil {
		s.mu.Unlock()
		return ports.PlaceOrderResult{}, domain.ErrCheckoutNotStarted
	}
	if s.draft.Stage == domain.StageSubmitting {
		s.mu.Unlock()
		return ports.PlaceOrderResult{}, domain.ErrSubmissionInFlight
	}
	if s.draft.Stage != domain.StageReview {
		s.mu.Unlock()
		return ports.PlaceOrderResult{}, domain.ErrInvalidTransition
	}

	view := s.cart.View(ctx)
	if len(view.Items) == 0 {
		s.mu.Unlock()
		return ports.PlaceOrderResult{}, domain.ErrCartEmpty
	}

	totals := s.cart.Totals(ctx, s.draft.Shipping.Method)
	input := ports.SubmitOrderInput{
		UserID:   s.userIDLocked(),
		Items:    view.Items,
		Shipping: s.draft.Shipping,
		Payment:  s.draft.Payment,
		Totals:   totals,
	}
	s.advanceLocked(domain.StageSubmitting)
	draft := s.draft
	s.mu.Unlock()

	orderNumber, err := s.submitter.Submit(ctx, input)

	s.mu.Lock()
	// The draft may have been swapped out from under us while the lock was
	// released; a resolved submission must never touch a replacement session.
	replaced := s.draft != draft
	if err != nil {
		if !replaced {
			s.advanceLocked(domain.StageReview)
		}
		s.mu.Unlock()
		metrics.OrdersPlacedTotal.WithLabelValues("failure").Inc()
		s.logger.Error().Err(err).Msg("order submission failed")
		return ports.PlaceOrderResult{}, fmt.Errorf("%w: %w", domain.ErrSubmissionFailed, err)
	}
	if !replaced {
		s.advanceLocked(domain.StageComplete)
		s.draft.OrderNumber = orderNumber
	}
	s.mu.Unlock()

	order := &domain.Order{
		ID:          uuid.NewString(),
		OrderNumber: orderNumber,
		UserID:      input.UserID,
		Items:       input.Items,
		Shipping:    input.Shipping,
		Totals:      totals,
		PlacedAt:    time.Now().UTC(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		// The order went through; history is best effort.
		s.logger.Error().Err(err).Str("order_number", orderNumber).Msg("failed to record order")
	}

	if replaced {
		// The session this submission belonged to is gone; the current
		// draft and cart belong to someone else now.
		s.logger.Warn().Str("order_number", orderNumber).Msg("session replaced during submission, leaving cart untouched")
	} else if _, err := s.cart.ClearCart(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_number", orderNumber).Msg("failed to clear cart after order")
	}

	metrics.OrdersPlacedTotal.WithLabelValues("success").Inc()
	metrics.OrderValue.Observe(totals.Total)
	s.logger.Info().Str("order_number", orderNumber).Float64("total", totals.Total).Msg("order placed")

	return ports.PlaceOrderResult{OrderNumber: orderNumber, Totals: totals}, nil
}

// advanceLocked performs a validated stage transition. Callers hold s.mu and
// have already checked stage guards; an invalid transition here is a
// programming error and is logged, not applied.
func (s *CheckoutService) advanceLocked(to domain.CheckoutStage) {
	from := s.draft.Stage
	if !from.CanTransitionTo(to) {
		s.logger.Error().Str("from", string(from)).Str("to", string(to)).Msg("blocked invalid stage transition")
		return
	}
	s.draft.Stage = to
	metrics.CheckoutTransitionsTotal.WithLabelValues(string(from), string(to)).Inc()
}

func (s *CheckoutService) sessionLocked(ctx context.Context) ports.CheckoutSession {
	return ports.CheckoutSession{
		Stage:       s.draft.Stage,
		Shipping:    s.draft.Shipping,
		Payment:     s.draft.Payment,
		Totals:      s.cart.Totals(ctx, s.draft.Shipping.Method),
		OrderNumber: s.draft.OrderNumber,
	}
}

func (s *CheckoutService) userIDLocked() string {
	auth := s.store.Auth.Snapshot()
	if auth.User == nil {
		return ""
	}
	return auth.User.ID
}
