package ports

import (
	"context"

	"github.com/supfront/commerce-system/internal/core/domain"
)

// CartView is the full cart snapshot returned to callers, with totals derived
// from the current state.
type CartView struct {
	Items  []domain.CartItem
	Promo  domain.PromoState
	Totals domain.Totals
}

// CartService defines the cart ledger's use-case operations.
type CartService interface {
	// AddItem adds qty units of the catalog product to the cart, merging into
	// an existing line with the same id. qty < 1 is rejected with
	// domain.ErrInvalidQuantity.
	AddItem(ctx context.Context, productID string, qty int) (CartView, error)

	// RemoveItem deletes the line if present; removing an absent line is a
	// safe no-op.
	RemoveItem(ctx context.Context, id string) (CartView, error)

	// UpdateQuantity sets the line's quantity. qty < 1 is rejected with
	// domain.ErrInvalidQuantity; the ledger never auto-removes a line at zero.
	// An absent line is domain.ErrItemNotFound.
	UpdateQuantity(ctx context.Context, id string, qty int) (CartView, error)

	// ApplyPromoCode validates the code and freezes the discount computed off
	// the subtotal at the moment of application. Unrecognized codes return
	// domain.ErrPromoRejected with prior promo state unchanged.
	ApplyPromoCode(ctx context.Context, code string) (CartView, error)

	// ClearPromoCode resets the promo state to empty.
	ClearPromoCode(ctx context.Context) (CartView, error)

	// ClearCart empties the items and resets the promo state atomically.
	ClearCart(ctx context.Context) (CartView, error)

	// View returns the current cart snapshot with totals under the standard
	// shipping rule.
	View(ctx context.Context) CartView

	// Totals recomputes order totals with the given shipping method override.
	Totals(ctx context.Context, method domain.ShippingMethod) domain.Totals
}
