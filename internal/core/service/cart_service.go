package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/supfront/commerce-system/internal/api/metrics"
	"github.com/supfront/commerce-system/internal/core/domain"
	"github.com/supfront/commerce-system/internal/core/ports"
	"github.com/supfront/commerce-system/internal/store"
)

// promoRates is the fixed promo rule set: code → discount rate off the
// subtotal at the moment of application.
var promoRates = map[string]float64{
	"SAVE20": 0.20,
}

// CartService is the cart ledger: it owns line items and promo state in the
// cart partition and derives totals on demand.
type CartService struct {
	store   *store.Store
	catalog ports.CatalogReader
	logger  zerolog.Logger
}

func NewCartService(st *store.Store, catalog ports.CatalogReader, logger zerolog.Logger) *CartService {
	return &CartService{store: st, catalog: catalog, logger: logger}
}

// AddItem resolves the product in the catalog and merges qty units into the
// cart, appending a new line when the product is not yet present.
func (s *CartService) AddItem(ctx context.Context, productID string, qty int) (ports.CartView, error) {
	if qty < 1 {
		return ports.CartView{}, domain.ErrInvalidQuantity
	}

	product, err := s.catalog.Product(productID)
	if err != nil {
		return ports.CartView{}, err
	}

	next, err := s.store.Cart.Dispatch(func(st domain.CartState) (domain.CartState, error) {
		items := append([]domain.CartItem(nil), st.Items...)
		if i := st.FindItem(product.ID); i >= 0 {
			items[i].Quantity += qty
		} else {
			items = append(items, product.CartLine(qty))
		}
		st.Items = items
		return st, nil
	})
	if err != nil {
		return ports.CartView{}, err
	}

	metrics.CartMutationsTotal.WithLabelValues("add").Inc()
	s.logger.Info().Str("product_id", product.ID).Int("qty", qty).Msg("cart item added")
	return cartViewOf(next), nil
}

// RemoveItem deletes the line if present. Removing an absent line is a safe
// no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, id string) (ports.CartView, error) {
	next, _ := s.store.Cart.Dispatch(func(st domain.CartState) (domain.CartState, error) {
		if st.FindItem(id) < 0 {
			return st, nil
		}
		items := make([]domain.CartItem, 0, len(st.Items)-1)
		for _, it := range st.Items {
			if it.ID != id {
				items = append(items, it)
			}
		}
		st.Items = items
		return st, nil
	})

	metrics.CartMutationsTotal.WithLabelValues("remove").Inc()
	return cartViewOf(next), nil
}

// UpdateQuantity sets the line's quantity. The ledger never auto-removes a
// line at zero; callers must remove explicitly.
func (s *CartService) UpdateQuantity(ctx context.Context, id string, qty int) (ports.CartView, error) {
	if qty < 1 {
		return ports.CartView{}, domain.ErrInvalidQuantity
	}

	next, err := s.store.Cart.Dispatch(func(st domain.CartState) (domain.CartState, error) {
		i := st.FindItem(id)
		if i < 0 {
			return st, domain.ErrItemNotFound
		}
		items := append([]domain.CartItem(nil), st.Items...)
		items[i].Quantity = qty
		st.Items = items
		return st, nil
	})
	if err != nil {
		return ports.CartView{}, err
	}

	metrics.CartMutationsTotal.WithLabelValues("update_quantity").Inc()
	return cartViewOf(next), nil
}

// ApplyPromoCode validates the code against the fixed rule set and freezes the
// discount computed off the subtotal at this moment. An unrecognized code
// leaves the prior promo state unchanged.
func (s *CartService) ApplyPromoCode(ctx context.Context, code string) (ports.CartView, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	next, err := s.store.Cart.Dispatch(func(st domain.CartState) (domain.CartState, error) {
		rate, ok := promoRates[normalized]
		if !ok {
			return st, domain.ErrPromoRejected
		}
		st.Promo = domain.PromoState{
			Code:     normalized,
			Discount: domain.RoundCents(st.Subtotal() * rate),
			Applied:  true,
		}
		return st, nil
	})
	if err != nil {
		metrics.PromoTotal.WithLabelValues("rejected").Inc()
		s.logger.Info().Str("code", normalized).Msg("promo code rejected")
		return ports.CartView{}, err
	}

	metrics.PromoTotal.WithLabelValues("applied").Inc()
	s.logger.Info().Str("code", normalized).Float64("discount", next.Promo.Discount).Msg("promo code applied")
	return cartViewOf(next), nil
}

// ClearPromoCode resets the promo state to empty.
func (s *CartService) ClearPromoCode(ctx context.Context) (ports.CartView, error) {
	next, _ := s.store.Cart.Dispatch(func(st domain.CartState) (domain.CartState, error) {
		st.Promo = domain.PromoState{}
		return st, nil
	})
	return cartViewOf(next), nil
}

// ClearCart empties the items and resets the promo state in a single reducer
// dispatch, so the reset is atomic: both happen or neither.
func (s *CartService) ClearCart(ctx context.Context) (ports.CartView, error) {
	next, _ := s.store.Cart.Dispatch(func(st domain.CartState) (domain.CartState, error) {
		return domain.CartState{}, nil
	})

	metrics.CartMutationsTotal.WithLabelValues("clear").Inc()
	s.logger.Info().Msg("cart cleared")
	return cartViewOf(next), nil
}

// View returns the current cart snapshot with totals under the standard
// shipping rule.
func (s *CartService) View(ctx context.Context) ports.CartView {
	return cartViewOf(s.store.Cart.Snapshot())
}

// Totals recomputes order totals with the given shipping method override.
func (s *CartService) Totals(ctx context.Context, method domain.ShippingMethod) domain.Totals {
	return s.store.Cart.Snapshot().ComputeTotals(method)
}

func cartViewOf(st domain.CartState) ports.CartView {
	return ports.CartView{
		Items:  st.Items,
		Promo:  st.Promo,
		Totals: st.Totals(),
	}
}
