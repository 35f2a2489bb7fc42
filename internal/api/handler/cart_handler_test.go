package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/supfront/commerce-system/internal/core/domain"
	"github.com/supfront/commerce-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub cart service
// ---------------------------------------------------------------------------

type stubCartService struct {
	addFn    func(ctx context.Context, productID string, qty int) (ports.CartView, error)
	updateFn func(ctx context.Context, id string, qty int) (ports.CartView, error)
	view     ports.CartView
}

func (s *stubCartService) AddItem(ctx context.Context, productID string, qty int) (ports.CartView, error) {
	return s.addFn(ctx, productID, qty)
}

func (s *stubCartService) RemoveItem(context.Context, string) (ports.CartView, error) {
	return s.view, nil
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, id string, qty int) (ports.CartView, error) {
	return s.updateFn(ctx, id, qty)
}

func (s *stubCartService) ApplyPromoCode(context.Context, string) (ports.CartView, error) {
	return s.view, nil
}

func (s *stubCartService) ClearPromoCode(context.Context) (ports.CartView, error) {
	return s.view, nil
}

func (s *stubCartService) ClearCart(context.Context) (ports.CartView, error) {
	return s.view, nil
}

func (s *stubCartService) View(context.Context) ports.CartView {
	return s.view
}

func (s *stubCartService) Totals(context.Context, domain.ShippingMethod) domain.Totals {
	return s.view.Totals
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestContext(t *testing.T, method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user-7")
	return c, rec
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestCartHandler_Get(t *testing.T) {
	stub := &stubCartService{view: ports.CartView{
		Items:  []domain.CartItem{{ID: "energy", Name: "Energy & Focus", UnitPrice: 89.99, Quantity: 1}},
		Totals: domain.Totals{Subtotal: 89.99, Shipping: 5.99, Tax: 6.30, Total: 102.28},
	}}
	h := NewCartHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/v1/cart", "")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	totals, ok := resp["totals"].(map[string]any)
	if !ok {
		t.Fatalf("expected totals in response")
	}
	if totals["total"] != 102.28 {
		t.Errorf("unexpected total: %v", totals["total"])
	}
}

func TestCartHandler_Get_MissingClaims(t *testing.T) {
	h := NewCartHandler(&stubCartService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestCartHandler_AddItem_DefaultsQuantityToOne(t *testing.T) {
	var gotQty int
	stub := &stubCartService{
		addFn: func(_ context.Context, productID string, qty int) (ports.CartView, error) {
			if productID != "energy" {
				t.Fatalf("unexpected product id %q", productID)
			}
			gotQty = qty
			return ports.CartView{}, nil
		},
	}
	h := NewCartHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/cart/items", `{"product_id":"energy"}`)
	if err := h.AddItem(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotQty != 1 {
		t.Errorf("omitted quantity must default to 1, got %d", gotQty)
	}
}

func TestCartHandler_AddItem_MissingProductID(t *testing.T) {
	h := NewCartHandler(&stubCartService{
		addFn: func(context.Context, string, int) (ports.CartView, error) {
			t.Fatal("service must not be called")
			return ports.CartView{}, nil
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/v1/cart/items", `{"quantity":2}`)
	err := h.AddItem(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestCartHandler_UpdateQuantity_MissingQuantity(t *testing.T) {
	h := NewCartHandler(&stubCartService{
		updateFn: func(context.Context, string, int) (ports.CartView, error) {
			t.Fatal("service must not be called")
			return ports.CartView{}, nil
		},
	})

	c, _ := newTestContext(t, http.MethodPut, "/v1/cart/items/energy", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("energy")

	err := h.UpdateQuantity(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestCartHandler_UpdateQuantity_PropagatesDomainError(t *testing.T) {
	h := NewCartHandler(&stubCartService{
		updateFn: func(context.Context, string, int) (ports.CartView, error) {
			return ports.CartView{}, domain.ErrItemNotFound
		},
	})

	c, _ := newTestContext(t, http.MethodPut, "/v1/cart/items/ghost", `{"quantity":2}`)
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	err := h.UpdateQuantity(c)
	if err != domain.ErrItemNotFound {
		t.Fatalf("domain errors must flow to the error handler unwrapped, got %v", err)
	}
}
