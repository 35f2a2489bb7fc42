package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/supfront/commerce-system/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrItemNotFound, http.StatusNotFound},
		{domain.ErrProductNotFound, http.StatusNotFound},
		{domain.ErrOrderNotFound, http.StatusNotFound},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrCheckoutNotStarted, http.StatusNotFound},
		{domain.ErrInvalidQuantity, http.StatusBadRequest},
		{domain.ErrCartEmpty, http.StatusBadRequest},
		{domain.ErrInvalidShippingMethod, http.StatusBadRequest},
		{domain.ErrPromoRejected, http.StatusUnprocessableEntity},
		{domain.ErrStageIncomplete, http.StatusUnprocessableEntity},
		{domain.ErrInvalidTransition, http.StatusConflict},
		{domain.ErrSubmissionInFlight, http.StatusConflict},
		{domain.ErrAlreadyComplete, http.StatusConflict},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrSubmissionFailed, http.StatusBadGateway},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrNotAuthenticated, http.StatusUnauthorized},
	}

	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tc.err, c)

			if rec.Code != tc.code {
				t.Errorf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/v1/checkout/order", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	wrapped := fmt.Errorf("%w: %w", domain.ErrSubmissionFailed, errors.New("gateway timeout"))
	handler(wrapped, c)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("wrapped sentinel must still map, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(errors.New("pq: connection refused"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"error":"internal server error"}`+"\n" {
		t.Errorf("internal details must not leak: %s", body)
	}
}

func TestHTTPErrorHandler_EchoHTTPErrorPassesThrough(t *testing.T) {
	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(echo.NewHTTPError(http.StatusTeapot, "short and stout"), c)

	if rec.Code != http.StatusTeapot {
		t.Errorf("expected 418, got %d", rec.Code)
	}
}
