package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/supfront/commerce-system/internal/core/ports"
)

// CheckoutHandler handles HTTP requests for the checkout wizard.
type CheckoutHandler struct {
	service ports.CheckoutService
}

func NewCheckoutHandler(service ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// Start handles POST /v1/checkout.
//
// @Summary      Start a checkout session
// @Tags         checkout
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  checkoutResponse
// @Failure      400  {object}  map[string]string
// @Router       /v1/checkout [post]
func (h *CheckoutHandler) Start(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	session, err := h.service.Start(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCheckoutResponse(session))
}

// Get handles GET /v1/checkout.
//
// @Summary      Get the active checkout session
// @Tags         checkout
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  checkoutResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/checkout [get]
func (h *CheckoutHandler) Get(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	session, err := h.service.Session(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCheckoutResponse(session))
}

// UpdateShipping handles PUT /v1/checkout/shipping.
//
// @Summary      Set shipping contact, address, and method
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      shippingRequest  true  "Shipping details"
// @Success      200   {object}  checkoutResponse
// @Failure      409   {object}  map[string]string
// @Router       /v1/checkout/shipping [put]
func (h *CheckoutHandler) UpdateShipping(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	var req shippingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.service.UpdateShipping(c.Request().Context(), toShippingInfo(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCheckoutResponse(session))
}

// UpdatePayment handles PUT /v1/checkout/payment.
//
// @Summary      Set payment details
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      paymentRequest  true  "Payment details"
// @Success      200   {object}  checkoutResponse
// @Failure      409   {object}  map[string]string
// @Router       /v1/checkout/payment [put]
func (h *CheckoutHandler) UpdatePayment(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.service.UpdatePayment(c.Request().Context(), toPaymentInfo(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCheckoutResponse(session))
}

// Next handles POST /v1/checkout/next.
//
// @Summary      Advance the wizard one stage
// @Tags         checkout
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  checkoutResponse
// @Failure      422  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/checkout/next [post]
func (h *CheckoutHandler) Next(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	session, err := h.service.Next(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCheckoutResponse(session))
}

// Back handles POST /v1/checkout/back.
//
// @Summary      Move the wizard one stage back
// @Tags         checkout
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  checkoutResponse
// @Failure      409  {object}  map[string]string
// @Router       /v1/checkout/back [post]
func (h *CheckoutHandler) Back(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	session, err := h.service.Back(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCheckoutResponse(session))
}

// PlaceOrder handles POST /v1/checkout/order.
//
// @Summary      Submit the order from the review stage
// @Tags         checkout
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  placeOrderResponse
// @Failure      409  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /v1/checkout/order [post]
func (h *CheckoutHandler) PlaceOrder(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	result, err := h.service.PlaceOrder(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, placeOrderResponse{
		OrderNumber: result.OrderNumber,
		Totals:      toTotalsResponse(result.Totals),
	})
}
