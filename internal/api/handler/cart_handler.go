package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/supfront/commerce-system/internal/core/ports"
)

// CartHandler handles HTTP requests for cart operations.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// Get handles GET /v1/cart.
//
// @Summary      Get the cart with derived totals
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(h.service.View(c.Request().Context())))
}

// AddItem handles POST /v1/cart/items.
//
// @Summary      Add a catalog product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addItemRequest  true  "Product and quantity"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	view, err := h.service.AddItem(c.Request().Context(), req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}

// UpdateQuantity handles PUT /v1/cart/items/:id.
//
// @Summary      Set a cart line's quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Cart line id"
// @Param        body  body      updateQuantityRequest  true  "New quantity (>= 1)"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/cart/items/{id} [put]
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.UpdateQuantity(c.Request().Context(), c.Param("id"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}

// RemoveItem handles DELETE /v1/cart/items/:id.
//
// @Summary      Remove a cart line
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Cart line id"
// @Success      200  {object}  cartResponse
// @Router       /v1/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	view, err := h.service.RemoveItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}

// Clear handles DELETE /v1/cart.
//
// @Summary      Empty the cart and reset the promo state
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Router       /v1/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	view, err := h.service.ClearCart(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}

// ApplyPromo handles POST /v1/cart/promo.
//
// @Summary      Apply a promo code
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      applyPromoRequest  true  "Promo code"
// @Success      200   {object}  cartResponse
// @Failure      422   {object}  map[string]string
// @Router       /v1/cart/promo [post]
func (h *CartHandler) ApplyPromo(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	var req applyPromoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.ApplyPromoCode(c.Request().Context(), req.Code)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}

// ClearPromo handles DELETE /v1/cart/promo.
//
// @Summary      Clear the applied promo code
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Router       /v1/cart/promo [delete]
func (h *CartHandler) ClearPromo(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	view, err := h.service.ClearPromoCode(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}
