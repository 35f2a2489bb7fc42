package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/supfront/commerce-system/internal/core/domain"
	"github.com/supfront/commerce-system/internal/core/ports"
)

const maxOrderPageSize = 100

type OrderHandler struct {
	orders ports.OrderRepository
}

func NewOrderHandler(orders ports.OrderRepository) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type orderListResponse struct {
	Orders []*domain.Order `json:"orders"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}

// List returns the authenticated user's order history, newest first.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  orderListResponse
// @Failure      401    {object}  map[string]string
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 20
	}
	if limit > maxOrderPageSize {
		limit = maxOrderPageSize
	}

	orders, total, err := h.orders.List(c.Request().Context(), ports.ListOrdersFilter{
		UserID: userID,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []*domain.Order{}
	}

	return c.JSON(http.StatusOK, orderListResponse{
		Orders: orders,
		Total:  total,
		Page:   page,
		Limit:  limit,
	})
}

// Get returns a single order by its customer-facing number.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        number  path      string  true  "Order number (ORD-XXXX-YYYY)"
// @Success      200     {object}  domain.Order
// @Failure      401     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /v1/orders/{number} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	order, err := h.orders.FindByNumber(c.Request().Context(), c.Param("number"))
	if err != nil {
		return err
	}
	if order.UserID != "" && order.UserID != userID {
		return domain.ErrOrderNotFound
	}

	return c.JSON(http.StatusOK, order)
}
