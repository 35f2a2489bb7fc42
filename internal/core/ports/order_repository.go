package ports

import (
	"context"

	"github.com/supfront/commerce-system/internal/core/domain"
)

// ListOrdersFilter carries the query parameters for the order history.
type ListOrdersFilter struct {
	UserID string // empty = no filter
	Page   int    // 1-based
	Limit  int    // max rows per page (capped at 100 by the handler)
}

// OrderRepository defines persistence operations for placed orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	FindByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	// List returns a page of orders, newest first, and the total count.
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, int64, error)
}
