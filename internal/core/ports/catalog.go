package ports

import (
	"github.com/supfront/commerce-system/internal/core/domain"
)

// CatalogReader provides read-only access to the product catalog.
type CatalogReader interface {
	// Product returns the catalog entry with the given id, or
	// domain.ErrProductNotFound.
	Product(id string) (domain.Product, error)
	// List returns all catalog entries.
	List() []domain.Product
}
