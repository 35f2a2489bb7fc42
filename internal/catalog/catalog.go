// Package catalog serves the read-only supplement catalog. The data is a
// fixed in-process list; the core's contract does not care whether it comes
// from an API or a static file.
package catalog

import (
	"github.com/supfront/commerce-system/internal/core/domain"
)

// StaticCatalog implements ports.CatalogReader over a fixed product list.
type StaticCatalog struct {
	byID  map[string]domain.Product
	order []string
}

// New returns a catalog populated with the standard supplement packs.
func New() *StaticCatalog {
	return newWith(packs)
}

func newWith(products []domain.Product) *StaticCatalog {
	c := &StaticCatalog{byID: make(map[string]domain.Product, len(products))}
	for _, p := range products {
		c.byID[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c
}

// Product returns the catalog entry with the given id.
func (c *StaticCatalog) Product(id string) (domain.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

// List returns all catalog entries in their display order.
func (c *StaticCatalog) List() []domain.Product {
	out := make([]domain.Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

var packs = []domain.Product{
	{
		ID:          "1",
		Name:        "Energy & Focus Pack",
		Description: "Boost your energy levels and mental clarity with this carefully formulated supplement pack.",
		Price:       89.99,
		ImageURL:    "https://images.unsplash.com/photo-1556740738-b6a63e27c4df?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60",
		Category:    "Energy",
	},
	{
		ID:          "2",
		Name:        "Gut Health Essentials",
		Description: "Support your digestive system and microbiome with this comprehensive gut health pack.",
		Price:       79.99,
		ImageURL:    "https://images.unsplash.com/photo-1505751172876-fa1923c5c528?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60",
		Category:    "Digestive Health",
	},
	{
		ID:          "3",
		Name:        "Immune Defense Pack",
		Description: "Strengthen your immune system with this powerful combination of immune-supporting supplements.",
		Price:       94.99,
		ImageURL:    "https://images.unsplash.com/photo-1584362917165-526a968579e8?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60",
		Category:    "Immune Support",
	},
	{
		ID:          "4",
		Name:        "Sleep & Recovery Formula",
		Description: "Improve your sleep quality and recovery with this specialized supplement pack.",
		Price:       69.99,
		ImageURL:    "https://images.unsplash.com/photo-1519824145371-296894a0daa9?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60",
		Category:    "Sleep",
	},
	{
		ID:          "5",
		Name:        "Hormone Balance Support",
		Description: "Support healthy hormone levels and balance with this targeted supplement pack.",
		Price:       84.99,
		ImageURL:    "https://images.unsplash.com/photo-1471864190281-a93a3070b6de?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60",
		Category:    "Hormonal Health",
	},
	{
		ID:          "6",
		Name:        "Athletic Performance Pack",
		Description: "Enhance your athletic performance and recovery with this sports-focused supplement pack.",
		Price:       99.99,
		ImageURL:    "https://images.unsplash.com/photo-1517836357463-d25dfeac3438?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=60",
		Category:    "Sports Nutrition",
	},
}
