package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/supfront/commerce-system/internal/core/ports"
)

type CatalogHandler struct {
	catalog ports.CatalogReader
}

func NewCatalogHandler(catalog ports.CatalogReader) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List returns the full product catalog.
//
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /v1/products [get]
func (h *CatalogHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.List())
}

// Get returns a single product by id.
//
// @Summary      Get a product
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  map[string]string
// @Router       /v1/products/{id} [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	product, err := h.catalog.Product(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}
