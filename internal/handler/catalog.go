package handler

import (
	"net/http"

	"ebook-checkout/internal/service"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.catalogService.GetProduct(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) ListPaymentMethods(c echo.Context) error {
	ctx := c.Request().Context()

	methods, err := h.catalogService.ListPaymentMethods(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, methods)
}
