package handler

import (
	"fmt"
	"net/http"

	"ebook-checkout/internal/dto"
	"ebook-checkout/internal/service"
	"ebook-checkout/internal/view"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) GatewayConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, h.checkoutService.GatewayStatus())
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.checkoutService.Checkout(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

// FormCheckout serves plain HTML form posts: the response is a page that
// forwards the buyer to the gateway with a hidden form.
func (h *CheckoutHandler) FormCheckout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	req.Mode = dto.ModeForm

	resp, err := h.checkoutService.Checkout(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	page, err := view.AutoSubmit(resp.Form)
	if err != nil {
		return fmt.Errorf("form checkout %s: %w", resp.OrderID, err)
	}

	return c.HTMLBlob(http.StatusOK, page)
}

// ResultPage serves the return, cancel and failure pages. A non-empty
// fallback marks a failure page: any status that is not a failure is
// replaced by it.
func (h *CheckoutHandler) ResultPage(fallback string) echo.HandlerFunc {
	return func(c echo.Context) error {
		page := view.StatusPage{
			OrderID: c.QueryParam("orderId"),
			Status:  c.QueryParam("status"),
		}
		if fallback != "" && !page.Failed() {
			page.Status = fallback
		}

		body, err := view.Status(page)
		if err != nil {
			return err
		}

		return c.HTMLBlob(http.StatusOK, body)
	}
}
