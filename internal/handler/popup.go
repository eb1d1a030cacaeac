package handler

import (
	"net/http"

	"ebook-checkout/internal/dto"
	"ebook-checkout/internal/service"

	"github.com/labstack/echo/v4"
)

// PopupHandler is the browser's side channel into a running popup monitor.
type PopupHandler struct {
	popupService service.PopupService
}

func NewPopupHandler(popupService service.PopupService) *PopupHandler {
	return &PopupHandler{
		popupService: popupService,
	}
}

func (h *PopupHandler) Opened(c echo.Context) error {
	if err := h.popupService.Acknowledge(c.Param("id"), true); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PopupHandler) Blocked(c echo.Context) error {
	if err := h.popupService.Acknowledge(c.Param("id"), false); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PopupHandler) Report(c echo.Context) error {
	var req dto.PopupReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.popupService.Report(c.Param("id"), req.State); err != nil {
		return httpError(err)
	}
	return h.Status(c)
}

func (h *PopupHandler) Confirm(c echo.Context) error {
	var req dto.PopupConfirmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.popupService.Answer(c.Param("id"), *req.Completed); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusAccepted)
}

func (h *PopupHandler) Status(c echo.Context) error {
	status, err := h.popupService.Status(c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, status)
}
