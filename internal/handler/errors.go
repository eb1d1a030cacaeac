package handler

import (
	"errors"
	"net/http"

	"ebook-checkout/internal/config"
	"ebook-checkout/internal/popup"
	"ebook-checkout/internal/service"

	"github.com/labstack/echo/v4"
)

// httpError maps service errors to the status code the browser expects.
// Anything unknown is returned as is and ends up a 500.
func httpError(err error) error {
	var formErr *service.FormError
	var cfgErr *config.ConfigError

	switch {
	case errors.As(err, &formErr):
		return echo.NewHTTPError(http.StatusBadRequest, formErr.Message).SetInternal(err)
	case errors.As(err, &cfgErr):
		return echo.NewHTTPError(http.StatusBadRequest, cfgErr.Error()).SetInternal(err)
	case errors.Is(err, service.ErrUnsupportedMode), errors.Is(err, popup.ErrUnknownObservation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	case errors.Is(err, service.ErrDemoDisabled):
		return echo.NewHTTPError(http.StatusForbidden, err.Error()).SetInternal(err)
	case errors.Is(err, service.ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error()).SetInternal(err)
	case errors.Is(err, popup.ErrAlreadyAcknowledged), errors.Is(err, popup.ErrNotAwaitingConfirmation),
		errors.Is(err, service.ErrAmountMismatch):
		return echo.NewHTTPError(http.StatusConflict, err.Error()).SetInternal(err)
	}
	return err
}
