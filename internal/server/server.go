package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"ebook-checkout/internal/config"
	"ebook-checkout/internal/handler"
	appmw "ebook-checkout/internal/middleware"
	"ebook-checkout/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo            *echo.Echo
	logger          *slog.Logger
	urls            config.URLs
	popupService    service.PopupService
	catalogHandler  *handler.CatalogHandler
	checkoutHandler *handler.CheckoutHandler
	popupHandler    *handler.PopupHandler
}

func NewServer(
	urls config.URLs,
	catalogService service.CatalogService,
	checkoutService service.CheckoutService,
	popupService service.PopupService,
	logger *slog.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler(logger)
	e.Validator = handler.NewRequestValidator()

	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		logger:          logger,
		urls:            urls,
		popupService:    popupService,
		catalogHandler:  handler.NewCatalogHandler(catalogService),
		checkoutHandler: handler.NewCheckoutHandler(checkoutService),
		popupHandler:    handler.NewPopupHandler(popupService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// -------- pages the browser is sent to when a payment ends --------
	s.echo.GET(s.urls.Success, s.checkoutHandler.ResultPage(""))
	s.echo.GET(s.urls.Cancel, s.checkoutHandler.ResultPage("cancelled"))
	s.echo.GET(s.urls.Failure, s.checkoutHandler.ResultPage("failed"))

	s.echo.POST("/checkout/form", s.checkoutHandler.FormCheckout, appmw.NoStore())

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api.GET("/product", s.catalogHandler.GetProduct)
	api.GET("/payment-methods", s.catalogHandler.ListPaymentMethods)

	// -------- cashfree --------
	api.GET("/cashfree/config", s.checkoutHandler.GatewayConfig)
	api.POST("/checkout", s.checkoutHandler.Checkout, appmw.NoStore())

	// -------- popup side channel --------
	popup := api.Group("/popup/:id", appmw.NoStore())
	popup.GET("", s.popupHandler.Status)
	popup.POST("/opened", s.popupHandler.Opened)
	popup.POST("/blocked", s.popupHandler.Blocked)
	popup.POST("/report", s.popupHandler.Report)
	popup.POST("/confirm", s.popupHandler.Confirm)
}

// ServeHTTP lets the server be driven without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

// Shutdown stops accepting requests, then stops every running popup monitor.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.echo.Shutdown(ctx)
	s.popupService.Shutdown()
	if err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// errorHandler renders every error as {"error": "..."}.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			msg = fmt.Sprint(he.Message)
		} else {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, map[string]string{"error": msg})
		}
		if err != nil {
			logger.Error("write error response", "error", err)
		}
	}
}
