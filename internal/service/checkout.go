package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ebook-checkout/internal/client"
	"ebook-checkout/internal/config"
	"ebook-checkout/internal/dto"
	"ebook-checkout/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrUnsupportedMode = errors.New("unsupported checkout mode")
	ErrDemoDisabled    = errors.New("demo checkout is disabled")
	ErrAmountMismatch  = errors.New("order amount does not match the product price")
)

type CheckoutService interface {
	GatewayStatus() *dto.GatewayStatusResponse
	Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
}

type checkoutServiceImpl struct {
	cfg            *config.Config
	cashfreeClient client.CashfreeClient
	catalogService CatalogService
	popupService   PopupService
	formValidator  *FormValidator
	logger         *slog.Logger
	now            func() time.Time
}

func NewCheckoutService(
	cfg *config.Config,
	cashfreeClient client.CashfreeClient,
	catalogService CatalogService,
	popupService PopupService,
	logger *slog.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		cfg:            cfg,
		cashfreeClient: cashfreeClient,
		catalogService: catalogService,
		popupService:   popupService,
		formValidator:  NewFormValidator(),
		logger:         logger,
		now:            time.Now,
	}
}

// NewOrderID returns a time based id. Two calls in the same millisecond
// differ only by the random suffix.
func NewOrderID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("order_%d_%s", now.UnixMilli(), suffix)
}

func (s *checkoutServiceImpl) demoAllowed() bool {
	return s.cfg.Cashfree.AllowDemo && !s.cfg.IsProduction()
}

func (s *checkoutServiceImpl) GatewayStatus() *dto.GatewayStatusResponse {
	v := s.cfg.ValidateGateway()
	return &dto.GatewayStatusResponse{
		Validation:  v,
		Environment: s.cashfreeClient.Environment(),
		Live:        v.Valid && s.cfg.IsProduction(),
		DemoAllowed: s.demoAllowed(),
	}
}

func (s *checkoutServiceImpl) Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if err := s.formValidator.Validate(req); err != nil {
		return nil, err
	}

	mode := req.Mode
	if mode == "" {
		mode = dto.ModeRedirect
	}

	switch mode {
	case dto.ModeRedirect, dto.ModeForm, dto.ModePopup:
		if err := s.cfg.RequireGateway(); err != nil {
			return nil, err
		}
	case dto.ModeDemo:
		if !s.demoAllowed() {
			return nil, ErrDemoDisabled
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, mode)
	}

	product, err := s.catalogService.Product(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.checkAmount(ctx, req.Amount, product.Price); err != nil {
		return nil, err
	}

	intent := &model.OrderIntent{
		OrderID:  NewOrderID(s.now()),
		Amount:   product.Price,
		Currency: model.CurrencyINR,
		Customer: req.Customer(),
	}
	log := s.logger.With("order_id", intent.OrderID, "mode", string(mode))
	log.Info("checkout started", "amount", intent.Amount.String(), "email", intent.Customer.Email)

	resp := &dto.CheckoutResponse{
		OrderID: intent.OrderID,
		Amount:  intent.Amount.StringFixed(2),
	}

	callbacks := client.Callbacks{
		ReturnURL: client.ReturnURL(s.cfg.BaseURL, s.cfg.URLs.Success, intent.OrderID, "pending"),
		NotifyURL: client.NotifyURL(s.cfg.BaseURL),
	}

	switch mode {
	case dto.ModeRedirect:
		checkoutURL, err := s.cashfreeClient.CheckoutURL(intent, callbacks)
		if err != nil {
			return nil, fmt.Errorf("cashfree checkout url: %w", err)
		}
		resp.Result = &model.PaymentResult{
			Success:     true,
			OrderID:     intent.OrderID,
			Method:      model.MethodRedirect,
			Status:      model.StatusPending,
			RedirectURL: checkoutURL,
		}

	case dto.ModeForm:
		form, err := s.cashfreeClient.FormPost(intent, callbacks)
		if err != nil {
			return nil, fmt.Errorf("cashfree form post: %w", err)
		}
		resp.Form = form
		resp.Result = &model.PaymentResult{
			Success: true,
			OrderID: intent.OrderID,
			Method:  model.MethodDirect,
			Status:  model.StatusPending,
		}

	case dto.ModePopup:
		checkoutURL, err := s.cashfreeClient.CheckoutURL(intent, callbacks)
		if err != nil {
			return nil, fmt.Errorf("cashfree checkout url: %w", err)
		}
		session, err := s.popupService.Start(intent, checkoutURL)
		if err != nil {
			return nil, fmt.Errorf("start popup session: %w", err)
		}
		resp.Popup = session
		resp.Result = &model.PaymentResult{
			Success: false,
			OrderID: intent.OrderID,
			Method:  model.MethodPopup,
			Status:  model.StatusPending,
		}

	case dto.ModeDemo:
		result, err := s.simulate(ctx, intent)
		if err != nil {
			return nil, err
		}
		resp.Result = result
	}

	return resp, nil
}

// checkAmount refuses to send the gateway an amount the catalog does not
// back. shown is what the page displayed; empty means the catalog price.
func (s *checkoutServiceImpl) checkAmount(ctx context.Context, shown string, price decimal.Decimal) error {
	amount := price
	if shown != "" {
		parsed, err := decimal.NewFromString(strings.TrimSpace(shown))
		if err != nil {
			return fmt.Errorf("%w: %q", ErrAmountMismatch, shown)
		}
		amount = parsed
	}

	ok, err := s.catalogService.ValidateAmount(ctx, amount)
	if err != nil {
		return fmt.Errorf("validate amount: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: got %s, want %s", ErrAmountMismatch, amount.String(), price.String())
	}
	return nil
}

// simulate stands in for the gateway when no app id is configured.
func (s *checkoutServiceImpl) simulate(ctx context.Context, intent *model.OrderIntent) (*model.PaymentResult, error) {
	timer := time.NewTimer(s.cfg.Cashfree.DemoDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.logger.Info("demo payment completed", "order_id", intent.OrderID)
	return &model.PaymentResult{
		Success:     true,
		OrderID:     intent.OrderID,
		PaymentID:   fmt.Sprintf("pay_%d", s.now().UnixMilli()),
		Method:      model.MethodDemo,
		Status:      model.StatusPending,
		Message:     "Demo payment, no money was charged",
		RedirectURL: client.ReturnURL(s.cfg.BaseURL, s.cfg.URLs.Success, intent.OrderID, "pending"),
	}, nil
}
