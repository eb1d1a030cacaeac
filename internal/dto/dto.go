package dto

import (
	"ebook-checkout/internal/client"
	"ebook-checkout/internal/config"
	"ebook-checkout/internal/model"
)

type CheckoutMode string

const (
	ModeRedirect CheckoutMode = "redirect"
	ModeForm     CheckoutMode = "form"
	ModePopup    CheckoutMode = "popup"
	ModeDemo     CheckoutMode = "demo"
)

type CheckoutRequest struct {
	Mode      CheckoutMode `json:"mode" form:"mode"`
	Email     string       `json:"email" form:"email" validate:"required,buyer_email"`
	FirstName string       `json:"first_name" form:"firstName" validate:"required"`
	LastName  string       `json:"last_name" form:"lastName" validate:"required"`
	Phone     string       `json:"phone" form:"phone" validate:"required,in_mobile"`
	Address   string       `json:"address" form:"address"`
	City      string       `json:"city" form:"city"`
	ZipCode   string       `json:"zip_code" form:"zipCode"`
	Country   string       `json:"country" form:"country"`
	// Amount is the price the page showed the buyer, checked against the catalog when set.
	Amount string `json:"amount" form:"amount"`
}

func (r *CheckoutRequest) Customer() model.Customer {
	return model.Customer{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}

type CheckoutResponse struct {
	OrderID string               `json:"order_id"`
	Amount  string               `json:"amount"`
	Result  *model.PaymentResult `json:"result"`
	Form    *client.FormPost     `json:"form,omitempty"`
	Popup   *PopupSession        `json:"popup,omitempty"`
}

type PopupSession struct {
	SessionID      string `json:"session_id"`
	PopupURL       string `json:"popup_url"`
	WindowName     string `json:"window_name"`
	WindowFeatures string `json:"window_features"`
	PollInterval   int64  `json:"poll_interval_ms"`
}

type PopupAckRequest struct {
	Opened bool `json:"opened"`
}

type PopupReportRequest struct {
	State string `json:"state" validate:"required"`
}

type PopupConfirmRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

type PopupStatusResponse struct {
	SessionID            string               `json:"session_id"`
	OrderID              string               `json:"order_id"`
	State                string               `json:"state"`
	CloseWindow          bool                 `json:"close_window"`
	AwaitingConfirmation bool                 `json:"awaiting_confirmation"`
	Result               *model.PaymentResult `json:"result,omitempty"`
	RedirectURL          string               `json:"redirect_url,omitempty"`
	Error                string               `json:"error,omitempty"`
}

type ProductResponse struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Description            string `json:"description"`
	Currency               string `json:"currency"`
	Price                  string `json:"price"`
	OriginalPrice          string `json:"original_price"`
	Savings                string `json:"savings"`
	DiscountPercent        int64  `json:"discount_percent"`
	BonusValue             string `json:"bonus_value"`
	PriceFormatted         string `json:"price_formatted"`
	OriginalPriceFormatted string `json:"original_price_formatted"`
	SavingsFormatted       string `json:"savings_formatted"`
	BonusValueFormatted    string `json:"bonus_value_formatted"`
}

type PaymentMethodResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
	Modes       []string `json:"modes"`
}

type GatewayStatusResponse struct {
	config.Validation
	Environment string `json:"environment"`
	Live        bool   `json:"live"`
	DemoAllowed bool   `json:"demo_allowed"`
}
