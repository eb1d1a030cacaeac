package client

import (
	"fmt"
	"net/url"
	"strings"

	"ebook-checkout/internal/config"
	"ebook-checkout/internal/model"
)

const (
	sandboxPayURL    = "https://payments-test.cashfree.com/pay"
	productionPayURL = "https://payments.cashfree.com/pay"

	sandboxFormURL    = "https://test.cashfree.com/billpay/checkout/post/submit"
	productionFormURL = "https://www.cashfree.com/checkout/post/submit"

	orderNote = "YouTube Automation Ebook Purchase"
)

// CashfreeClient builds requests against the Cashfree hosted checkout. Nothing
// here talks to the gateway; the browser does, using what is returned.
type CashfreeClient interface {
	CheckoutURL(intent *model.OrderIntent, callbacks Callbacks) (string, error)
	FormPost(intent *model.OrderIntent, callbacks Callbacks) (*FormPost, error)
	AppID() string
	Environment() string
}

type Callbacks struct {
	ReturnURL string
	NotifyURL string
}

// FormPost is a hidden form the browser submits to the gateway.
type FormPost struct {
	Action string  `json:"action"`
	Method string  `json:"method"`
	Fields []Field `json:"fields"`
}

type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type cashfreeClientImpl struct {
	appID        string
	environment  string
	paymentModes string
}

func NewCashfreeClient(cfCfg *config.Cashfree) CashfreeClient {
	return &cashfreeClientImpl{
		appID:        cfCfg.AppID,
		environment:  config.NormalizeEnvironment(cfCfg.Environment),
		paymentModes: cfCfg.PaymentModes,
	}
}

func (c *cashfreeClientImpl) AppID() string {
	return c.appID
}

func (c *cashfreeClientImpl) Environment() string {
	return c.environment
}

func (c *cashfreeClientImpl) payURL() string {
	if c.environment == config.EnvProduction {
		return productionPayURL
	}
	return sandboxPayURL
}

func (c *cashfreeClientImpl) formURL() string {
	if c.environment == config.EnvProduction {
		return productionFormURL
	}
	return sandboxFormURL
}

func (c *cashfreeClientImpl) params(intent *model.OrderIntent, callbacks Callbacks) ([]Field, error) {
	if intent == nil || intent.OrderID == "" {
		return nil, fmt.Errorf("order intent without order id")
	}
	if !intent.Amount.IsPositive() {
		return nil, fmt.Errorf("order %s: amount must be positive", intent.OrderID)
	}

	currency := intent.Currency
	if currency == "" {
		currency = model.CurrencyINR
	}

	return []Field{
		{Name: "appId", Value: c.appID},
		{Name: "orderId", Value: intent.OrderID},
		{Name: "orderAmount", Value: intent.Amount.StringFixed(2)},
		{Name: "orderCurrency", Value: currency},
		{Name: "customerName", Value: intent.Customer.Name()},
		{Name: "customerEmail", Value: intent.Customer.Email},
		{Name: "customerPhone", Value: intent.Customer.Phone},
		{Name: "returnUrl", Value: callbacks.ReturnURL},
		{Name: "notifyUrl", Value: callbacks.NotifyURL},
		{Name: "paymentModes", Value: c.paymentModes},
	}, nil
}

func (c *cashfreeClientImpl) CheckoutURL(intent *model.OrderIntent, callbacks Callbacks) (string, error) {
	fields, err := c.params(intent, callbacks)
	if err != nil {
		return "", fmt.Errorf("build checkout params: %w", err)
	}

	q := url.Values{}
	for _, f := range fields {
		q.Set(f.Name, f.Value)
	}

	return c.payURL() + "?" + q.Encode(), nil
}

func (c *cashfreeClientImpl) FormPost(intent *model.OrderIntent, callbacks Callbacks) (*FormPost, error) {
	fields, err := c.params(intent, callbacks)
	if err != nil {
		return nil, fmt.Errorf("build form params: %w", err)
	}

	// orderNote only exists on the form endpoint
	withNote := make([]Field, 0, len(fields)+1)
	for _, f := range fields {
		withNote = append(withNote, f)
		if f.Name == "orderCurrency" {
			withNote = append(withNote, Field{Name: "orderNote", Value: orderNote})
		}
	}

	return &FormPost{
		Action: c.formURL(),
		Method: "POST",
		Fields: withNote,
	}, nil
}

// ReturnURL follows <base>/success?orderId=<id>&status=<status>.
func ReturnURL(baseURL, successPath, orderID, status string) string {
	q := url.Values{}
	q.Set("orderId", orderID)
	q.Set("status", status)
	return strings.TrimRight(baseURL, "/") + successPath + "?" + q.Encode()
}

func NotifyURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/api/webhook/cashfree"
}
