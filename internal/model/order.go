package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

const CurrencyINR = "INR"

type Customer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (c Customer) Name() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// OrderIntent lives only for the duration of one checkout attempt.
type OrderIntent struct {
	OrderID  string
	Amount   decimal.Decimal
	Currency string
	Customer Customer
}

type PaymentMethodKind string

const (
	MethodRedirect PaymentMethodKind = "redirect"
	MethodPopup    PaymentMethodKind = "popup"
	MethodDirect   PaymentMethodKind = "direct"
	MethodDemo     PaymentMethodKind = "demo"
)

type PaymentStatus string

const (
	StatusUserConfirmed PaymentStatus = "user_confirmed"
	StatusUserCancelled PaymentStatus = "user_cancelled"
	StatusPending       PaymentStatus = "pending"
)

// PaymentResult is produced locally. Success is what the buyer reported, not a
// gateway-verified transaction.
type PaymentResult struct {
	Success       bool              `json:"success"`
	OrderID       string            `json:"order_id"`
	PaymentID     string            `json:"payment_id,omitempty"`
	Method        PaymentMethodKind `json:"method"`
	UserConfirmed *bool             `json:"user_confirmed,omitempty"`
	Status        PaymentStatus     `json:"status"`
	Message       string            `json:"message,omitempty"`
	RedirectURL   string            `json:"redirect_url,omitempty"`
}
