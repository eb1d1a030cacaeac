package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string          `gorm:"primaryKey;size:64;not null"` // product sku
	Name          string          `gorm:"size:128;not null"`
	Description   string          `gorm:"size:512"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	OriginalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency      string          `gorm:"size:8;not null"`
	BonusValue    decimal.Decimal `gorm:"type:decimal(12,2)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Savings is the "you save" amount shown next to the price.
func (p *Product) Savings() decimal.Decimal {
	s := p.OriginalPrice.Sub(p.Price)
	if s.IsNegative() {
		return decimal.Zero
	}
	return s
}

func (p *Product) DiscountPercent() int64 {
	if !p.OriginalPrice.IsPositive() {
		return 0
	}
	return p.Savings().Div(p.OriginalPrice).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

type PaymentMethod struct {
	ID           string `gorm:"primaryKey;size:32;not null"` // upi, cards, netbanking
	Name         string `gorm:"size:64;not null"`
	Icon         string `gorm:"size:32"`
	Description  string `gorm:"size:255"`
	GatewayModes string `gorm:"size:64;not null"` // cashfree paymentModes codes, comma separated
	Position     int    `gorm:"not null;default:0"`
	CreatedAt    time.Time
}

func (m *PaymentMethod) Modes() []string {
	return strings.Split(m.GatewayModes, ",")
}
