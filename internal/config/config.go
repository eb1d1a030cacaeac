package config

import (
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string   `env:"BASE_URL" envDefault:"http://localhost:8080"`
	Database    Database `envPrefix:"DB_"`

	Cashfree Cashfree `envPrefix:"CASHFREE_"`
	Product  Product  `envPrefix:"PRODUCT_"`
	Popup    Popup    `envPrefix:"POPUP_"`
	URLs     URLs     `envPrefix:"URL_"`
}

type Cashfree struct {
	AppID        string `env:"APP_ID"`
	Environment  string `env:"ENVIRONMENT" envDefault:"sandbox"` // sandbox or production
	PaymentModes string `env:"PAYMENT_MODES" envDefault:"cc,dc,nb,upi,wallet"`
	AllowDemo    bool   `env:"ALLOW_DEMO" envDefault:"false"`

	DemoDelay time.Duration `env:"DEMO_DELAY" envDefault:"3s"`
}

type Product struct {
	ID            string          `env:"ID" envDefault:"youtube-automation-ebook"`
	Name          string          `env:"NAME" envDefault:"AI YouTube Automation Ebook"`
	Description   string          `env:"DESCRIPTION" envDefault:"Complete system for building six-figure faceless YouTube channels"`
	Price         decimal.Decimal `env:"PRICE" envDefault:"999"`
	OriginalPrice decimal.Decimal `env:"ORIGINAL_PRICE" envDefault:"1499"`
	BonusValue    decimal.Decimal `env:"BONUS_VALUE" envDefault:"70000"`
}

type Popup struct {
	PollInterval   time.Duration `env:"POLL_INTERVAL" envDefault:"2s"`
	Timeout        time.Duration `env:"TIMEOUT" envDefault:"15m"`
	OpenAckTimeout time.Duration `env:"OPEN_ACK_TIMEOUT" envDefault:"30s"`
	ConfirmTimeout time.Duration `env:"CONFIRM_TIMEOUT" envDefault:"5m"`
	Retention      time.Duration `env:"RETENTION" envDefault:"10m"`
	WindowName     string        `env:"WINDOW_NAME" envDefault:"cashfree_payment"`
	WindowFeatures string        `env:"WINDOW_FEATURES" envDefault:"width=900,height=700,scrollbars=yes,resizable=yes,toolbar=no,location=yes"`
}

type URLs struct {
	Success string `env:"SUCCESS" envDefault:"/success"`
	Failure string `env:"FAILURE" envDefault:"/payment-failed"`
	Cancel  string `env:"CANCEL" envDefault:"/payment-cancelled"`
}

type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"` // sqlite or mysql
	DSN    string `env:"DSN" envDefault:"checkout.db"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
