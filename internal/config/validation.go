package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	EnvSandbox    = "sandbox"
	EnvProduction = "production"
)

// ErrGatewayNotConfigured is wrapped by every *ConfigError.
var ErrGatewayNotConfigured = errors.New("payment not configured")

// app ids shipped in templates and sample env files
var placeholderAppIDs = map[string]struct{}{
	"":                           {},
	"TEST_APP_ID":                {},
	"your_cashfree_app_id_here":  {},
	"DEMO_APP_ID_NOT_CONFIGURED": {},
}

type Validation struct {
	Valid  bool           `json:"valid"`
	Issues []string       `json:"issues"`
	Config ValidationInfo `json:"config"`
}

type ValidationInfo struct {
	AppID       string `json:"app_id"`
	Environment string `json:"environment"`
	Price       string `json:"price"`
}

type ConfigError struct {
	Issues []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("Payment not configured: %s", strings.Join(e.Issues, ", "))
}

func (e *ConfigError) Unwrap() error {
	return ErrGatewayNotConfigured
}

func IsPlaceholderAppID(appID string) bool {
	_, ok := placeholderAppIDs[strings.TrimSpace(appID)]
	return ok
}

// NormalizeEnvironment maps "PRODUCTION", "Sandbox", ... to the lower-case names.
// Unknown values are returned unchanged.
func NormalizeEnvironment(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case EnvSandbox:
		return EnvSandbox
	case EnvProduction:
		return EnvProduction
	}
	return env
}

func (c *Config) IsProduction() bool {
	return NormalizeEnvironment(c.Cashfree.Environment) == EnvProduction
}

// ValidateGateway reports whether real payments can be initiated with the
// current Cashfree and product settings.
func (c *Config) ValidateGateway() Validation {
	issues := []string{}

	if IsPlaceholderAppID(c.Cashfree.AppID) {
		issues = append(issues, fmt.Sprintf("Cashfree App ID not configured (current: %s)", c.Cashfree.AppID))
	}

	env := strings.TrimSpace(c.Cashfree.Environment)
	switch {
	case env == "":
		issues = append(issues, "Cashfree environment not set")
	case NormalizeEnvironment(env) != EnvSandbox && NormalizeEnvironment(env) != EnvProduction:
		issues = append(issues, fmt.Sprintf("Cashfree environment %q is not supported", env))
	}

	if !c.Product.Price.IsPositive() {
		issues = append(issues, "Product price not configured")
	}

	return Validation{
		Valid:  len(issues) == 0,
		Issues: issues,
		Config: ValidationInfo{
			AppID:       c.Cashfree.AppID,
			Environment: c.Cashfree.Environment,
			Price:       c.Product.Price.String(),
		},
	}
}

// RequireGateway returns a *ConfigError when ValidateGateway is not valid.
func (c *Config) RequireGateway() error {
	v := c.ValidateGateway()
	if v.Valid {
		return nil
	}
	return &ConfigError{Issues: v.Issues}
}
