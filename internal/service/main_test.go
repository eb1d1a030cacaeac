package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"ebook-checkout/internal/client"
	"ebook-checkout/internal/config"
	"ebook-checkout/internal/repository"

	"github.com/caarlos0/env/v10"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestConfig(t *testing.T, vars map[string]string) *config.Config {
	t.Helper()

	base := map[string]string{
		"BASE_URL":               "https://shop.example.com",
		"CASHFREE_APP_ID":        "CF123",
		"CASHFREE_DEMO_DELAY":    "1ms",
		"POPUP_POLL_INTERVAL":    "5ms",
		"POPUP_TIMEOUT":          "2s",
		"POPUP_OPEN_ACK_TIMEOUT": "1s",
		"POPUP_CONFIRM_TIMEOUT":  "1s",
		"POPUP_RETENTION":        "1m",
	}
	for k, v := range vars {
		base[k] = v
	}

	cfg := &config.Config{}
	require.NoError(t, env.ParseWithOptions(cfg, env.Options{Environment: base}))
	return cfg
}

func newTestCatalog(t *testing.T, cfg *config.Config) CatalogService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := client.InitDBClient(&config.Database{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	catalog := NewCatalogService(
		cfg.Product,
		repository.NewProductRepository(db),
		repository.NewPaymentMethodRepository(db),
	)
	require.NoError(t, catalog.Seed(context.Background()))
	return catalog
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 2*time.Millisecond)
}
