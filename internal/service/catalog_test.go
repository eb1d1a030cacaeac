package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_GetProduct_YouSave(t *testing.T) {
	cfg := newTestConfig(t, map[string]string{
		"PRODUCT_PRICE":          "999",
		"PRODUCT_ORIGINAL_PRICE": "1499",
	})
	catalog := newTestCatalog(t, cfg)

	product, err := catalog.GetProduct(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "AI YouTube Automation Ebook", product.Name)
	assert.Equal(t, "INR", product.Currency)
	assert.Equal(t, "999", product.Price)
	assert.Equal(t, "1499", product.OriginalPrice)
	assert.Equal(t, "500", product.Savings)
	assert.Equal(t, "₹500", product.SavingsFormatted)
	assert.Equal(t, "₹1,499", product.OriginalPriceFormatted)
	assert.Equal(t, "₹70,000", product.BonusValueFormatted)
	assert.Equal(t, int64(33), product.DiscountPercent)
}

func TestCatalogService_ListPaymentMethods(t *testing.T) {
	catalog := newTestCatalog(t, newTestConfig(t, nil))

	methods, err := catalog.ListPaymentMethods(context.Background())

	require.NoError(t, err)
	require.Len(t, methods, 3)
	assert.Equal(t, "UPI", methods[0].Name)
	assert.Equal(t, []string{"upi"}, methods[0].Modes)
}

func TestCatalogService_ValidateAmount(t *testing.T) {
	catalog := newTestCatalog(t, newTestConfig(t, map[string]string{"PRODUCT_PRICE": "799"}))
	ctx := context.Background()

	ok, err := catalog.ValidateAmount(ctx, decimal.NewFromInt(799))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = catalog.ValidateAmount(ctx, decimal.RequireFromString("799.00"))
	require.NoError(t, err)
	assert.True(t, ok)

	for _, amount := range []int64{798, 800, 0} {
		ok, err = catalog.ValidateAmount(ctx, decimal.NewFromInt(amount))
		require.NoError(t, err)
		assert.False(t, ok, amount)
	}
}
