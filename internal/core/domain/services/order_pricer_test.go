package services_test

import (
	"testing"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDeliveryFeePolicy_FeeFor(t *testing.T) {
	policy, err := services.NewDeliveryFeePolicy(dec("5.00"), dec("100.00"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		subtotal string
		want     string
	}{
		{name: "empty cart pays nothing", subtotal: "0", want: "0"},
		{name: "below threshold pays flat fee", subtotal: "55.00", want: "5.00"},
		{name: "at threshold ships free", subtotal: "100.00", want: "0"},
		{name: "above threshold ships free", subtotal: "150.10", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.FeeFor(dec(tt.subtotal))
			assert.True(t, dec(tt.want).Equal(got), got.String())
		})
	}

	t.Run("zero threshold never ships free", func(t *testing.T) {
		flat, err := services.NewDeliveryFeePolicy(dec("5.00"), decimal.Zero)
		require.NoError(t, err)
		assert.True(t, dec("5.00").Equal(flat.FeeFor(dec("10000.00"))))
	})

	t.Run("negative fee is rejected", func(t *testing.T) {
		_, err := services.NewDeliveryFeePolicy(dec("-1"), decimal.Zero)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestOrderPricer_Price(t *testing.T) {
	policy, err := services.NewDeliveryFeePolicy(dec("5.00"), decimal.Zero)
	require.NoError(t, err)
	pricer := services.NewOrderPricer(policy)

	t.Run("should price the reference basket", func(t *testing.T) {
		mug, err := product.NewProduct(kernel.NewUUID(), "Mug", dec("20.00"), 10)
		require.NoError(t, err)
		towel, err := product.NewProduct(kernel.NewUUID(), "Towel", dec("15.00"), 10)
		require.NoError(t, err)

		quote, err := pricer.Price([]services.QuoteLine{services.LineFor(mug, 2), services.LineFor(towel, 1)})

		require.NoError(t, err)
		require.Len(t, quote.Lines, 2)
		assert.True(t, dec("40.00").Equal(quote.Lines[0].LineTotal))
		assert.Equal(t, "Mug", quote.Lines[0].ProductName)
		assert.True(t, dec("55.00").Equal(quote.Subtotal))
		assert.True(t, dec("5.00").Equal(quote.DeliveryFee))
		assert.True(t, dec("60.00").Equal(quote.Total))
	})

	t.Run("should return a zero quote for no lines", func(t *testing.T) {
		quote, err := pricer.Price(nil)

		require.NoError(t, err)
		assert.Empty(t, quote.Lines)
		assert.True(t, quote.Subtotal.IsZero())
		assert.True(t, quote.DeliveryFee.IsZero())
		assert.True(t, quote.Total.IsZero())
	})

	t.Run("should reject non-positive quantities", func(t *testing.T) {
		_, err := pricer.Price([]services.QuoteLine{{ProductID: kernel.NewUUID(), UnitPrice: dec("1.00")}})

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
