package kernel_test

import (
	"testing"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAmount(t *testing.T) {
	t.Run("accepts cents and normalises scale", func(t *testing.T) {
		amount, err := kernel.NewAmount("price", decimal.RequireFromString("20"))
		require.NoError(t, err)
		assert.True(t, amount.Equal(decimal.RequireFromString("20.00")))
		assert.Equal(t, "20.00", amount.StringFixed(kernel.MoneyPlaces))
	})

	t.Run("accepts zero", func(t *testing.T) {
		_, err := kernel.NewAmount("deliveryFee", decimal.Zero)
		require.NoError(t, err)
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := kernel.NewAmount("deliveryFee", decimal.RequireFromString("-0.01"))
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects sub-cent precision", func(t *testing.T) {
		_, err := kernel.NewAmount("price", decimal.RequireFromString("1.005"))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "fractional digits")
	})
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, "40.00", kernel.LineTotal(decimal.RequireFromString("20.00"), 2).StringFixed(2))
	assert.Equal(t, "0.30", kernel.LineTotal(decimal.RequireFromString("0.10"), 3).StringFixed(2))
}
