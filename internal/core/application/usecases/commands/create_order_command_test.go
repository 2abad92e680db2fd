package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	productID := kernel.NewUUID()
	one, err := cart.NewItem(productID, 1)
	require.NoError(t, err)
	two, err := cart.NewItem(productID, 2)
	require.NoError(t, err)

	valid := func() commands.CreateOrderInput {
		return commands.CreateOrderInput{
			OrderID:           kernel.NewUUID(),
			CustomerID:        kernel.NewUUID(),
			ShippingAddressID: kernel.NewUUID(),
			Items:             []cart.Item{one, two},
			DeliveryFee:       dec("5.00"),
			PaymentMethod:     "cod",
		}
	}

	t.Run("should merge duplicated products", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(valid())

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		require.Len(t, cmd.Items(), 1)
		assert.Equal(t, 3, cmd.Items()[0].Quantity())
		assert.Equal(t, order.CashOnDelivery, cmd.PaymentMethod())
		assert.Nil(t, cmd.ExpectedTotal())
	})

	t.Run("should reject an empty cart", func(t *testing.T) {
		in := valid()
		in.Items = nil

		_, err := commands.NewCreateOrderCommand(in)

		require.ErrorIs(t, err, commands.ErrCartIsEmpty)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "cart is empty")
	})

	t.Run("should reject a negative fee and an unknown payment method", func(t *testing.T) {
		in := valid()
		in.DeliveryFee = dec("-5")
		in.PaymentMethod = "barter"

		_, err := commands.NewCreateOrderCommand(in)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject missing identifiers", func(t *testing.T) {
		in := valid()
		in.CustomerID = kernel.UUID{}

		_, err := commands.NewCreateOrderCommand(in)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "customerId")
	})

	t.Run("should keep the expected total", func(t *testing.T) {
		in := valid()
		total := dec("65.00")
		in.ExpectedTotal = &total

		cmd, err := commands.NewCreateOrderCommand(in)

		require.NoError(t, err)
		require.NotNil(t, cmd.ExpectedTotal())
		assert.True(t, total.Equal(*cmd.ExpectedTotal()))
	})

	t.Run("should reject the zero value", func(t *testing.T) {
		require.ErrorIs(t, commands.CreateOrderCommand{}.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
