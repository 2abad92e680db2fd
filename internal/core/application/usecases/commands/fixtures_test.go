package commands_test

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/product"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newProduct(t *testing.T, name, price string, stock int) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), name, dec(price), stock)
	require.NoError(t, err)
	return p
}

func newAddress(t *testing.T, customerID kernel.UUID) *customer.Address {
	t.Helper()
	a, err := customer.NewAddress(kernel.NewUUID(), customerID, order.ShippingAddressFields{
		RecipientName: "Dewi", Line1: "Jl. Braga 1", City: "Bandung", Country: "ID",
	})
	require.NoError(t, err)
	return a
}

// placedOrder builds the reference order: Mug 20.00×2, Towel 15.00×1, fee 5.00.
func placedOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	customerID := kernel.NewUUID()
	ship, err := newAddress(t, customerID).ToShippingAddress()
	require.NoError(t, err)

	mug, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Mug", 2, dec("20.00"))
	require.NoError(t, err)
	towel, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Towel", 1, dec("15.00"))
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), customerID, ship, []order.Item{mug, towel},
		dec("5.00"), order.CashOnDelivery, "", now.Add(-24*time.Hour))
	require.NoError(t, err)

	if status == o.Status() {
		return o
	}
	restored, err := order.RestoreOrder(order.State{
		ID:              o.ID(),
		CustomerID:      o.CustomerID(),
		ShippingAddress: o.ShippingAddress(),
		Items:           o.Items(),
		DeliveryFee:     o.DeliveryFee(),
		TotalAmount:     o.TotalAmount(),
		PaymentMethod:   o.PaymentMethod(),
		Status:          status,
		OrderDate:       o.OrderDate(),
		ExpectedItems:   o.ExpectedItems(),
	})
	require.NoError(t, err)
	return restored
}

// partialOrder is the reference order in status with only its first persisted
// items written, as seen while creation runs or after it was interrupted.
func partialOrder(t *testing.T, persisted int, status order.Status) *order.Order {
	t.Helper()
	o := placedOrder(t, order.PendingConfirmation)

	partial, err := order.RestoreOrder(order.State{
		ID:              o.ID(),
		CustomerID:      o.CustomerID(),
		ShippingAddress: o.ShippingAddress(),
		Items:           o.Items()[:persisted],
		DeliveryFee:     o.DeliveryFee(),
		TotalAmount:     o.TotalAmount(),
		PaymentMethod:   o.PaymentMethod(),
		Status:          status,
		OrderDate:       o.OrderDate(),
		ExpectedItems:   o.ExpectedItems(),
	})
	require.NoError(t, err)
	require.False(t, partial.IsComplete())
	return partial
}
