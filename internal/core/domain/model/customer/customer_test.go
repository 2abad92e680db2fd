package customer_test

import (
	"testing"

	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	c, err := customer.NewCustomer(kernel.NewUUID(), " Dewi ", "dewi@example.com")
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	assert.Equal(t, "Dewi", c.Name())

	_, err = customer.NewCustomer(kernel.NewUUID(), "Dewi", "not an email")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	var zero *customer.Customer
	require.ErrorIs(t, zero.Validate(), customer.ErrCustomerIsNotConstructed)
}

func TestAddress(t *testing.T) {
	owner := kernel.NewUUID()
	fields := order.ShippingAddressFields{Line1: "Jl. Braga 1", City: "Bandung", Country: "ID", Phone: "0812"}

	a, err := customer.NewAddress(kernel.NewUUID(), owner, fields)
	require.NoError(t, err)

	assert.True(t, a.BelongsTo(owner))
	assert.False(t, a.BelongsTo(kernel.NewUUID()))

	snapshot, err := a.ToShippingAddress()
	require.NoError(t, err)
	assert.True(t, snapshot.AddressID().IsEqual(a.ID()))
	assert.Equal(t, fields, snapshot.Fields())

	incomplete, err := customer.NewAddress(kernel.NewUUID(), owner, order.ShippingAddressFields{Line1: "x"})
	require.NoError(t, err)
	_, err = incomplete.ToShippingAddress()
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
