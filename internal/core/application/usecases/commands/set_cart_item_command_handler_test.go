package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewSetCartItemCommand(t *testing.T) {
	_, err := commands.NewSetCartItemCommand(kernel.NewUUID(), kernel.NewUUID(), 0)
	require.NoError(t, err)

	_, err = commands.NewSetCartItemCommand(kernel.NewUUID(), kernel.NewUUID(), -1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewSetCartItemCommand(kernel.NewUUID(), kernel.NewUUID(), cart.MaxQuantity+1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewSetCartItemCommand(kernel.UUID{}, kernel.NewUUID(), 1)
	require.Error(t, err)
}

func TestSetCartItemCommandHandler_CreatesCartOnFirstUse(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	mug := newProduct(t, "Mug", "20.00", 10)
	customerID := kernel.NewUUID()

	uow.products.On("Get", ctx, mug.ID()).Return(mug, nil).Once()
	uow.carts.On("GetByCustomer", ctx, customerID).
		Return(nil, errs.NewObjectNotFoundError("cart", customerID)).Once()
	uow.carts.On("Save", ctx, mock.MatchedBy(func(c *cart.Cart) bool {
		items := c.Items()
		return c.CustomerID().IsEqual(customerID) && len(items) == 1 &&
			items[0].ProductID().IsEqual(mug.ID()) && items[0].Quantity() == 3
	})).Return(nil).Once()

	cmd, err := commands.NewSetCartItemCommand(customerID, mug.ID(), 3)
	require.NoError(t, err)

	require.NoError(t, commands.NewSetCartItemCommandHandler(cartFactory{uow: uow}).Handle(ctx, cmd))
	uow.AssertAll(t)
}

func TestSetCartItemCommandHandler_RemovesLine(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	customerID := kernel.NewUUID()
	gone := kernel.NewUUID()
	kept := kernel.NewUUID()

	goneItem, err := cart.NewItem(gone, 2)
	require.NoError(t, err)
	keptItem, err := cart.NewItem(kept, 1)
	require.NoError(t, err)
	existing, err := cart.RestoreCart(kernel.NewUUID(), customerID, []cart.Item{goneItem, keptItem})
	require.NoError(t, err)

	uow.carts.On("GetByCustomer", ctx, customerID).Return(existing, nil).Once()
	uow.carts.On("Save", ctx, mock.MatchedBy(func(c *cart.Cart) bool {
		items := c.Items()
		return len(items) == 1 && items[0].ProductID().IsEqual(kept)
	})).Return(nil).Once()

	cmd, err := commands.NewSetCartItemCommand(customerID, gone, 0)
	require.NoError(t, err)

	require.NoError(t, commands.NewSetCartItemCommandHandler(cartFactory{uow: uow}).Handle(ctx, cmd))
	uow.products.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	uow.AssertAll(t)
}

func TestSetCartItemCommandHandler_UnknownProduct(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	productID := kernel.NewUUID()

	uow.products.On("Get", ctx, productID).Return(nil, errs.NewObjectNotFoundError("product", productID)).Once()

	cmd, err := commands.NewSetCartItemCommand(kernel.NewUUID(), productID, 1)
	require.NoError(t, err)

	err = commands.NewSetCartItemCommandHandler(cartFactory{uow: uow}).Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.carts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	uow.AssertAll(t)
}

func TestSetCartItemCommandHandler_RemovingFromMissingCartIsNoop(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	customerID := kernel.NewUUID()

	uow.carts.On("GetByCustomer", ctx, customerID).
		Return(nil, errs.NewObjectNotFoundError("cart", customerID)).Once()

	cmd, err := commands.NewSetCartItemCommand(customerID, kernel.NewUUID(), 0)
	require.NoError(t, err)

	err = commands.NewSetCartItemCommandHandler(cartFactory{uow: uow}).Handle(ctx, cmd)
	assert.NoError(t, err)
	uow.AssertAll(t)
}
