package commands_test

import (
	"errors"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	uow        *MockUoW
	publisher  *MockEventPublisher
	handler    commands.CreateOrderCommandHandler
	customerID kernel.UUID
	mug        *product.Product
	towel      *product.Product
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	policy, err := services.NewDeliveryFeePolicy(dec("5.00"), decimal.Zero)
	require.NoError(t, err)

	f := &checkoutFixture{
		uow:        newMockUoW(),
		publisher:  new(MockEventPublisher),
		customerID: kernel.NewUUID(),
		mug:        newProduct(t, "Mug", "20.00", 10),
		towel:      newProduct(t, "Towel", "15.00", 10),
	}
	f.handler = commands.NewCreateOrderCommandHandler(
		checkoutFactory{uow: f.uow},
		services.NewOrderPricer(policy),
		f.publisher,
		clock.NewFixed(now),
		discardLogger,
		nil,
	)
	return f
}

// command orders Mug×2 (as two lines of one) and Towel×1 for a 5.00 fee.
func (f *checkoutFixture) command(t *testing.T, addressID kernel.UUID, expectedTotal string) commands.CreateOrderCommand {
	t.Helper()

	var items []cart.Item
	for _, line := range []struct {
		id  kernel.UUID
		qty int
	}{{f.mug.ID(), 1}, {f.towel.ID(), 1}, {f.mug.ID(), 1}} {
		item, err := cart.NewItem(line.id, line.qty)
		require.NoError(t, err)
		items = append(items, item)
	}

	in := commands.CreateOrderInput{
		OrderID:           kernel.NewUUID(),
		CustomerID:        f.customerID,
		ShippingAddressID: addressID,
		Items:             items,
		DeliveryFee:       dec("5.00"),
		PaymentMethod:     "cash",
	}
	if expectedTotal != "" {
		total := dec(expectedTotal)
		in.ExpectedTotal = &total
	}

	cmd, err := commands.NewCreateOrderCommand(in)
	require.NoError(t, err)
	return cmd
}

func (f *checkoutFixture) expectReads(t *testing.T) kernel.UUID {
	t.Helper()

	address := newAddress(t, f.customerID)
	f.uow.customers.On("GetAddress", mock.Anything, address.ID()).Return(address, nil).Once()
	f.uow.products.On("GetMany", mock.Anything, []kernel.UUID{f.mug.ID(), f.towel.ID()}).
		Return([]*product.Product{f.towel, f.mug}, nil).Once()
	return address.ID()
}

func isItem(productID kernel.UUID, qty int) any {
	return mock.MatchedBy(func(item order.Item) bool {
		return item.ProductID().IsEqual(productID) && item.Quantity() == qty
	})
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t)
	addressID := f.expectReads(t)
	cmd := f.command(t, addressID, "60.00")

	var written *order.Order
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { written = args.Get(1).(*order.Order) }).
			Return(nil).Once(),
		f.uow.products.On("DecrementStock", ctx, f.mug.ID(), 2).Return(nil).Once(),
		f.uow.orders.On("AddItem", ctx, cmd.OrderID(), isItem(f.mug.ID(), 2)).Return(nil).Once(),
		f.uow.products.On("DecrementStock", ctx, f.towel.ID(), 1).Return(nil).Once(),
		f.uow.orders.On("AddItem", ctx, cmd.OrderID(), isItem(f.towel.ID(), 1)).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.carts.On("Clear", ctx, f.customerID).Return(nil).Once(),
	)
	f.publisher.On("Publish", ctx, mock.MatchedBy(func(e order.Event) bool {
		return e.Type == order.EventCreated && e.OrderID.IsEqual(cmd.OrderID())
	})).Return(nil).Once()

	err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, written)
	assert.True(t, dec("60.00").Equal(written.TotalAmount()), written.TotalAmount().String())
	assert.True(t, dec("5.00").Equal(written.DeliveryFee()))
	assert.Equal(t, order.PendingConfirmation, written.Status())
	assert.Equal(t, now, written.OrderDate())
	assert.Equal(t, 2, written.ExpectedItems())
	assert.Equal(t, "Mug", written.Items()[0].ProductName())
	f.uow.AssertAll(t)
	f.publisher.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CompensatesWhenSecondItemFails(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t)
	addressID := f.expectReads(t)
	cmd := f.command(t, addressID, "")

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		f.uow.products.On("DecrementStock", ctx, f.mug.ID(), 2).Return(nil).Once(),
		f.uow.orders.On("AddItem", ctx, cmd.OrderID(), isItem(f.mug.ID(), 2)).Return(nil).Once(),
		f.uow.products.On("DecrementStock", ctx, f.towel.ID(), 1).Return(nil).Once(),
		f.uow.orders.On("AddItem", ctx, cmd.OrderID(), isItem(f.towel.ID(), 1)).
			Return(errors.New("connection reset by peer")).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	err := f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrCompensatedCreation)
	var compensated *errs.CompensatedCreationError
	require.ErrorAs(t, err, &compensated)
	assert.Contains(t, compensated.Cause.Error(), "connection reset by peer")
	f.uow.AssertAll(t)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.uow.carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_StockLostToConcurrentCheckout(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t)
	addressID := f.expectReads(t)
	cmd := f.command(t, addressID, "")

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		f.uow.products.On("DecrementStock", ctx, f.mug.ID(), 2).
			Return(errs.NewInsufficientStockError(f.mug.ID(), 2, 1)).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	err := f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInsufficientStock)
	assert.True(t, errs.IsValidation(err))
	f.uow.AssertAll(t)
}

func TestCreateOrderCommandHandler_Handle_CompensationFailureStillReported(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t)
	addressID := f.expectReads(t)
	cmd := f.command(t, addressID, "")

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.orders.On("Add", ctx, mock.Anything).Return(errors.New("insert failed")).Once()
	f.uow.On("Rollback", ctx).Return(errors.New("delete failed")).Once()

	err := f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrCompensatedCreation)
	f.uow.AssertAll(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationBeforeWrites(t *testing.T) {
	t.Run("insufficient stock", func(t *testing.T) {
		ctx := t.Context()
		f := newCheckoutFixture(t)
		f.mug = newProduct(t, "Mug", "20.00", 1)
		addressID := f.expectReads(t)

		err := f.handler.Handle(ctx, f.command(t, addressID, ""))

		require.ErrorIs(t, err, errs.ErrInsufficientStock)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("expected total mismatch is never corrected", func(t *testing.T) {
		ctx := t.Context()
		f := newCheckoutFixture(t)
		addressID := f.expectReads(t)

		err := f.handler.Handle(ctx, f.command(t, addressID, "59.99"))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "order total is 60.00")
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("delivery fee differs from policy", func(t *testing.T) {
		ctx := t.Context()
		f := newCheckoutFixture(t)
		policy, err := services.NewDeliveryFeePolicy(dec("5.00"), dec("50.00"))
		require.NoError(t, err)
		f.handler = commands.NewCreateOrderCommandHandler(checkoutFactory{uow: f.uow},
			services.NewOrderPricer(policy), f.publisher, clock.NewFixed(now), discardLogger, nil)
		addressID := f.expectReads(t)

		err = f.handler.Handle(ctx, f.command(t, addressID, ""))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "deliveryFee")
	})

	t.Run("unknown product", func(t *testing.T) {
		ctx := t.Context()
		f := newCheckoutFixture(t)
		address := newAddress(t, f.customerID)
		f.uow.customers.On("GetAddress", mock.Anything, address.ID()).Return(address, nil).Once()
		f.uow.products.On("GetMany", mock.Anything, mock.Anything).
			Return([]*product.Product{f.mug}, nil).Once()

		err := f.handler.Handle(ctx, f.command(t, address.ID(), ""))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Contains(t, err.Error(), f.towel.ID().String())
	})

	t.Run("address of another customer", func(t *testing.T) {
		ctx := t.Context()
		f := newCheckoutFixture(t)
		foreign := newAddress(t, kernel.NewUUID())
		f.uow.customers.On("GetAddress", mock.Anything, foreign.ID()).Return(foreign, nil).Once()

		err := f.handler.Handle(ctx, f.command(t, foreign.ID(), ""))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		f.uow.products.AssertNotCalled(t, "GetMany", mock.Anything, mock.Anything)
	})
}

func TestCreateOrderCommandHandler_Handle_CartClearFailureIsNotFatal(t *testing.T) {
	ctx := t.Context()
	f := newCheckoutFixture(t)
	addressID := f.expectReads(t)
	cmd := f.command(t, addressID, "")

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.orders.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.uow.products.On("DecrementStock", ctx, mock.Anything, mock.Anything).Return(nil).Twice()
	f.uow.orders.On("AddItem", ctx, cmd.OrderID(), mock.Anything).Return(nil).Twice()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.carts.On("Clear", ctx, f.customerID).Return(errors.New("timeout")).Once()
	f.publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker down")).Once()

	require.NoError(t, f.handler.Handle(ctx, cmd))
	f.uow.AssertAll(t)
	f.publisher.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_NotConstructed(t *testing.T) {
	f := newCheckoutFixture(t)

	err := f.handler.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}
