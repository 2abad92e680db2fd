package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)

	// ErrCartIsEmpty is returned when an order is submitted without items.
	ErrCartIsEmpty = errs.NewValueIsRequiredErrorWithCause("items", errors.New("cart is empty"))
)

// CreateOrderCommand is a customer's request to turn a set of product lines
// into an order. The caller chooses the order id so that a retried request can
// be recognised.
//
// Example:
//
//	mug, _ := cart.NewItem(mugID, 2)
//	cmd, err := NewCreateOrderCommand(CreateOrderInput{
//	    OrderID:           kernel.NewUUID(),
//	    CustomerID:        customerID,
//	    ShippingAddressID: addressID,
//	    Items:             []cart.Item{mug},
//	    DeliveryFee:       decimal.RequireFromString("5.00"),
//	    PaymentMethod:     "cash",
//	})
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	customerID        kernel.UUID
	shippingAddressID kernel.UUID
	items             []cart.Item
	deliveryFee       decimal.Decimal
	paymentMethod     order.PaymentMethod
	expectedTotal     *decimal.Decimal
	notes             string

	guard guard.ConstructorGuard
}

// CreateOrderInput carries the raw values of a CreateOrderCommand.
type CreateOrderInput struct {
	OrderID           kernel.UUID
	CustomerID        kernel.UUID
	ShippingAddressID kernel.UUID
	Items             []cart.Item
	DeliveryFee       decimal.Decimal
	PaymentMethod     string
	ExpectedTotal     *decimal.Decimal
	Notes             string
}

// NewCreateOrderCommand validates the request shape. Lines for the same
// product are merged; whether products, address and stock exist is checked by
// the handler.
func NewCreateOrderCommand(in CreateOrderInput) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		notes: in.Notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(in.OrderID, in.CustomerID, in.ShippingAddressID),
		cmd.setItems(in.Items),
		cmd.setDeliveryFee(in.DeliveryFee),
		cmd.setPaymentMethod(in.PaymentMethod),
		cmd.setExpectedTotal(in.ExpectedTotal),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c CreateOrderCommand) CustomerID() kernel.UUID { return c.customerID }
func (c CreateOrderCommand) ShippingAddressID() kernel.UUID { return c.shippingAddressID }
func (c CreateOrderCommand) DeliveryFee() decimal.Decimal { return c.deliveryFee }
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }
func (c CreateOrderCommand) ExpectedTotal() *decimal.Decimal { return c.expectedTotal }
func (c CreateOrderCommand) Notes() string { return c.notes }

// Items returns the merged lines.
func (c CreateOrderCommand) Items() []cart.Item {
	out := make([]cart.Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *CreateOrderCommand) setIDs(orderID, customerID, addressID kernel.UUID) error {
	var errList []error
	if err := orderID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("orderId", err))
	}
	if err := customerID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("customerId", err))
	}
	if err := addressID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("shippingAddressId", err))
	}
	if len(errList) > 0 {
		return errors.Join(errList...)
	}

	c.orderID = orderID
	c.customerID = customerID
	c.shippingAddressID = addressID
	return nil
}

func (c *CreateOrderCommand) setItems(items []cart.Item) error {
	if len(items) == 0 {
		return ErrCartIsEmpty
	}
	merged, err := cart.MergeItems(items)
	if err != nil {
		return err
	}
	c.items = merged
	return nil
}

func (c *CreateOrderCommand) setDeliveryFee(fee decimal.Decimal) error {
	amount, err := kernel.NewAmount("deliveryFee", fee)
	if err != nil {
		return err
	}
	c.deliveryFee = amount
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(label string) error {
	method, err := order.NewPaymentMethod(label)
	if err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}

func (c *CreateOrderCommand) setExpectedTotal(total *decimal.Decimal) error {
	if total == nil {
		return nil
	}
	amount, err := kernel.NewAmount("expectedTotal", *total)
	if err != nil {
		return fmt.Errorf("expected total: %w", err)
	}
	c.expectedTotal = &amount
	return nil
}
