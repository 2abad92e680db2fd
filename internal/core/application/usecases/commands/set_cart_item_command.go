package commands

import (
	"errors"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrSetCartItemCommandIsNotConstructed = errors.New(
	"SetCartItemCommand must be created via NewSetCartItemCommand constructor",
)

// SetCartItemCommand sets how many units of a product sit in a customer's
// cart. A zero quantity removes the line.
type SetCartItemCommand struct {
	customerID kernel.UUID
	productID  kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

func NewSetCartItemCommand(customerID, productID kernel.UUID, quantity int) (SetCartItemCommand, error) {
	var quantityErr error
	if quantity < 0 || quantity > cart.MaxQuantity {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 0, cart.MaxQuantity)
	}

	if err := errors.Join(
		customerID.Validate(),
		productID.Validate(),
		quantityErr,
	); err != nil {
		return SetCartItemCommand{}, err
	}

	return SetCartItemCommand{
		customerID: customerID,
		productID:  productID,
		quantity:   quantity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c SetCartItemCommand) Validate() error {
	return c.guard.Validate(ErrSetCartItemCommandIsNotConstructed)
}

func (c SetCartItemCommand) CustomerID() kernel.UUID { return c.customerID }
func (c SetCartItemCommand) ProductID() kernel.UUID { return c.productID }
func (c SetCartItemCommand) Quantity() int { return c.quantity }
