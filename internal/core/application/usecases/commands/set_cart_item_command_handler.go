package commands

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

type SetCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewSetCartItemCommandHandler(uowFactory CartUoWFactory) SetCartItemCommandHandler {
	return SetCartItemCommandHandler{uowFactory: uowFactory}
}

// Handle creates the cart on first use. Adding a product that does not exist
// returns *errs.ObjectNotFoundError; removing one always succeeds so that
// carts can be cleaned of discontinued products.
func (h SetCartItemCommandHandler) Handle(ctx context.Context, cmd SetCartItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	if cmd.Quantity() > 0 {
		if _, err := uow.ProductRepository().Get(ctx, cmd.ProductID()); err != nil {
			return err
		}
	}

	c, err := uow.CartRepository().GetByCustomer(ctx, cmd.CustomerID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		if cmd.Quantity() == 0 {
			return nil
		}
		if c, err = cart.NewCart(kernel.NewUUID(), cmd.CustomerID()); err != nil {
			return err
		}
	case err != nil:
		return err
	}

	if err = c.SetQuantity(cmd.ProductID(), cmd.Quantity()); err != nil {
		return err
	}
	if err = uow.CartRepository().Save(ctx, c); err != nil {
		return fmt.Errorf("save cart of customer %s: %w", cmd.CustomerID(), err)
	}
	return nil
}
