package ports

import (
	"context"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/domain/model/kernel"
)

type CartRepository interface {
	// GetByCustomer returns *errs.ObjectNotFoundError when the customer has no cart yet.
	GetByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error)

	// Save creates the cart on first use and replaces its lines.
	Save(ctx context.Context, c *cart.Cart) error

	// Clear removes every line of the customer's cart. A missing cart is not an error.
	Clear(ctx context.Context, customerID kernel.UUID) error
}

// CustomerRepository reads customers and their address books.
type CustomerRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
	GetAddress(ctx context.Context, id kernel.UUID) (*customer.Address, error)
}
