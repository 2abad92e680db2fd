// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Multi-step commands run inside a compensating unit of work: every write
// records its inverse, and a failure part-way undoes what was done.
package commands

import (
	"context"

	"storefront/internal/core/ports"
)

// Unit of Work interfaces give each command handler exactly the repositories
// it needs.
type (
	// TxManager drives the compensation log of a unit of work.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	// CheckoutUoW covers order creation: it reads the customer's address,
	// takes stock, writes the order and clears the cart.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   // ... header, stock and items through uow repositories
	//   if err := work(); err != nil {
	//       return errors.Join(err, uow.Rollback(ctx))
	//   }
	//   return uow.Commit(ctx)
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		CartRepoFactory
		CustomerRepoFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// FulfilmentUoW covers status changes and cleanup, which touch orders
	// and stock.
	FulfilmentUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
	}

	FulfilmentUoWFactory interface {
		Create() FulfilmentUoW
	}

	// InvoiceUoW reads orders and customers; the only write is the document
	// reference, which needs no compensation.
	InvoiceUoW interface {
		OrderRepoFactory
		CustomerRepoFactory
	}

	InvoiceUoWFactory interface {
		Create() InvoiceUoW
	}

	// CartUoW edits carts and checks the referenced products.
	CartUoW interface {
		CartRepoFactory
		ProductRepoFactory
	}

	CartUoWFactory interface {
		Create() CartUoW
	}
)
