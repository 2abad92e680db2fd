package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/product"
)

// ProductRepository is the stock ledger accessor. Stock changes are
// conditional single-statement updates; stock never goes below zero.
type ProductRepository interface {
	// Get returns *errs.ObjectNotFoundError for unknown products.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetMany returns the products that exist among ids. Missing ids are
	// simply absent from the result.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error)

	// DecrementStock takes quantity units if at least that many are available.
	// Returns *errs.InsufficientStockError or *errs.ObjectNotFoundError otherwise.
	DecrementStock(ctx context.Context, id kernel.UUID, quantity int) error

	// IncrementStock returns quantity units. It reports false when the product
	// no longer exists.
	IncrementStock(ctx context.Context, id kernel.UUID, quantity int) (bool, error)
}
