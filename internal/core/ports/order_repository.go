// Package ports defines the contracts between the order engine and the outside
// world: persistence, rendering, archiving, event delivery and idempotency.
// Application code depends only on these interfaces.
package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every method is a single row-level statement; multi-step writes are made
// consistent by the UnitOfWork that issued the repository.
type OrderRepository interface {
	// Add inserts the order header only. Items are written one by one with
	// AddItem so that a failure part-way can be compensated.
	Add(ctx context.Context, aggregate *order.Order) error

	// AddItem inserts one line of an existing order.
	AddItem(ctx context.Context, orderID kernel.UUID, item order.Item) error

	// Get returns the header with all persisted items.
	// Returns *errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetHeader returns the order without its items.
	GetHeader(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListItems returns the persisted items of an order in insertion order.
	ListItems(ctx context.Context, orderID kernel.UUID) ([]order.Item, error)

	// UpdateStatus writes target only if the stored status still equals
	// expected. It reports false when another writer got there first or the
	// order no longer exists.
	//
	// Example:
	//   ok, err := repo.UpdateStatus(ctx, id, order.Confirmed, order.Cancelled)
	//   if err == nil && !ok {
	//       // re-read and re-validate
	//   }
	UpdateStatus(ctx context.Context, id kernel.UUID, expected, target order.Status) (bool, error)

	// SetDocumentURL stores the archived invoice location.
	SetDocumentURL(ctx context.Context, id kernel.UUID, url string) error

	// FindIncomplete returns orders placed before the cutoff that hold fewer
	// items than they were created with, oldest first.
	FindIncomplete(ctx context.Context, placedBefore time.Time, limit int) ([]*order.Order, error)

	// Delete removes the items and then the header of an order.
	Delete(ctx context.Context, id kernel.UUID) error
}
