package ports

import (
	"context"
	"errors"
)

// ErrNoActiveUnitOfWork is returned by Commit and Rollback outside Begin.
var ErrNoActiveUnitOfWork = errors.New("unit of work is not active")

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the boundary of a multi-step business operation.
//
// The store offers no multi-statement transaction, so the unit of work does
// not hold one. Instead every write made through its repositories between
// Begin and Commit records an inverse operation. Rollback applies those
// inverses newest first; Commit forgets them. Writes made outside Begin are
// not recorded.
type UnitOfWork interface {
	// Begin starts recording compensations.
	Begin(ctx context.Context) error

	// Commit discards the recorded compensations.
	Commit(ctx context.Context) error

	// Rollback runs the recorded compensations in reverse order and returns
	// the joined errors of those that failed. It keeps going after a failure.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	ProductRepository() ProductRepository
	CartRepository() CartRepository
	CustomerRepository() CustomerRepository
}
