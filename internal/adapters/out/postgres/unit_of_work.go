// Package postgres provides the GORM-based unit of work of the order engine.
//
// The store is used through single-statement, row-level operations only, so
// the unit of work holds no database transaction. Between Begin and Commit
// every write made through its repositories records an inverse operation;
// Rollback applies the inverses newest first.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return errors.Join(err, uow.Rollback(ctx))
//	}
//	if err := uow.ProductRepository().DecrementStock(ctx, productID, 2); err != nil {
//	    // deletes the header written above
//	    return errors.Join(err, uow.Rollback(ctx))
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance keeps its own compensation log
//   - Repositories of one instance may be used from several goroutines
//   - Inverses are conditional updates; a row changed by someone else in the
//     meantime makes the inverse fail rather than corrupt it
package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront/internal/adapters/out/postgres/cartrepo"
	"storefront/internal/adapters/out/postgres/customerrepo"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/productrepo"
	"storefront/internal/core/ports"

	"gorm.io/gorm"
)

// DefaultRollbackTimeout bounds the time spent applying compensations. They
// run even when the request context was already cancelled.
const DefaultRollbackTimeout = 10 * time.Second

type compensation struct {
	step string
	undo func(ctx context.Context) error
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db              *gorm.DB
	rollbackTimeout time.Duration
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, rollbackTimeout: DefaultRollbackTimeout}
}

// Create produces a new unit of work with an empty compensation log.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:              f.db,
		rollbackTimeout: f.rollbackTimeout,
	}
}

// GormUnitOfWork records compensations for the writes of one business
// operation.
type GormUnitOfWork struct {
	db              *gorm.DB
	rollbackTimeout time.Duration

	mu            sync.Mutex
	active        bool
	compensations []compensation
}

// Begin starts recording. Calling it again while active is a no-op.
func (uow *GormUnitOfWork) Begin(_ context.Context) error {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	if uow.active {
		return nil
	}
	uow.active = true
	uow.compensations = uow.compensations[:0]
	return nil
}

// Commit forgets the recorded compensations.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	if !uow.active {
		return ports.ErrNoActiveUnitOfWork
	}
	uow.active = false
	uow.compensations = nil
	return nil
}

// Rollback applies the recorded compensations newest first. A failing
// compensation does not stop the remaining ones; all failures are joined.
func (uow *GormUnitOfWork) Rollback(ctx context.Context) error {
	uow.mu.Lock()
	if !uow.active {
		uow.mu.Unlock()
		return ports.ErrNoActiveUnitOfWork
	}
	pending := uow.compensations
	uow.compensations = nil
	uow.active = false
	uow.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uow.rollbackTimeout)
	defer cancel()

	var errs []error
	for i := len(pending) - 1; i >= 0; i-- {
		if err := pending[i].undo(ctx); err != nil {
			errs = append(errs, fmt.Errorf("undo %s: %w", pending[i].step, err))
		}
	}
	return errors.Join(errs...)
}

// Compensate records the inverse of a write that just succeeded. Outside
// Begin nothing is recorded.
func (uow *GormUnitOfWork) Compensate(step string, undo func(ctx context.Context) error) {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	if !uow.active {
		return
	}
	uow.compensations = append(uow.compensations, compensation{step: step, undo: undo})
}

// Pending returns the number of recorded compensations.
func (uow *GormUnitOfWork) Pending() int {
	uow.mu.Lock()
	defer uow.mu.Unlock()
	return len(uow.compensations)
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.db, uow)
}

func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return productrepo.NewGormProductRepository(uow.db, uow)
}

func (uow *GormUnitOfWork) CartRepository() ports.CartRepository {
	return cartrepo.NewGormCartRepository(uow.db)
}

func (uow *GormUnitOfWork) CustomerRepository() ports.CustomerRepository {
	return customerrepo.NewGormCustomerRepository(uow.db)
}
