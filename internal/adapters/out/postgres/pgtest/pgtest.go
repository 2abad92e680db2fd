// Package pgtest starts a disposable PostgreSQL with the order engine schema
// for integration suites.
package pgtest

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	adapter "storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/customerrepo"
	"storefront/internal/adapters/out/postgres/productrepo"
	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/domain/model/product"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrInjected is returned by writes failed on purpose.
var ErrInjected = errors.New("injected failure")

type Database struct {
	container *postgres.PostgresContainer
	DB        *gorm.DB
}

func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, errors.Join(err, container.Terminate(ctx))
	}

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, errors.Join(err, container.Terminate(ctx))
	}
	if err = adapter.Migrate(db); err != nil {
		return nil, errors.Join(err, container.Terminate(ctx))
	}

	return &Database{container: container, DB: db}, nil
}

func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.container == nil {
		return nil
	}
	return d.container.Terminate(ctx)
}

// Truncate empties every table.
func (d *Database) Truncate() error {
	return d.DB.Exec(
		"TRUNCATE TABLE documents, order_items, orders, cart_items, carts, addresses, customers, products CASCADE",
	).Error
}

func (d *Database) SeedProduct(ctx context.Context, p *product.Product) error {
	dto := productrepo.FromDomain(p)
	return d.DB.WithContext(ctx).Create(&dto).Error
}

func (d *Database) SeedCustomer(ctx context.Context, c *customer.Customer, addresses ...*customer.Address) error {
	dto := customerrepo.CustomerFromDomain(c)
	if err := d.DB.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	for _, a := range addresses {
		addressDTO := customerrepo.AddressFromDomain(a)
		if err := d.DB.WithContext(ctx).Create(&addressDTO).Error; err != nil {
			return err
		}
	}
	return nil
}

// Stock reads the current stock of a product, bypassing the repositories.
func (d *Database) Stock(ctx context.Context, p *product.Product) (int, error) {
	var stock int
	err := d.DB.WithContext(ctx).Raw("SELECT stock FROM products WHERE id = ?", p.ID().Bytes()).Scan(&stock).Error
	return stock, err
}

// Count returns the number of rows in table.
func (d *Database) Count(ctx context.Context, table string) (int64, error) {
	var n int64
	err := d.DB.WithContext(ctx).Table(table).Count(&n).Error
	return n, err
}

// FailNthInsert makes the nth INSERT into table fail with ErrInjected. The
// returned function removes the fault.
func (d *Database) FailNthInsert(table string, n int32) (func(), error) {
	name := fmt.Sprintf("pgtest:fail_insert_%s_%d", table, n)

	var calls atomic.Int32
	err := d.DB.Callback().Create().Before("gorm:create").Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table != table {
			return
		}
		if calls.Add(1) == n {
			_ = tx.AddError(ErrInjected)
		}
	})
	if err != nil {
		return nil, err
	}
	return func() { _ = d.DB.Callback().Create().Remove(name) }, nil
}
