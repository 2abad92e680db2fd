package productrepo_test

import (
	"context"
	"sync"
	"testing"

	"storefront/internal/adapters/out/postgres/pgtest"
	"storefront/internal/adapters/out/postgres/productrepo"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type undoLog struct {
	mu   sync.Mutex
	undo []func(ctx context.Context) error
}

func (l *undoLog) Compensate(_ string, undo func(ctx context.Context) error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.undo = append(l.undo, undo)
}

type ProductRepositoryTestSuite struct {
	suite.Suite
	pg   *pgtest.Database
	log  *undoLog
	repo *productrepo.GormProductRepository
}

func (suite *ProductRepositoryTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *ProductRepositoryTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *ProductRepositoryTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.log = &undoLog{}
	suite.repo = productrepo.NewGormProductRepository(suite.pg.DB, suite.log)
}

func (suite *ProductRepositoryTestSuite) addProduct(name string, stock int) *product.Product {
	p, err := product.NewProduct(kernel.NewUUID(), name, decimal.RequireFromString("12.50"), stock)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), p))
	return p
}

func (suite *ProductRepositoryTestSuite) stock(p *product.Product) int {
	stored, err := suite.repo.Get(context.Background(), p.ID())
	suite.Require().NoError(err)
	return stored.Stock()
}

func (suite *ProductRepositoryTestSuite) TestGetMany_SkipsMissing() {
	a := suite.addProduct("Mug", 1)
	b := suite.addProduct("Towel", 1)

	found, err := suite.repo.GetMany(context.Background(), []kernel.UUID{a.ID(), kernel.NewUUID(), b.ID()})
	suite.Require().NoError(err)
	suite.Len(found, 2)

	empty, err := suite.repo.GetMany(context.Background(), nil)
	suite.Require().NoError(err)
	suite.Empty(empty)
}

func (suite *ProductRepositoryTestSuite) TestDecrementStock() {
	ctx := context.Background()
	p := suite.addProduct("Mug", 5)

	suite.Require().NoError(suite.repo.DecrementStock(ctx, p.ID(), 3))
	suite.Equal(2, suite.stock(p))

	err := suite.repo.DecrementStock(ctx, p.ID(), 3)
	var shortage *errs.InsufficientStockError
	suite.Require().ErrorAs(err, &shortage)
	suite.Equal(2, shortage.Available)
	suite.Equal(2, suite.stock(p), "a failed decrement changes nothing")

	err = suite.repo.DecrementStock(ctx, kernel.NewUUID(), 1)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	err = suite.repo.DecrementStock(ctx, p.ID(), 0)
	suite.Require().ErrorIs(err, errs.ErrValueIsOutOfRange)
}

func (suite *ProductRepositoryTestSuite) TestDecrementStock_ConcurrentNeverGoesNegative() {
	ctx := context.Background()
	p := suite.addProduct("Mug", 10)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for range 25 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := suite.repo.DecrementStock(ctx, p.ID(), 1); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	suite.Equal(10, success)
	suite.Equal(0, suite.stock(p))
}

func (suite *ProductRepositoryTestSuite) TestIncrementStock() {
	ctx := context.Background()
	p := suite.addProduct("Mug", 1)

	restored, err := suite.repo.IncrementStock(ctx, p.ID(), 4)
	suite.Require().NoError(err)
	suite.True(restored)
	suite.Equal(5, suite.stock(p))

	restored, err = suite.repo.IncrementStock(ctx, kernel.NewUUID(), 4)
	suite.Require().NoError(err)
	suite.False(restored)
}

func (suite *ProductRepositoryTestSuite) TestCompensations() {
	ctx := context.Background()
	p := suite.addProduct("Mug", 5)

	suite.Require().NoError(suite.repo.DecrementStock(ctx, p.ID(), 2))
	_, err := suite.repo.IncrementStock(ctx, p.ID(), 1)
	suite.Require().NoError(err)
	suite.Equal(4, suite.stock(p))

	suite.Require().Len(suite.log.undo, 2)
	suite.Require().NoError(suite.log.undo[1](ctx))
	suite.Require().NoError(suite.log.undo[0](ctx))
	suite.Equal(5, suite.stock(p))
}

func (suite *ProductRepositoryTestSuite) TestIncrementCompensationFailsWhenStockWasSold() {
	ctx := context.Background()
	p := suite.addProduct("Mug", 0)

	_, err := suite.repo.IncrementStock(ctx, p.ID(), 2)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.DecrementStock(ctx, p.ID(), 2))

	err = suite.log.undo[0](ctx)
	suite.Require().ErrorIs(err, errs.ErrInsufficientStock)
	suite.Equal(0, suite.stock(p))
}

func TestProductRepositoryTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(ProductRepositoryTestSuite))
}
