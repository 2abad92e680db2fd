package documentrepo_test

import (
	"context"
	"testing"

	"storefront/internal/adapters/out/postgres/documentrepo"
	"storefront/internal/adapters/out/postgres/pgtest"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type DocumentStoreTestSuite struct {
	suite.Suite
	pg    *pgtest.Database
	store *documentrepo.GormDocumentStore
}

func (suite *DocumentStoreTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.store = documentrepo.NewGormDocumentStore(pg.DB, "https://shop.example.com/")
}

func (suite *DocumentStoreTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *DocumentStoreTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
}

func (suite *DocumentStoreTestSuite) TestPutAndGet() {
	ctx := context.Background()

	url, err := suite.store.Put(ctx, "INV-202603-ABC123.pdf", "application/pdf", []byte("%PDF-1 first"))
	suite.Require().NoError(err)
	suite.Equal("https://shop.example.com/documents/INV-202603-ABC123.pdf", url)

	_, err = suite.store.Put(ctx, "INV-202603-ABC123.pdf", "application/pdf", []byte("%PDF-1 second"))
	suite.Require().NoError(err)

	doc, err := suite.store.Get(ctx, "INV-202603-ABC123.pdf")
	suite.Require().NoError(err)
	suite.Equal("application/pdf", doc.ContentType)
	suite.Equal([]byte("%PDF-1 second"), doc.Data)
}

func (suite *DocumentStoreTestSuite) TestGet_NotFound() {
	_, err := suite.store.Get(context.Background(), "missing.pdf")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DocumentStoreTestSuite) TestPut_Validation() {
	_, err := suite.store.Put(context.Background(), " ", "application/pdf", []byte("x"))
	suite.Require().ErrorIs(err, errs.ErrValueIsRequired)

	_, err = suite.store.Put(context.Background(), "a.pdf", "application/pdf", nil)
	suite.Require().ErrorIs(err, errs.ErrValueIsRequired)
}

func TestDocumentStoreTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(DocumentStoreTestSuite))
}
