package http_test

import (
	"context"

	"storefront/internal/adapters/out/postgres/documentrepo"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/mock"
)

type MockCartReader struct{ mock.Mock }

func (m *MockCartReader) Handle(ctx context.Context, q queries.GetCartQuery) (queries.GetCartQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.GetCartQueryResponse), args.Error(1)
}

type MockCartItemSetter struct{ mock.Mock }

func (m *MockCartItemSetter) Handle(ctx context.Context, cmd commands.SetCartItemCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockOrderCreator struct{ mock.Mock }

func (m *MockOrderCreator) Handle(ctx context.Context, cmd commands.CreateOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Handle(ctx context.Context, q queries.GetOrderQuery) (queries.GetOrderQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.GetOrderQueryResponse), args.Error(1)
}

type MockOrderStatusChanger struct{ mock.Mock }

func (m *MockOrderStatusChanger) Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockOrderStatsReader struct{ mock.Mock }

func (m *MockOrderStatsReader) Handle(
	ctx context.Context, q queries.GetOrderStatsQuery,
) (queries.GetOrderStatsQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.GetOrderStatsQueryResponse), args.Error(1)
}

type MockInvoiceGenerator struct{ mock.Mock }

func (m *MockInvoiceGenerator) Handle(ctx context.Context, cmd commands.GenerateInvoiceCommand) (commands.Document, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.Document), args.Error(1)
}

type MockDocumentReader struct{ mock.Mock }

func (m *MockDocumentReader) Get(ctx context.Context, name string) (documentrepo.Document, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(documentrepo.Document), args.Error(1)
}

type MockIdempotencyStore struct{ mock.Mock }

func (m *MockIdempotencyStore) Reserve(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockIdempotencyStore) Complete(ctx context.Context, key, result string) error {
	return m.Called(ctx, key, result).Error(0)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
