package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"storefront/internal/adapters/out/kafka"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func statusChanged() order.Event {
	return order.Event{
		ID:             kernel.NewUUID(),
		Type:           order.EventStatusChanged,
		OrderID:        kernel.NewUUID(),
		CustomerID:     kernel.NewUUID(),
		Status:         order.Cancelled,
		PreviousStatus: order.Confirmed,
		TotalAmount:    decimal.RequireFromString("60"),
		OccurredAt:     time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestOrderEventPublisher_Publish(t *testing.T) {
	event := statusChanged()
	writer := new(MockWriter)

	writer.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafkago.Message) bool {
		if len(msgs) != 1 || string(msgs[0].Key) != event.OrderID.String() {
			return false
		}
		var m kafka.Message
		if err := json.Unmarshal(msgs[0].Value, &m); err != nil {
			return false
		}
		return m.Type == "order.status_changed" &&
			m.Status == order.Cancelled.String() &&
			m.PreviousStatus == order.Confirmed.String() &&
			m.TotalAmount == "60.00"
	})).Return(nil).Once()

	publisher := kafka.NewOrderEventPublisherWithWriter(writer)
	require.NoError(t, publisher.Publish(t.Context(), event))
	writer.AssertExpectations(t)
}

func TestOrderEventPublisher_PropagatesWriteErrors(t *testing.T) {
	boom := errors.New("leader not available")
	writer := new(MockWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(boom).Once()

	err := kafka.NewOrderEventPublisherWithWriter(writer).Publish(t.Context(), statusChanged())
	require.ErrorIs(t, err, boom)
}

func TestNewMessage_OmitsPreviousStatusOfCreatedEvents(t *testing.T) {
	event := statusChanged()
	event.Type = order.EventCreated
	event.PreviousStatus = order.Unknown

	data, err := json.Marshal(kafka.NewMessage(event))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "previousStatus")
}

func TestParseBrokers(t *testing.T) {
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, kafka.ParseBrokers(" kafka-1:9092, ,kafka-2:9092 "))
	assert.Empty(t, kafka.ParseBrokers(""))
}
