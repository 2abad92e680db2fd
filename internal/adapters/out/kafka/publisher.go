// Package kafka publishes order events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	kafkago "github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Message is the wire form of an order event.
type Message struct {
	EventID        string    `json:"eventId"`
	Type           string    `json:"type"`
	OrderID        string    `json:"orderId"`
	CustomerID     string    `json:"customerId"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	TotalAmount    string    `json:"totalAmount"`
	OccurredAt     time.Time `json:"occurredAt"`
}

func NewMessage(e order.Event) Message {
	m := Message{
		EventID:     e.ID.String(),
		Type:        string(e.Type),
		OrderID:     e.OrderID.String(),
		CustomerID:  e.CustomerID.String(),
		Status:      e.Status.String(),
		TotalAmount: e.TotalAmount.StringFixed(kernel.MoneyPlaces),
		OccurredAt:  e.OccurredAt.UTC(),
	}
	if e.PreviousStatus != order.Unknown {
		m.PreviousStatus = e.PreviousStatus.String()
	}
	return m
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// OrderEventPublisher writes events keyed by order id so that every event of
// one order lands on the same partition.
type OrderEventPublisher struct {
	writer messageWriter
}

func NewOrderEventPublisher(brokers []string, topic string) *OrderEventPublisher {
	return newOrderEventPublisher(&kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
	})
}

func newOrderEventPublisher(w messageWriter) *OrderEventPublisher {
	return &OrderEventPublisher{writer: w}
}

func (p *OrderEventPublisher) Publish(ctx context.Context, event order.Event) error {
	data, err := json.Marshal(NewMessage(event))
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(event.OrderID.String()),
		Value: data,
		Time:  event.OccurredAt.UTC(),
	})
}

func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event. It stands in when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, order.Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
