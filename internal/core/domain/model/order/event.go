package order

import (
	"time"

	"storefront/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// EventType names what happened to an order.
type EventType string

const (
	EventCreated       EventType = "order.created"
	EventStatusChanged EventType = "order.status_changed"
)

// Event is published after an order change has been stored.
type Event struct {
	ID             kernel.UUID
	Type           EventType
	OrderID        kernel.UUID
	CustomerID     kernel.UUID
	Status         Status
	PreviousStatus Status
	TotalAmount    decimal.Decimal
	OccurredAt     time.Time
}

// NewCreatedEvent describes a freshly placed order.
func NewCreatedEvent(o *Order, at time.Time) Event {
	return Event{
		ID:          kernel.NewUUID(),
		Type:        EventCreated,
		OrderID:     o.ID(),
		CustomerID:  o.CustomerID(),
		Status:      o.Status(),
		TotalAmount: o.TotalAmount(),
		OccurredAt:  at.UTC(),
	}
}

// NewStatusChangedEvent describes a transition that left previous.
func NewStatusChangedEvent(o *Order, previous Status, at time.Time) Event {
	return Event{
		ID:             kernel.NewUUID(),
		Type:           EventStatusChanged,
		OrderID:        o.ID(),
		CustomerID:     o.CustomerID(),
		Status:         o.Status(),
		PreviousStatus: previous,
		TotalAmount:    o.TotalAmount(),
		OccurredAt:     at.UTC(),
	}
}
