package order

import (
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	PendingConfirmation ─┐
//	                     ├──> Confirmed ──> Processing ──> Shipped ──> Delivered
//	AwaitingPayment ─────┘
//
//	every state except Delivered ──> Cancelled
//
// Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown is the zero value and never a valid persisted status.
	Unknown Status = iota

	// PendingConfirmation is the initial status of cash-on-delivery orders.
	PendingConfirmation

	// AwaitingPayment is the initial status of orders paid by any other method.
	AwaitingPayment

	// Confirmed orders were accepted by the merchant.
	Confirmed

	// Processing orders are being picked and packed.
	Processing

	// Shipped orders were handed to the carrier.
	Shipped

	// Delivered is terminal.
	Delivered

	// Cancelled is terminal. Entering it restores the stock of every item.
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:             "Unknown",
	PendingConfirmation: "PendingConfirmation",
	AwaitingPayment:     "AwaitingPayment",
	Confirmed:           "Confirmed",
	Processing:          "Processing",
	Shipped:             "Shipped",
	Delivered:           "Delivered",
	Cancelled:           "Cancelled",
}

var transitions = map[Status][]Status{
	PendingConfirmation: {Confirmed, Cancelled},
	AwaitingPayment:     {Confirmed, Cancelled},
	Confirmed:           {Processing, Cancelled},
	Processing:          {Shipped, Cancelled},
	Shipped:             {Delivered, Cancelled},
}

// Statuses lists the valid statuses in lifecycle order.
func Statuses() []Status {
	return []Status{PendingConfirmation, AwaitingPayment, Confirmed, Processing, Shipped, Delivered, Cancelled}
}

// ParseStatus converts the persisted or API name of a status. Matching ignores case.
func ParseStatus(name string) (Status, error) {
	for _, s := range Statuses() {
		if strings.EqualFold(statusNames[s], strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", name))
}

// ParseStatusOrPending is ParseStatus for read projections: missing or unknown
// values count as PendingConfirmation.
func ParseStatusOrPending(name string) Status {
	s, err := ParseStatus(name)
	if err != nil {
		return PendingConfirmation
	}
	return s
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name, "Unknown" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// AllowsInvoice reports whether an invoice may be issued for an order in s.
func (s Status) AllowsInvoice() bool {
	return s.Validate() == nil && s != Cancelled
}

// CanTransitionTo reports whether s -> target is an edge of the graph.
// Self-loops are never edges.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target if s -> target is allowed, otherwise an
// *errs.InvalidTransitionError.
//
// Example:
//
//	next, err := order.Shipped.TransitionTo(order.Delivered) // Delivered, nil
//	_, err = order.Cancelled.TransitionTo(order.Delivered)   // InvalidTransitionError
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError(s, target)
	}
	return target, nil
}

// InitialStatusFor returns the first status of an order paid with method.
func InitialStatusFor(method PaymentMethod) Status {
	if method.IsCash() {
		return PendingConfirmation
	}
	return AwaitingPayment
}
