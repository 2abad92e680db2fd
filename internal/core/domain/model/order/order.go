package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MaxNotesLength bounds the free-text notes a customer may attach.
const MaxNotesLength = 500

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order is the aggregate root of a purchase: header, items and status.
//
// Order follows these invariants:
//   - identifier, customer and shipping snapshot are valid
//   - at creation it has at least one item and totalAmount = Σ line totals + deliveryFee
//   - totalAmount and orderDate never change afterwards
//   - status changes only through ChangeStatus
type Order struct {
	id              kernel.UUID
	customerID      kernel.UUID
	shippingAddress ShippingAddress
	items           []Item
	deliveryFee     decimal.Decimal
	totalAmount     decimal.Decimal
	paymentMethod   PaymentMethod
	status          Status
	orderDate       time.Time
	documentURL     *string
	notes           string

	// expectedItems is the number of lines the order was created with. A
	// persisted order holding fewer items is a leftover of an interrupted creation.
	expectedItems int

	guard guard.ConstructorGuard
}

// NewOrder places a new order. The initial status follows the payment method
// and the total is computed from the items, never supplied by the caller.
//
// Example:
//
//	item, _ := order.NewItem(kernel.NewUUID(), productID, "Mug", 2, decimal.RequireFromString("20.00"))
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, shipping, []order.Item{item},
//	    decimal.RequireFromString("5.00"), order.CashOnDelivery, "", time.Now())
//	// o.TotalAmount() == 45.00, o.Status() == order.PendingConfirmation
func NewOrder(
	id, customerID kernel.UUID,
	shippingAddress ShippingAddress,
	items []Item,
	deliveryFee decimal.Decimal,
	paymentMethod PaymentMethod,
	notes string,
	orderDate time.Time,
) (*Order, error) {
	o := &Order{
		paymentMethod: paymentMethod,
		status:        InitialStatusFor(paymentMethod),
		orderDate:     orderDate.UTC(),
		guard:         guard.NewConstructorGuard(),
	}

	var itemsErr error
	if len(items) == 0 {
		itemsErr = errs.NewValueIsRequiredError("items")
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setShippingAddress(shippingAddress),
		o.setItems(items),
		itemsErr,
		o.setDeliveryFee(deliveryFee),
		o.setNotes(notes),
		o.validatePaymentMethod(),
	); err != nil {
		return nil, err
	}

	o.expectedItems = len(o.items)
	o.totalAmount = o.Subtotal().Add(o.deliveryFee).Round(kernel.MoneyPlaces)
	return o, nil
}

// State is the persisted form of an order, used to rebuild the aggregate.
type State struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	ShippingAddress ShippingAddress
	Items           []Item
	DeliveryFee     decimal.Decimal
	TotalAmount     decimal.Decimal
	PaymentMethod   PaymentMethod
	Status          Status
	OrderDate       time.Time
	DocumentURL     *string
	Notes           string
	ExpectedItems   int
}

// RestoreOrder rebuilds an order read from storage. It trusts the stored total,
// which may legitimately differ from the items after an administrative
// correction, and accepts fewer items than ExpectedItems so that interrupted
// creations can be found and cleaned up.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		totalAmount:   s.TotalAmount,
		paymentMethod: s.PaymentMethod,
		status:        s.Status,
		orderDate:     s.OrderDate.UTC(),
		documentURL:   s.DocumentURL,
		expectedItems: s.ExpectedItems,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCustomerID(s.CustomerID),
		o.setShippingAddress(s.ShippingAddress),
		o.setItems(s.Items),
		o.setDeliveryFee(s.DeliveryFee),
		o.setNotes(s.Notes),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate ensures the order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) CustomerID() kernel.UUID { return o.customerID }
func (o *Order) ShippingAddress() ShippingAddress { return o.shippingAddress }
func (o *Order) DeliveryFee() decimal.Decimal { return o.deliveryFee }
func (o *Order) TotalAmount() decimal.Decimal { return o.totalAmount }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) Status() Status { return o.status }
func (o *Order) OrderDate() time.Time { return o.orderDate }
func (o *Order) DocumentURL() *string { return o.documentURL }
func (o *Order) Notes() string { return o.notes }
func (o *Order) ExpectedItems() int { return o.expectedItems }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// Subtotal is Σ(unit price × quantity) over the items currently held.
func (o *Order) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range o.items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal.Round(kernel.MoneyPlaces)
}

// IsComplete reports whether every line the order was created with is present.
func (o *Order) IsComplete() bool {
	return len(o.items) == o.expectedItems
}

// ChangeStatus moves the order to target and returns the status it left.
// Edges outside the graph return *errs.InvalidTransitionError and leave the
// order untouched.
func (o *Order) ChangeStatus(target Status) (Status, error) {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return o.status, err
	}
	previous := o.status
	o.status = next
	return previous, nil
}

// AttachDocument records where the archived invoice can be downloaded.
func (o *Order) AttachDocument(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return errs.NewValueIsRequiredError("documentUrl")
	}
	if !o.status.AllowsInvoice() {
		return errs.NewInvoiceNotAllowedError(o.id, o.status)
	}
	o.documentURL = &url
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setShippingAddress(a ShippingAddress) error {
	if err := a.Validate(); err != nil {
		return err
	}
	o.shippingAddress = a
	return nil
}

func (o *Order) setItems(items []Item) error {
	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, dup := seen[item.ProductID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"items", fmt.Errorf("product %s appears more than once", item.ProductID()),
			)
		}
		seen[item.ProductID()] = struct{}{}
	}
	o.items = append([]Item(nil), items...)
	return nil
}

func (o *Order) setDeliveryFee(fee decimal.Decimal) error {
	amount, err := kernel.NewAmount("deliveryFee", fee)
	if err != nil {
		return err
	}
	o.deliveryFee = amount
	return nil
}

func (o *Order) setNotes(notes string) error {
	notes = strings.TrimSpace(notes)
	if len(notes) > MaxNotesLength {
		return errs.NewValueIsOutOfRangeError("notes length", len(notes), 0, MaxNotesLength)
	}
	o.notes = notes
	return nil
}

func (o *Order) validatePaymentMethod() error {
	if _, err := NewPaymentMethod(string(o.paymentMethod)); err != nil {
		return err
	}
	return nil
}
