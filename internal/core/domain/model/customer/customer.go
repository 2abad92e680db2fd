// Package customer holds the read-only view of a customer and their address
// book. The order engine never changes either; it copies an address into the
// order and prints name and email on invoices.
package customer

import (
	"errors"
	"net/mail"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")
	ErrAddressIsNotConstructed  = errors.New("Address must be created via NewAddress constructor")
)

type Customer struct {
	id    kernel.UUID
	name  string
	email string

	guard guard.ConstructorGuard
}

func NewCustomer(id kernel.UUID, name, email string) (*Customer, error) {
	c := &Customer{
		name:  strings.TrimSpace(name),
		email: strings.TrimSpace(email),
		guard: guard.NewConstructorGuard(),
	}

	var emailErr error
	if c.email != "" {
		if _, err := mail.ParseAddress(c.email); err != nil {
			emailErr = errs.NewValueIsInvalidErrorWithCause("email", err)
		}
	}

	if err := errors.Join(id.Validate(), emailErr); err != nil {
		return nil, err
	}
	c.id = id
	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.UUID { return c.id }
func (c *Customer) Name() string { return c.name }
func (c *Customer) Email() string { return c.email }

// Address is an entry of a customer's address book.
type Address struct {
	id         kernel.UUID
	customerID kernel.UUID
	fields     order.ShippingAddressFields

	guard guard.ConstructorGuard
}

func NewAddress(id, customerID kernel.UUID, fields order.ShippingAddressFields) (*Address, error) {
	if err := errors.Join(id.Validate(), customerID.Validate()); err != nil {
		return nil, err
	}
	return &Address{id: id, customerID: customerID, fields: fields, guard: guard.NewConstructorGuard()}, nil
}

func (a *Address) Validate() error {
	if a == nil {
		return ErrAddressIsNotConstructed
	}
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a *Address) ID() kernel.UUID { return a.id }
func (a *Address) CustomerID() kernel.UUID { return a.customerID }
func (a *Address) Fields() order.ShippingAddressFields { return a.fields }

// BelongsTo reports whether the address is in customerID's address book.
func (a *Address) BelongsTo(customerID kernel.UUID) bool {
	return a.customerID.IsEqual(customerID)
}

// ToShippingAddress takes the snapshot stored on a new order.
func (a *Address) ToShippingAddress() (order.ShippingAddress, error) {
	return order.NewShippingAddress(a.id, a.fields)
}
