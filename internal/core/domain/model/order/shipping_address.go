package order

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrShippingAddressIsNotConstructed = errors.New("ShippingAddress must be created via NewShippingAddress constructor")

// ShippingAddress is the copy of the customer's address taken when the order
// is placed. Editing the address book afterwards does not change it.
type ShippingAddress struct {
	addressID     kernel.UUID
	recipientName string
	phone         string
	line1         string
	line2         string
	city          string
	region        string
	postalCode    string
	country       string

	guard guard.ConstructorGuard
}

// ShippingAddressFields carries the raw snapshot values.
type ShippingAddressFields struct {
	RecipientName string
	Phone         string
	Line1         string
	Line2         string
	City          string
	Region        string
	PostalCode    string
	Country       string
}

// NewShippingAddress validates a snapshot of the address identified by addressID.
// Line1, City and Country are required.
func NewShippingAddress(addressID kernel.UUID, f ShippingAddressFields) (ShippingAddress, error) {
	a := ShippingAddress{
		recipientName: strings.TrimSpace(f.RecipientName),
		phone:         strings.TrimSpace(f.Phone),
		line1:         strings.TrimSpace(f.Line1),
		line2:         strings.TrimSpace(f.Line2),
		city:          strings.TrimSpace(f.City),
		region:        strings.TrimSpace(f.Region),
		postalCode:    strings.TrimSpace(f.PostalCode),
		country:       strings.TrimSpace(f.Country),
		guard:         guard.NewConstructorGuard(),
	}

	var required []error
	if err := addressID.Validate(); err != nil {
		required = append(required, err)
	}
	if a.line1 == "" {
		required = append(required, errs.NewValueIsRequiredError("address line1"))
	}
	if a.city == "" {
		required = append(required, errs.NewValueIsRequiredError("address city"))
	}
	if a.country == "" {
		required = append(required, errs.NewValueIsRequiredError("address country"))
	}
	if err := errors.Join(required...); err != nil {
		return ShippingAddress{}, err
	}

	a.addressID = addressID
	return a, nil
}

func (a ShippingAddress) Validate() error {
	return a.guard.Validate(ErrShippingAddressIsNotConstructed)
}

func (a ShippingAddress) AddressID() kernel.UUID { return a.addressID }

// Fields returns the snapshot values.
func (a ShippingAddress) Fields() ShippingAddressFields {
	return ShippingAddressFields{
		RecipientName: a.recipientName,
		Phone:         a.phone,
		Line1:         a.line1,
		Line2:         a.line2,
		City:          a.city,
		Region:        a.region,
		PostalCode:    a.postalCode,
		Country:       a.country,
	}
}
