// Package customerrepo reads customers and their address books. Both are
// owned by the account service; the order engine only reads them.
package customerrepo

import (
	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type CustomerDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"size:200"`
	Email string    `gorm:"size:320"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

type AddressDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	RecipientName string    `gorm:"size:200"`
	Phone         string    `gorm:"size:50"`
	Line1         string    `gorm:"size:255;not null"`
	Line2         string    `gorm:"size:255"`
	City          string    `gorm:"size:120;not null"`
	Region        string    `gorm:"size:120"`
	PostalCode    string    `gorm:"size:20"`
	Country       string    `gorm:"size:80;not null"`
}

func (AddressDTO) TableName() string {
	return "addresses"
}

// CustomerFromDomain and AddressFromDomain are used to seed fixtures.
func CustomerFromDomain(c *customer.Customer) CustomerDTO {
	return CustomerDTO{ID: c.ID().Bytes(), Name: c.Name(), Email: c.Email()}
}

func AddressFromDomain(a *customer.Address) AddressDTO {
	f := a.Fields()
	return AddressDTO{
		ID:            a.ID().Bytes(),
		CustomerID:    a.CustomerID().Bytes(),
		RecipientName: f.RecipientName,
		Phone:         f.Phone,
		Line1:         f.Line1,
		Line2:         f.Line2,
		City:          f.City,
		Region:        f.Region,
		PostalCode:    f.PostalCode,
		Country:       f.Country,
	}
}

func customerToDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return customer.NewCustomer(id, dto.Name, dto.Email)
}

func addressToDomain(dto AddressDTO) (*customer.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	return customer.NewAddress(id, customerID, order.ShippingAddressFields{
		RecipientName: dto.RecipientName,
		Phone:         dto.Phone,
		Line1:         dto.Line1,
		Line2:         dto.Line2,
		City:          dto.City,
		Region:        dto.Region,
		PostalCode:    dto.PostalCode,
		Country:       dto.Country,
	})
}
