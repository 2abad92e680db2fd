// Package orderrepo persists order headers and their items.
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the order header row. Items are separate rows written one by
// one; ExpectedItems tells how many there should be.
type OrderDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShippingAddressID uuid.UUID       `gorm:"type:uuid;not null"`
	Shipping          ShippingDTO     `gorm:"embedded;embeddedPrefix:shipping_"`
	DeliveryFee       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalAmount       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentMethod     string          `gorm:"size:32;not null"`
	Status            string          `gorm:"size:32;index"`
	OrderDate         time.Time       `gorm:"not null;index"`
	DocumentURL       *string
	Notes             string          `gorm:"size:500"`
	ExpectedItems     int             `gorm:"not null"`
	Items             []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ShippingDTO is the address snapshot embedded in the order row.
type ShippingDTO struct {
	RecipientName string `gorm:"size:200"`
	Phone         string `gorm:"size:50"`
	Line1         string `gorm:"size:255;not null"`
	Line2         string `gorm:"size:255"`
	City          string `gorm:"size:120;not null"`
	Region        string `gorm:"size:120"`
	PostalCode    string `gorm:"size:20"`
	Country       string `gorm:"size:80;not null"`
}

// OrderItemDTO is one order line with its snapshot price. Seq keeps the
// insertion order.
type OrderItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_order_items_order_product"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_items_order_product"`
	ProductName string          `gorm:"size:255;not null"`
	Quantity    int             `gorm:"not null;check:chk_order_items_quantity,quantity > 0"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Seq         int64           `gorm:"autoIncrement;not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	ship := o.ShippingAddress().Fields()
	return OrderDTO{
		ID:                o.ID().Bytes(),
		CustomerID:        o.CustomerID().Bytes(),
		ShippingAddressID: o.ShippingAddress().AddressID().Bytes(),
		Shipping: ShippingDTO{
			RecipientName: ship.RecipientName,
			Phone:         ship.Phone,
			Line1:         ship.Line1,
			Line2:         ship.Line2,
			City:          ship.City,
			Region:        ship.Region,
			PostalCode:    ship.PostalCode,
			Country:       ship.Country,
		},
		DeliveryFee:   o.DeliveryFee(),
		TotalAmount:   o.TotalAmount(),
		PaymentMethod: o.PaymentMethod().String(),
		Status:        o.Status().String(),
		OrderDate:     o.OrderDate(),
		DocumentURL:   o.DocumentURL(),
		Notes:         o.Notes(),
		ExpectedItems: o.ExpectedItems(),
	}
}

func itemFromDomain(orderID kernel.UUID, item order.Item) OrderItemDTO {
	return OrderItemDTO{
		ID:          item.ID().Bytes(),
		OrderID:     orderID.Bytes(),
		ProductID:   item.ProductID().Bytes(),
		ProductName: item.ProductName(),
		Quantity:    item.Quantity(),
		UnitPrice:   item.UnitPrice(),
	}
}

// toDomain rebuilds the aggregate. A stored status that is not one of the
// known names is an error here; read projections are more lenient.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	addressID, err := kernel.UUIDFromBytes(dto.ShippingAddressID[:])
	if err != nil {
		return nil, err
	}

	shipping, err := order.NewShippingAddress(addressID, order.ShippingAddressFields{
		RecipientName: dto.Shipping.RecipientName,
		Phone:         dto.Shipping.Phone,
		Line1:         dto.Shipping.Line1,
		Line2:         dto.Shipping.Line2,
		City:          dto.Shipping.City,
		Region:        dto.Shipping.Region,
		PostalCode:    dto.Shipping.PostalCode,
		Country:       dto.Shipping.Country,
	})
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.State{
		ID:              id,
		CustomerID:      customerID,
		ShippingAddress: shipping,
		Items:           items,
		DeliveryFee:     dto.DeliveryFee,
		TotalAmount:     dto.TotalAmount,
		PaymentMethod:   order.PaymentMethod(dto.PaymentMethod),
		Status:          status,
		OrderDate:       dto.OrderDate,
		DocumentURL:     dto.DocumentURL,
		Notes:           dto.Notes,
		ExpectedItems:   dto.ExpectedItems,
	})
}

func itemsToDomain(dtos []OrderItemDTO) ([]order.Item, error) {
	items := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(id, productID, dto.ProductName, dto.Quantity, dto.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
