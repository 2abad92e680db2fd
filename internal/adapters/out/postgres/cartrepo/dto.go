// Package cartrepo persists shopping carts. Cart edits are single-row writes
// outside any unit of work and record no compensations.
package cartrepo

import (
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CartDTO struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex"`
	Items      []CartItemDTO `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

func (CartDTO) TableName() string {
	return "carts"
}

type CartItemDTO struct {
	CartID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int       `gorm:"not null;check:chk_cart_items_quantity,quantity > 0"`
}

func (CartItemDTO) TableName() string {
	return "cart_items"
}

func toDomain(dto CartDTO) (*cart.Cart, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	items := make([]cart.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, err := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if err != nil {
			return nil, err
		}
		item, err := cart.NewItem(productID, itemDTO.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return cart.RestoreCart(id, customerID, items)
}

func itemsFromDomain(cartID uuid.UUID, items []cart.Item) []CartItemDTO {
	dtos := make([]CartItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, CartItemDTO{
			CartID:    cartID,
			ProductID: item.ProductID().Bytes(),
			Quantity:  item.Quantity(),
		})
	}
	return dtos
}
