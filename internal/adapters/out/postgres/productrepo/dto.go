// Package productrepo is the stock ledger accessor. Stock changes are
// single conditional UPDATE statements.
package productrepo

import (
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"size:255;not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Stock     int             `gorm:"not null;check:chk_products_stock,stock >= 0"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// FromDomain is used to seed the catalogue.
func FromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:        p.ID().Bytes(),
		Name:      p.Name(),
		UnitPrice: p.UnitPrice(),
		Stock:     p.Stock(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return product.NewProduct(id, dto.Name, dto.UnitPrice, dto.Stock)
}
