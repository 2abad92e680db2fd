// Package product models the sellable catalog entry as seen by the order
// engine: name, current unit price and available stock.
package product

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is read by the order engine; catalog maintenance lives elsewhere.
// Stock is never negative.
type Product struct {
	id        kernel.UUID
	name      string
	unitPrice decimal.Decimal
	stock     int

	guard guard.ConstructorGuard
}

func NewProduct(id kernel.UUID, name string, unitPrice decimal.Decimal, stock int) (*Product, error) {
	p := &Product{name: strings.TrimSpace(name), guard: guard.NewConstructorGuard()}

	var nameErr error
	if p.name == "" {
		nameErr = errs.NewValueIsRequiredError("product name")
	}

	var priceErr error
	p.unitPrice, priceErr = kernel.NewAmount("unit price", unitPrice)

	var stockErr error
	if stock < 0 {
		stockErr = errs.NewValueIsOutOfRangeError("stock", stock, 0, "unbounded")
	}

	if err := errors.Join(id.Validate(), nameErr, priceErr, stockErr); err != nil {
		return nil, err
	}

	p.id = id
	p.stock = stock
	return p, nil
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID { return p.id }
func (p *Product) Name() string { return p.name }
func (p *Product) UnitPrice() decimal.Decimal { return p.unitPrice }
func (p *Product) Stock() int { return p.stock }

// CanFulfil reports whether the current stock covers quantity.
func (p *Product) CanFulfil(quantity int) bool {
	return quantity > 0 && p.stock >= quantity
}

// EnsureAvailable returns *errs.InsufficientStockError when the stock does not
// cover quantity.
func (p *Product) EnsureAvailable(quantity int) error {
	if !p.CanFulfil(quantity) {
		return errs.NewInsufficientStockError(p.id, quantity, p.stock)
	}
	return nil
}
