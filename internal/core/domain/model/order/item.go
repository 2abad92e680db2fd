package order

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one order line. Product name and unit price are snapshots taken at
// order time; productID is a weak reference that may outlive the product.
type Item struct {
	id          kernel.UUID
	productID   kernel.UUID
	productName string
	quantity    int
	unitPrice   decimal.Decimal

	guard guard.ConstructorGuard
}

// NewItem validates and builds an order line.
func NewItem(id, productID kernel.UUID, productName string, quantity int, unitPrice decimal.Decimal) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	var priceErr error
	item.unitPrice, priceErr = kernel.NewAmount("unit price", unitPrice)

	var quantityErr error
	if quantity <= 0 {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	if err := errors.Join(id.Validate(), productID.Validate(), quantityErr, priceErr); err != nil {
		return Item{}, err
	}

	item.id = id
	item.productID = productID
	item.productName = strings.TrimSpace(productName)
	item.quantity = quantity
	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ID() kernel.UUID { return i.id }
func (i Item) ProductID() kernel.UUID { return i.productID }
func (i Item) ProductName() string { return i.productName }
func (i Item) Quantity() int { return i.quantity }
func (i Item) UnitPrice() decimal.Decimal { return i.unitPrice }
func (i Item) LineTotal() decimal.Decimal { return kernel.LineTotal(i.unitPrice, i.quantity) }
