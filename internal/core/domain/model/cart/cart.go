// Package cart models a customer's shopping cart: one cart per customer
// holding product references and quantities, priced only when read.
package cart

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart or RestoreCart constructor")
	ErrItemIsNotConstructed = errors.New("cart Item must be created via NewItem constructor")
)

// MaxQuantity caps a single cart line.
const MaxQuantity = 1000

// Item is a product reference and a positive quantity.
type Item struct {
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

func NewItem(productID kernel.UUID, quantity int) (Item, error) {
	if err := errors.Join(productID.Validate(), validateQuantity(quantity)); err != nil {
		return Item{}, err
	}
	return Item{productID: productID, quantity: quantity, guard: guard.NewConstructorGuard()}, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ProductID() kernel.UUID { return i.productID }
func (i Item) Quantity() int { return i.quantity }

// MergeItems folds lines that reference the same product into one line,
// keeping the position of the first occurrence.
//
//	MergeItems([A×1, B×2, A×3]) == [A×4, B×2]
func MergeItems(items []Item) ([]Item, error) {
	merged := make([]Item, 0, len(items))
	index := make(map[kernel.UUID]int, len(items))

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if at, ok := index[item.productID]; ok {
			total := merged[at].quantity + item.quantity
			if err := validateQuantity(total); err != nil {
				return nil, err
			}
			merged[at].quantity = total
			continue
		}
		index[item.productID] = len(merged)
		merged = append(merged, item)
	}
	return merged, nil
}

// Cart belongs to exactly one customer and is created lazily on first write.
type Cart struct {
	id         kernel.UUID
	customerID kernel.UUID
	items      []Item

	guard guard.ConstructorGuard
}

func NewCart(id, customerID kernel.UUID) (*Cart, error) {
	return RestoreCart(id, customerID, nil)
}

func RestoreCart(id, customerID kernel.UUID, items []Item) (*Cart, error) {
	if err := errors.Join(id.Validate(), customerID.Validate()); err != nil {
		return nil, err
	}
	merged, err := MergeItems(items)
	if err != nil {
		return nil, err
	}
	return &Cart{id: id, customerID: customerID, items: merged, guard: guard.NewConstructorGuard()}, nil
}

func (c *Cart) Validate() error {
	if c == nil {
		return ErrCartIsNotConstructed
	}
	return c.guard.Validate(ErrCartIsNotConstructed)
}

func (c *Cart) ID() kernel.UUID { return c.id }
func (c *Cart) CustomerID() kernel.UUID { return c.customerID }
func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// SetQuantity replaces the quantity of a product. Zero removes the line.
func (c *Cart) SetQuantity(productID kernel.UUID, quantity int) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if quantity < 0 || quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, MaxQuantity)
	}

	for i := range c.items {
		if !c.items[i].productID.IsEqual(productID) {
			continue
		}
		if quantity == 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
		c.items[i].quantity = quantity
		return nil
	}

	if quantity == 0 {
		return nil
	}
	c.items = append(c.items, Item{productID: productID, quantity: quantity, guard: guard.NewConstructorGuard()})
	return nil
}

// Clear empties the cart after an order was placed.
func (c *Cart) Clear() {
	c.items = nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 || quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantity)
	}
	return nil
}
