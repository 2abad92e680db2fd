package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order with its items on behalf of a viewer. Orders
// of other customers are reported as missing unless the viewer is an admin.
type GetOrderQuery struct {
	orderID  kernel.UUID
	viewerID kernel.UUID
	admin    bool

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID, viewerID kernel.UUID, admin bool) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), viewerID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, viewerID: viewerID, admin: admin, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }
func (q GetOrderQuery) ViewerID() kernel.UUID { return q.viewerID }
func (q GetOrderQuery) Admin() bool { return q.admin }

type OrderItemView struct {
	ID          kernel.UUID
	ProductID   kernel.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	LineTotal   decimal.Decimal
}

type ShippingView struct {
	AddressID     kernel.UUID
	RecipientName string
	Phone         string
	Line1         string
	Line2         string
	City          string
	Region        string
	PostalCode    string
	Country       string
}

type GetOrderQueryResponse struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	Status        string
	PaymentMethod string
	OrderDate     time.Time
	DeliveryFee   decimal.Decimal
	TotalAmount   decimal.Decimal
	Notes         string
	DocumentURL   *string
	Shipping      ShippingView
	Items         []OrderItemView
}
