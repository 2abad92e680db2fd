package queries

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns *errs.ObjectNotFoundError when the order does not exist or
// belongs to another customer and the viewer is not an admin.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	notFound := errs.NewObjectNotFoundError("order", query.OrderID().String())

	var (
		response             GetOrderQueryResponse
		id, customer, addrID uuid.UUID
		status               sql.NullString
	)
	err := db.Raw(`
		SELECT
			id, customer_id, status, payment_method, order_date, delivery_fee, total_amount,
			notes, document_url, shipping_address_id, shipping_recipient_name, shipping_phone,
			shipping_line1, shipping_line2, shipping_city, shipping_region,
			shipping_postal_code, shipping_country
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row().Scan(
		&id, &customer, &status, &response.PaymentMethod, &response.OrderDate,
		&response.DeliveryFee, &response.TotalAmount, &response.Notes, &response.DocumentURL,
		&addrID, &response.Shipping.RecipientName, &response.Shipping.Phone,
		&response.Shipping.Line1, &response.Shipping.Line2, &response.Shipping.City,
		&response.Shipping.Region, &response.Shipping.PostalCode, &response.Shipping.Country,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, notFound
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.CustomerID, err = kernel.UUIDFromBytes(customer[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.Shipping.AddressID, err = kernel.UUIDFromBytes(addrID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if !query.Admin() && !response.CustomerID.IsEqual(query.ViewerID()) {
		return GetOrderQueryResponse{}, notFound
	}
	response.Status = order.ParseStatusOrPending(status.String).String()
	response.OrderDate = response.OrderDate.UTC()

	if response.Items, err = h.items(ctx, id); err != nil {
		return GetOrderQueryResponse{}, err
	}
	return response, nil
}

func (h GetOrderQueryHandler) items(ctx context.Context, orderID uuid.UUID) ([]OrderItemView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, product_id, product_name, unit_price, quantity
		FROM order_items
		WHERE order_id = ?
		ORDER BY seq
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemView, 0)
	for rows.Next() {
		var (
			item          OrderItemView
			id, productID uuid.UUID
		)
		if err = rows.Scan(&id, &productID, &item.ProductName, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, err
		}
		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		item.LineTotal = kernel.LineTotal(item.UnitPrice, item.Quantity)
		items = append(items, item)
	}
	return items, rows.Err()
}
