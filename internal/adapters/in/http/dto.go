package http

import (
	"time"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Amounts travel as strings with two fractional digits.
func money(d decimal.Decimal) string {
	return d.StringFixed(kernel.MoneyPlaces)
}

type SetCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CartLineResponse struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	UnitPrice   string `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	LineTotal   string `json:"lineTotal"`
}

type CartResponse struct {
	Items       []CartLineResponse `json:"items"`
	Subtotal    string             `json:"subtotal"`
	DeliveryFee string             `json:"deliveryFee"`
	Total       string             `json:"total"`
}

func newCartResponse(r queries.GetCartQueryResponse) CartResponse {
	out := CartResponse{
		Items:       make([]CartLineResponse, 0, len(r.Items)),
		Subtotal:    money(r.Subtotal),
		DeliveryFee: money(r.DeliveryFee),
		Total:       money(r.Total),
	}
	for _, line := range r.Items {
		out.Items = append(out.Items, CartLineResponse{
			ProductID:   line.ProductID.String(),
			ProductName: line.ProductName,
			UnitPrice:   money(line.UnitPrice),
			Quantity:    line.Quantity,
			LineTotal:   money(line.LineTotal),
		})
	}
	return out
}

type OrderLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest places an order. Without items the customer's cart is
// ordered, and a missing delivery fee then defaults to the cart's quote.
type CreateOrderRequest struct {
	ShippingAddressID string             `json:"shippingAddressId"`
	PaymentMethod     string             `json:"paymentMethod"`
	DeliveryFee       *decimal.Decimal   `json:"deliveryFee"`
	ExpectedTotal     *decimal.Decimal   `json:"expectedTotal"`
	Notes             string             `json:"notes"`
	Items             []OrderLineRequest `json:"items"`
}

type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type OrderItemResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	UnitPrice   string `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	LineTotal   string `json:"lineTotal"`
}

type ShippingAddressResponse struct {
	AddressID     string `json:"addressId"`
	RecipientName string `json:"recipientName,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Line1         string `json:"line1"`
	Line2         string `json:"line2,omitempty"`
	City          string `json:"city"`
	Region        string `json:"region,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	Country       string `json:"country"`
}

type OrderResponse struct {
	ID              string                  `json:"id"`
	CustomerID      string                  `json:"customerId"`
	Status          string                  `json:"status"`
	PaymentMethod   string                  `json:"paymentMethod"`
	OrderDate       time.Time               `json:"orderDate"`
	DeliveryFee     string                  `json:"deliveryFee"`
	TotalAmount     string                  `json:"totalAmount"`
	Notes           string                  `json:"notes,omitempty"`
	DocumentURL     *string                 `json:"documentUrl"`
	ShippingAddress ShippingAddressResponse `json:"shippingAddress"`
	Items           []OrderItemResponse     `json:"items"`
}

func newOrderResponse(r queries.GetOrderQueryResponse) OrderResponse {
	out := OrderResponse{
		ID:            r.ID.String(),
		CustomerID:    r.CustomerID.String(),
		Status:        r.Status,
		PaymentMethod: r.PaymentMethod,
		OrderDate:     r.OrderDate,
		DeliveryFee:   money(r.DeliveryFee),
		TotalAmount:   money(r.TotalAmount),
		Notes:         r.Notes,
		DocumentURL:   r.DocumentURL,
		ShippingAddress: ShippingAddressResponse{
			AddressID:     r.Shipping.AddressID.String(),
			RecipientName: r.Shipping.RecipientName,
			Phone:         r.Shipping.Phone,
			Line1:         r.Shipping.Line1,
			Line2:         r.Shipping.Line2,
			City:          r.Shipping.City,
			Region:        r.Shipping.Region,
			PostalCode:    r.Shipping.PostalCode,
			Country:       r.Shipping.Country,
		},
		Items: make([]OrderItemResponse, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		out.Items = append(out.Items, OrderItemResponse{
			ID:          item.ID.String(),
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			UnitPrice:   money(item.UnitPrice),
			Quantity:    item.Quantity,
			LineTotal:   money(item.LineTotal),
		})
	}
	return out
}

type OrderStatsResponse struct {
	ByStatus     map[string]int `json:"byStatus"`
	Total        int            `json:"total"`
	PlacedToday  int            `json:"placedToday"`
	TotalRevenue string         `json:"totalRevenue"`
}

func newOrderStatsResponse(r queries.GetOrderStatsQueryResponse) OrderStatsResponse {
	return OrderStatsResponse{
		ByStatus:     r.ByStatus,
		Total:        r.Total,
		PlacedToday:  r.PlacedToday,
		TotalRevenue: money(r.TotalRevenue),
	}
}
