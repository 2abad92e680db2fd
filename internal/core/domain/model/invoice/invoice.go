// Package invoice assembles the document handed to a renderer. It is a pure
// projection of an order; nothing here is persisted except the rendered
// document reference stored back on the order.
package invoice

import (
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// ContentType of every rendered invoice.
const ContentType = "application/pdf"

// NumberFor derives the invoice number from the order: INV-<YYYYMM>-<last 6 of id>.
//
//	NumberFor(id "…-3f9a2c1b7e4d", 2026-03-14) == "INV-202603-1B7E4D"
func NumberFor(orderID kernel.UUID, orderDate time.Time) string {
	compact := strings.ReplaceAll(orderID.String(), "-", "")
	suffix := compact[len(compact)-6:]
	return fmt.Sprintf("INV-%s-%s", orderDate.UTC().Format("200601"), strings.ToUpper(suffix))
}

// FileName is the attachment name offered to the browser and used in the archive.
func FileName(number string) string {
	return number + ".pdf"
}

type Party struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Address struct {
	RecipientName string `json:"recipientName,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Line1         string `json:"line1"`
	Line2         string `json:"line2,omitempty"`
	City          string `json:"city"`
	Region        string `json:"region,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	Country       string `json:"country"`
}

type Line struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// Payload is everything a renderer needs to draw the invoice.
type Payload struct {
	Number        string          `json:"invoiceNumber"`
	IssuedAt      time.Time       `json:"issuedAt"`
	OrderID       string          `json:"orderId"`
	OrderDate     time.Time       `json:"orderDate"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes,omitempty"`
	Customer      Party           `json:"customer"`
	ShipTo        Address         `json:"shippingAddress"`
	Lines         []Line          `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DeliveryFee   decimal.Decimal `json:"deliveryFee"`
	Total         decimal.Decimal `json:"total"`
}

// NewPayload projects the order header, its items and the customer. Prices are
// the snapshots stored on the items; the total is the stored order total.
func NewPayload(o *order.Order, items []order.Item, c *customer.Customer, issuedAt time.Time) Payload {
	ship := o.ShippingAddress().Fields()

	p := Payload{
		Number:        NumberFor(o.ID(), o.OrderDate()),
		IssuedAt:      issuedAt.UTC(),
		OrderID:       o.ID().String(),
		OrderDate:     o.OrderDate(),
		Status:        o.Status().String(),
		PaymentMethod: o.PaymentMethod().String(),
		Notes:         o.Notes(),
		Customer:      Party{Name: c.Name(), Email: c.Email()},
		ShipTo: Address{
			RecipientName: ship.RecipientName,
			Phone:         ship.Phone,
			Line1:         ship.Line1,
			Line2:         ship.Line2,
			City:          ship.City,
			Region:        ship.Region,
			PostalCode:    ship.PostalCode,
			Country:       ship.Country,
		},
		Lines:       make([]Line, 0, len(items)),
		Subtotal:    decimal.Zero,
		DeliveryFee: o.DeliveryFee(),
		Total:       o.TotalAmount(),
	}

	for _, item := range items {
		p.Lines = append(p.Lines, Line{
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
			LineTotal:   item.LineTotal(),
		})
		p.Subtotal = p.Subtotal.Add(item.LineTotal())
	}
	p.Subtotal = p.Subtotal.Round(kernel.MoneyPlaces)
	return p
}
