package services

import (
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DeliveryFeePolicy charges a flat fee per order. When freeThreshold is
// positive, subtotals at or above it ship for free. An empty subtotal never
// pays delivery.
//
// Example:
//
//	policy, _ := services.NewDeliveryFeePolicy(decimal.RequireFromString("5.00"), decimal.RequireFromString("100.00"))
//	policy.FeeFor(decimal.RequireFromString("55.00"))  // 5.00
//	policy.FeeFor(decimal.RequireFromString("120.00")) // 0.00
type DeliveryFeePolicy struct {
	flatFee       decimal.Decimal
	freeThreshold decimal.Decimal
}

// NewDeliveryFeePolicy validates both amounts. A zero threshold disables free delivery.
func NewDeliveryFeePolicy(flatFee, freeThreshold decimal.Decimal) (DeliveryFeePolicy, error) {
	fee, err := kernel.NewAmount("delivery fee", flatFee)
	if err != nil {
		return DeliveryFeePolicy{}, err
	}
	threshold, err := kernel.NewAmount("free delivery threshold", freeThreshold)
	if err != nil {
		return DeliveryFeePolicy{}, err
	}
	return DeliveryFeePolicy{flatFee: fee, freeThreshold: threshold}, nil
}

// FeeFor returns the delivery fee for subtotal.
func (p DeliveryFeePolicy) FeeFor(subtotal decimal.Decimal) decimal.Decimal {
	if !subtotal.IsPositive() {
		return decimal.Zero
	}
	if p.freeThreshold.IsPositive() && subtotal.GreaterThanOrEqual(p.freeThreshold) {
		return decimal.Zero
	}
	return p.flatFee
}

// QuoteLine is one priced product line.
type QuoteLine struct {
	ProductID   kernel.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	LineTotal   decimal.Decimal
}

// LineFor prices quantity units of p at its current price.
func LineFor(p *product.Product, quantity int) QuoteLine {
	return QuoteLine{
		ProductID:   p.ID(),
		ProductName: p.Name(),
		UnitPrice:   p.UnitPrice(),
		Quantity:    quantity,
	}
}

// Quote is the priced content of a cart or of an order about to be written.
type Quote struct {
	Lines       []QuoteLine
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// OrderPricer turns product lines into a Quote.
//
// Business rules:
//   - line total = unit price × quantity, rounded to cents
//   - subtotal = Σ line totals
//   - delivery fee comes from the DeliveryFeePolicy
//   - total = subtotal + delivery fee
//
// Example usage:
//
//	pricer := services.NewOrderPricer(policy)
//	quote, err := pricer.Price([]services.QuoteLine{services.LineFor(mug, 2), services.LineFor(towel, 1)})
//	// quote.Subtotal 55.00, quote.DeliveryFee 5.00, quote.Total 60.00
type OrderPricer struct {
	policy DeliveryFeePolicy
}

func NewOrderPricer(policy DeliveryFeePolicy) OrderPricer {
	return OrderPricer{policy: policy}
}

// Policy exposes the fee policy used by the pricer.
func (p OrderPricer) Policy() DeliveryFeePolicy {
	return p.policy
}

// Price computes line totals, subtotal, delivery fee and total. An empty input
// yields a zero quote. Quantities must be positive.
func (p OrderPricer) Price(lines []QuoteLine) (Quote, error) {
	q := Quote{
		Lines:    make([]QuoteLine, 0, len(lines)),
		Subtotal: decimal.Zero,
	}

	for _, line := range lines {
		if line.Quantity <= 0 {
			return Quote{}, errs.NewValueIsOutOfRangeError("quantity", line.Quantity, 1, "unbounded")
		}
		line.LineTotal = kernel.LineTotal(line.UnitPrice, line.Quantity)
		q.Subtotal = q.Subtotal.Add(line.LineTotal)
		q.Lines = append(q.Lines, line)
	}

	q.Subtotal = q.Subtotal.Round(kernel.MoneyPlaces)
	q.DeliveryFee = p.policy.FeeFor(q.Subtotal).Round(kernel.MoneyPlaces)
	q.Total = q.Subtotal.Add(q.DeliveryFee).Round(kernel.MoneyPlaces)
	return q, nil
}
