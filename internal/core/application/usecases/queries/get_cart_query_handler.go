package queries

import (
	"context"
	"log/slog"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetCartQueryHandler is the cart aggregator. Lines whose product no longer
// exists are skipped with a warning.
type GetCartQueryHandler struct {
	db     *gorm.DB
	pricer services.OrderPricer
	logger *slog.Logger
}

func NewGetCartQueryHandler(db *gorm.DB, pricer services.OrderPricer, logger *slog.Logger) GetCartQueryHandler {
	return GetCartQueryHandler{db: db, pricer: pricer, logger: logger.With("component", "cart_aggregator")}
}

func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			ci.product_id,
			p.id IS NOT NULL,
			COALESCE(p.name, ''),
			COALESCE(p.unit_price, 0),
			ci.quantity
		FROM carts c
		JOIN cart_items ci ON ci.cart_id = c.id
		LEFT JOIN products p ON p.id = ci.product_id
		WHERE c.customer_id = ?
		ORDER BY p.name, ci.product_id
	`, query.CustomerID().Bytes()).Rows()
	if err != nil {
		return GetCartQueryResponse{}, err
	}
	defer rows.Close()

	lines := make([]services.QuoteLine, 0)
	for rows.Next() {
		var (
			rawID     uuid.UUID
			exists    bool
			name      string
			unitPrice decimal.Decimal
			quantity  int
		)
		if err = rows.Scan(&rawID, &exists, &name, &unitPrice, &quantity); err != nil {
			return GetCartQueryResponse{}, err
		}

		productID, idErr := kernel.UUIDFromBytes(rawID[:])
		if idErr != nil {
			return GetCartQueryResponse{}, idErr
		}
		if !exists {
			h.logger.WarnContext(ctx, "cart references a missing product, line skipped",
				"customerId", query.CustomerID().String(), "productId", productID.String())
			continue
		}

		lines = append(lines, services.QuoteLine{
			ProductID:   productID,
			ProductName: name,
			UnitPrice:   unitPrice,
			Quantity:    quantity,
		})
	}
	if err = rows.Err(); err != nil {
		return GetCartQueryResponse{}, err
	}

	quote, err := h.pricer.Price(lines)
	if err != nil {
		return GetCartQueryResponse{}, err
	}

	response := GetCartQueryResponse{
		Items:       make([]CartLine, 0, len(quote.Lines)),
		Subtotal:    quote.Subtotal,
		DeliveryFee: quote.DeliveryFee,
		Total:       quote.Total,
	}
	for _, line := range quote.Lines {
		response.Items = append(response.Items, CartLine(line))
	}
	return response, nil
}
