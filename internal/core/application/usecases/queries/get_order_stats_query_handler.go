package queries

import (
	"context"
	"database/sql"

	"storefront/internal/pkg/clock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetOrderStatsQueryHandler struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewGetOrderStatsQueryHandler(db *gorm.DB, clk clock.Clock) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{db: db, clock: clk}
}

func (h GetOrderStatsQueryHandler) Handle(ctx context.Context, query GetOrderStatsQuery) (GetOrderStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	rows, err := db.Raw(`
		SELECT status, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return GetOrderStatsQueryResponse{}, err
	}
	defer rows.Close()

	groups := make([]StatusGroup, 0)
	for rows.Next() {
		var (
			status  sql.NullString
			count   int
			revenue decimal.Decimal
		)
		if err = rows.Scan(&status, &count, &revenue); err != nil {
			return GetOrderStatsQueryResponse{}, err
		}
		groups = append(groups, StatusGroup{Status: status.String, Count: count, Revenue: revenue})
	}
	if err = rows.Err(); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	var today int
	start := clock.StartOfDay(h.clock.Now().UTC())
	if err = db.Raw(
		`SELECT COUNT(*) FROM orders WHERE order_date >= ? AND order_date < ?`,
		start, start.AddDate(0, 0, 1),
	).Row().Scan(&today); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	return FoldStats(groups, today), nil
}
