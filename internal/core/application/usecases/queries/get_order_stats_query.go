package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderStatsQueryIsNotConstructed = errors.New(
	"GetOrderStatsQuery must be created via NewGetOrderStatsQuery constructor",
)

type GetOrderStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOrderStatsQuery() GetOrderStatsQuery {
	return GetOrderStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatsQueryIsNotConstructed)
}

type GetOrderStatsQueryResponse struct {
	ByStatus     map[string]int
	Total        int
	PlacedToday  int
	TotalRevenue decimal.Decimal
}

// StatusGroup is one row of the per-status aggregation. Status is the raw
// stored value and may be empty.
type StatusGroup struct {
	Status  string
	Count   int
	Revenue decimal.Decimal
}

// FoldStats folds grouped rows into the response. Every status is present in
// ByStatus, unknown or empty values count as PendingConfirmation and revenue
// skips cancelled orders.
func FoldStats(groups []StatusGroup, placedToday int) GetOrderStatsQueryResponse {
	response := GetOrderStatsQueryResponse{
		ByStatus:     make(map[string]int, len(order.Statuses())),
		PlacedToday:  placedToday,
		TotalRevenue: decimal.Zero,
	}
	for _, s := range order.Statuses() {
		response.ByStatus[s.String()] = 0
	}

	for _, g := range groups {
		status := order.ParseStatusOrPending(g.Status)
		response.ByStatus[status.String()] += g.Count
		response.Total += g.Count
		if status != order.Cancelled {
			response.TotalRevenue = response.TotalRevenue.Add(g.Revenue)
		}
	}
	response.TotalRevenue = response.TotalRevenue.Round(kernel.MoneyPlaces)
	return response
}
