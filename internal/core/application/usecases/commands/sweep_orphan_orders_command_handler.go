package commands

import (
	"context"
	"fmt"
	"log/slog"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/metrics"
)

// SweepOrphanOrdersCommandHandler closes the gap left by a process that died
// between the writes of an order creation: the stock taken for the persisted
// items is returned and the partial order deleted.
type SweepOrphanOrdersCommandHandler struct {
	uowFactory FulfilmentUoWFactory
	clock      clock.Clock
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewSweepOrphanOrdersCommandHandler(
	uowFactory FulfilmentUoWFactory,
	clk clock.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
) SweepOrphanOrdersCommandHandler {
	return SweepOrphanOrdersCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     logger.With("component", "orphan_sweeper"),
		metrics:    m,
	}
}

// Handle returns the number of orders removed. A failure on one order is
// logged and the sweep moves on to the next.
func (h SweepOrphanOrdersCommandHandler) Handle(ctx context.Context, cmd SweepOrphanOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	cutoff := h.clock.Now().Add(-cmd.GracePeriod())
	orphans, err := h.uowFactory.Create().OrderRepository().FindIncomplete(ctx, cutoff, cmd.Limit())
	if err != nil {
		return 0, fmt.Errorf("find incomplete orders: %w", err)
	}

	swept := 0
	for _, o := range orphans {
		if err = ctx.Err(); err != nil {
			break
		}
		if err = h.sweep(ctx, o); err != nil {
			h.logger.ErrorContext(ctx, "failed to sweep orphan order", "orderId", o.ID().String(), "error", err)
			continue
		}
		swept++
		h.logger.InfoContext(ctx, "orphan order removed",
			"orderId", o.ID().String(), "items", len(o.Items()), "expectedItems", o.ExpectedItems())
	}

	h.metrics.OrphansSwept(swept)
	return swept, nil
}

// sweep returns the stock first and deletes last, so a failed delete is
// undone by taking the stock again. A cancelled order already gave its stock
// back and is only deleted.
func (h SweepOrphanOrdersCommandHandler) sweep(ctx context.Context, o *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	if o.Status() == order.Cancelled {
		h.logger.WarnContext(ctx, "incomplete order was cancelled, deleting without returning stock",
			"orderId", o.ID().String())
	}
	for _, item := range h.stockToReturn(o) {
		restored, err := uow.ProductRepository().IncrementStock(ctx, item.ProductID(), item.Quantity())
		if err != nil {
			return h.abort(ctx, uow, o, err)
		}
		if !restored {
			h.logger.WarnContext(ctx, "product no longer exists, stock not restored",
				"orderId", o.ID().String(), "productId", item.ProductID().String())
		}
	}

	if err := uow.OrderRepository().Delete(ctx, o.ID()); err != nil {
		return h.abort(ctx, uow, o, err)
	}
	return uow.Commit(ctx)
}

func (h SweepOrphanOrdersCommandHandler) stockToReturn(o *order.Order) []order.Item {
	if o.Status() == order.Cancelled {
		return nil
	}
	return o.Items()
}

func (h SweepOrphanOrdersCommandHandler) abort(ctx context.Context, uow FulfilmentUoW, o *order.Order, cause error) error {
	h.metrics.Compensated("sweep_orphan_order")
	if err := uow.Rollback(ctx); err != nil {
		return fmt.Errorf("sweep order %s: %w (rollback: %w)", o.ID(), cause, err)
	}
	return fmt.Errorf("sweep order %s: %w", o.ID(), cause)
}
