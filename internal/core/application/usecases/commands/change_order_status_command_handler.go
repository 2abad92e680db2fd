package commands

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/metrics"
)

// ErrOrderIsBeingPlaced is the cause reported for an order whose items are not
// all written yet. Such an order is either still being created or left over
// from an interrupted creation, and belongs to the creation or the orphan sweep.
var ErrOrderIsBeingPlaced = errors.New("order creation has not finished")

// DefaultStatusUpdateAttempts bounds how often a status change is retried
// after losing a conditional update to a concurrent writer.
const DefaultStatusUpdateAttempts = 3

// ChangeOrderStatusCommandHandler is the order status machine.
//
// The status is written with a conditional update on the status that was
// read. Only the request that wins that update applies side effects, so a
// repeated cancel fails with *errs.InvalidTransitionError and never returns
// stock twice. Entering Cancelled returns the stock of every item; if that
// fails part-way, the returned stock is taken again and the status reverted.
type ChangeOrderStatusCommandHandler struct {
	uowFactory  FulfilmentUoWFactory
	publisher   ports.OrderEventPublisher
	clock       clock.Clock
	logger      *slog.Logger
	metrics     *metrics.Metrics
	maxAttempts int
}

func NewChangeOrderStatusCommandHandler(
	uowFactory FulfilmentUoWFactory,
	publisher ports.OrderEventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
	maxAttempts int,
) ChangeOrderStatusCommandHandler {
	if maxAttempts <= 0 {
		maxAttempts = DefaultStatusUpdateAttempts
	}
	return ChangeOrderStatusCommandHandler{
		uowFactory:  uowFactory,
		publisher:   publisher,
		clock:       clk,
		logger:      logger.With("component", "change_order_status"),
		metrics:     m,
		maxAttempts: maxAttempts,
	}
}

// Handle returns *errs.ObjectNotFoundError, also for orders whose creation
// has not finished, *errs.InvalidTransitionError,
// *errs.ConcurrencyConflictError when every attempt lost its conditional
// update, or *errs.UpstreamError when cancellation side effects failed and
// were undone.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	for attempt := 1; attempt <= h.maxAttempts; attempt++ {
		uow := h.uowFactory.Create()

		o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
		if err != nil {
			return err
		}
		if !o.IsComplete() {
			return errs.NewObjectNotFoundErrorWithCause("order", cmd.OrderID(), ErrOrderIsBeingPlaced)
		}

		previous, err := o.ChangeStatus(cmd.Target())
		if err != nil {
			return err
		}

		applied, err := h.apply(ctx, uow, o, previous)
		if err != nil {
			return err
		}
		if !applied {
			h.logger.DebugContext(ctx, "status changed concurrently, retrying",
				"orderId", o.ID().String(), "expected", previous.String(), "attempt", attempt)
			continue
		}

		h.metrics.Transition(previous.String(), o.Status().String())
		h.logger.InfoContext(ctx, "order status changed",
			"orderId", o.ID().String(), "from", previous.String(), "to", o.Status().String())
		h.publish(ctx, order.NewStatusChangedEvent(o, previous, h.clock.Now()))
		return nil
	}

	return errs.NewConcurrencyConflictError("order", cmd.OrderID(), h.maxAttempts)
}

// apply writes the new status and its side effects as one compensated unit.
// It reports false when another writer changed the status first.
func (h *ChangeOrderStatusCommandHandler) apply(
	ctx context.Context,
	uow FulfilmentUoW,
	o *order.Order,
	previous order.Status,
) (bool, error) {
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	won, err := uow.OrderRepository().UpdateStatus(ctx, o.ID(), previous, o.Status())
	if err != nil || !won {
		if rollbackErr := uow.Rollback(ctx); rollbackErr != nil {
			h.logger.DebugContext(ctx, "rollback after status update failed",
				"orderId", o.ID().String(), "error", rollbackErr)
		}
		return false, err
	}

	if o.Status() == order.Cancelled {
		if err = h.restoreStock(ctx, uow, o); err != nil {
			h.metrics.Compensated("cancel_order")
			rollbackErr := uow.Rollback(ctx)
			h.logger.ErrorContext(ctx, "stock restoration failed, cancellation undone",
				"orderId", o.ID().String(), "error", err, "rollbackError", rollbackErr)
			return false, errs.NewUpstreamError("restore stock", errors.Join(err, rollbackErr))
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (h *ChangeOrderStatusCommandHandler) restoreStock(ctx context.Context, uow FulfilmentUoW, o *order.Order) error {
	productRepo := uow.ProductRepository()

	for _, item := range o.Items() {
		restored, err := productRepo.IncrementStock(ctx, item.ProductID(), item.Quantity())
		if err != nil {
			return err
		}
		if !restored {
			h.logger.WarnContext(ctx, "product no longer exists, stock not restored",
				"orderId", o.ID().String(), "productId", item.ProductID().String(), "quantity", item.Quantity())
		}
	}
	return nil
}

func (h *ChangeOrderStatusCommandHandler) publish(ctx context.Context, event order.Event) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "failed to publish order event",
			"orderId", event.OrderID.String(), "type", string(event.Type), "error", err)
	}
}
