package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/metrics"
)

// CreateOrderCommandHandler writes an order header and its items, taking stock
// for every line. The store cannot run these statements atomically, so the
// handler runs them inside a compensating unit of work: when any step fails,
// the items already inserted are deleted, the stock already taken is returned
// and the header is removed.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, pricer, publisher, clock.NewSystem(), logger, m)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("place order: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory CheckoutUoWFactory
	pricer     services.OrderPricer
	publisher  ports.OrderEventPublisher
	clock      clock.Clock
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewCreateOrderCommandHandler(
	uowFactory CheckoutUoWFactory,
	pricer services.OrderPricer,
	publisher ports.OrderEventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricer:     pricer,
		publisher:  publisher,
		clock:      clk,
		logger:     logger.With("component", "create_order"),
		metrics:    m,
	}
}

// Handle validates the request against current products, prices and stock,
// then writes the order. Returns:
//   - validation errors (including *errs.InsufficientStockError) for bad input
//   - *errs.ObjectNotFoundError for unknown products or a foreign address
//   - *errs.CompensatedCreationError when a write failed and was undone
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	o, err := h.prepare(ctx, uow, cmd)
	if err != nil {
		return err
	}

	if err = uow.Begin(ctx); err != nil {
		return err
	}

	if err = h.write(ctx, uow, o); err != nil {
		return h.compensate(ctx, uow, o.ID(), err)
	}

	if err = uow.Commit(ctx); err != nil {
		return h.compensate(ctx, uow, o.ID(), err)
	}

	h.afterCommit(ctx, uow, o)
	return nil
}

// prepare loads everything the order depends on and builds the aggregate.
// It performs no writes.
func (h *CreateOrderCommandHandler) prepare(
	ctx context.Context,
	uow CheckoutUoW,
	cmd CreateOrderCommand,
) (*order.Order, error) {
	address, err := uow.CustomerRepository().GetAddress(ctx, cmd.ShippingAddressID())
	if err != nil {
		return nil, err
	}
	if !address.BelongsTo(cmd.CustomerID()) {
		return nil, errs.NewObjectNotFoundError("shipping address", cmd.ShippingAddressID())
	}
	shipping, err := address.ToShippingAddress()
	if err != nil {
		return nil, err
	}

	lines, err := h.resolveLines(ctx, uow.ProductRepository(), cmd)
	if err != nil {
		return nil, err
	}

	quote, err := h.pricer.Price(lines)
	if err != nil {
		return nil, err
	}

	if !cmd.DeliveryFee().Equal(quote.DeliveryFee) {
		return nil, errs.NewValueIsInvalidErrorWithCause("deliveryFee", fmt.Errorf(
			"delivery fee for subtotal %s is %s, got %s",
			quote.Subtotal.StringFixed(2), quote.DeliveryFee.StringFixed(2), cmd.DeliveryFee().StringFixed(2),
		))
	}

	if expected := cmd.ExpectedTotal(); expected != nil && !expected.Equal(quote.Total) {
		return nil, errs.NewValueIsInvalidErrorWithCause("expectedTotal", fmt.Errorf(
			"order total is %s, got %s", quote.Total.StringFixed(2), expected.StringFixed(2),
		))
	}

	items := make([]order.Item, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		item, itemErr := order.NewItem(kernel.NewUUID(), line.ProductID, line.ProductName, line.Quantity, line.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.NewOrder(
		cmd.OrderID(), cmd.CustomerID(), shipping, items,
		quote.DeliveryFee, cmd.PaymentMethod(), cmd.Notes(), h.clock.Now(),
	)
}

func (h *CreateOrderCommandHandler) resolveLines(
	ctx context.Context,
	productRepo ports.ProductRepository,
	cmd CreateOrderCommand,
) ([]services.QuoteLine, error) {
	requested := cmd.Items()

	ids := make([]kernel.UUID, 0, len(requested))
	for _, item := range requested {
		ids = append(ids, item.ProductID())
	}

	found, err := productRepo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[kernel.UUID]*product.Product, len(found))
	for _, p := range found {
		byID[p.ID()] = p
	}

	lines := make([]services.QuoteLine, 0, len(requested))
	for _, item := range requested {
		p, ok := byID[item.ProductID()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("product", item.ProductID())
		}
		if err = p.EnsureAvailable(item.Quantity()); err != nil {
			return nil, err
		}
		lines = append(lines, services.LineFor(p, item.Quantity()))
	}
	return lines, nil
}

// write inserts the header, then takes stock and inserts the item line by line.
// Every successful step records its inverse in the unit of work.
func (h *CreateOrderCommandHandler) write(ctx context.Context, uow CheckoutUoW, o *order.Order) error {
	orderRepo := uow.OrderRepository()
	productRepo := uow.ProductRepository()

	if err := orderRepo.Add(ctx, o); err != nil {
		return fmt.Errorf("insert order header: %w", err)
	}

	for _, item := range o.Items() {
		if err := productRepo.DecrementStock(ctx, item.ProductID(), item.Quantity()); err != nil {
			return fmt.Errorf("take stock of product %s: %w", item.ProductID(), err)
		}
		if err := orderRepo.AddItem(ctx, o.ID(), item); err != nil {
			return fmt.Errorf("insert item for product %s: %w", item.ProductID(), err)
		}
	}
	return nil
}

// compensate undoes the recorded steps. The root cause is logged; the caller
// sees a CompensatedCreationError, or the stock shortage that was lost to a
// concurrent checkout.
func (h *CreateOrderCommandHandler) compensate(
	ctx context.Context,
	uow CheckoutUoW,
	orderID kernel.UUID,
	cause error,
) error {
	h.metrics.Compensated("create_order")

	if rollbackErr := uow.Rollback(ctx); rollbackErr != nil {
		h.logger.ErrorContext(ctx, "order creation compensation incomplete",
			"orderId", orderID.String(), "cause", cause, "error", rollbackErr)
	} else {
		h.logger.WarnContext(ctx, "order creation compensated",
			"orderId", orderID.String(), "cause", cause)
	}

	var stockErr *errs.InsufficientStockError
	if errors.As(cause, &stockErr) {
		return stockErr
	}
	return errs.NewCompensatedCreationError(orderID, cause)
}

func (h *CreateOrderCommandHandler) afterCommit(ctx context.Context, uow CheckoutUoW, o *order.Order) {
	h.metrics.OrderCreated()
	h.logger.InfoContext(ctx, "order created",
		"orderId", o.ID().String(),
		"customerId", o.CustomerID().String(),
		"total", o.TotalAmount().StringFixed(2),
		"status", o.Status().String())

	if err := uow.CartRepository().Clear(ctx, o.CustomerID()); err != nil {
		h.logger.WarnContext(ctx, "failed to clear cart after order",
			"orderId", o.ID().String(), "customerId", o.CustomerID().String(), "error", err)
	}

	if h.publisher == nil {
		return
	}
	if err := h.publisher.Publish(ctx, order.NewCreatedEvent(o, h.clock.Now())); err != nil {
		h.logger.WarnContext(ctx, "failed to publish order event",
			"orderId", o.ID().String(), "type", string(order.EventCreated), "error", err)
	}
}
