package http

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/principal"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// IdempotencyHeader carries the client's key for POST /orders.
const IdempotencyHeader = "Idempotency-Key"

// CreateOrder handles POST /orders. With an Idempotency-Key a repeated request
// gets the order id of the first one instead of a second order.
func (s *Server) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	p, err := currentPrincipal(c)
	if err != nil {
		return s.fail(c, "create order", err)
	}

	var body CreateOrderRequest
	if err = c.Bind(&body); err != nil {
		return s.fail(c, "create order", errMalformedRequest)
	}

	key := strings.TrimSpace(c.Request().Header.Get(IdempotencyHeader))
	if key != "" && s.idempotency != nil {
		key = p.UserID.String() + ":" + key
		previous, reserved, reserveErr := s.idempotency.Reserve(ctx, key)
		if reserveErr != nil {
			return s.fail(c, "create order", errs.NewUpstreamError("reserve idempotency key", reserveErr))
		}
		if !reserved {
			if previous == "" {
				return s.fail(c, "create order", errRequestInFlight)
			}
			return c.JSON(http.StatusOK, CreateOrderResponse{OrderID: previous})
		}
	} else {
		key = ""
	}

	orderID, err := s.placeOrder(ctx, p, body)
	if err != nil {
		if key != "" {
			if releaseErr := s.idempotency.Release(context.WithoutCancel(ctx), key); releaseErr != nil {
				s.logger.WarnContext(ctx, "failed to release idempotency key", "error", releaseErr)
			}
		}
		return s.fail(c, "create order", err)
	}

	if key != "" {
		if completeErr := s.idempotency.Complete(context.WithoutCancel(ctx), key, orderID.String()); completeErr != nil {
			s.logger.WarnContext(ctx, "failed to record idempotency result",
				"orderId", orderID.String(), "error", completeErr)
		}
	}
	return c.JSON(http.StatusCreated, CreateOrderResponse{OrderID: orderID.String()})
}

func (s *Server) placeOrder(ctx context.Context, p principal.Principal, body CreateOrderRequest) (kernel.UUID, error) {
	addressID, err := kernel.UUIDFromString(body.ShippingAddressID)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("shippingAddressId", err)
	}

	items, fee, err := s.orderLines(ctx, p, body)
	if err != nil {
		return kernel.UUID{}, err
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(commands.CreateOrderInput{
		OrderID:           orderID,
		CustomerID:        p.UserID,
		ShippingAddressID: addressID,
		Items:             items,
		DeliveryFee:       fee,
		PaymentMethod:     body.PaymentMethod,
		ExpectedTotal:     body.ExpectedTotal,
		Notes:             body.Notes,
	})
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = s.createOrder.Handle(ctx, cmd); err != nil {
		return kernel.UUID{}, err
	}
	return orderID, nil
}

// orderLines returns the lines from the body, or from the cart when the body has none.
func (s *Server) orderLines(
	ctx context.Context, p principal.Principal, body CreateOrderRequest,
) ([]cart.Item, decimal.Decimal, error) {
	if len(body.Items) > 0 {
		items := make([]cart.Item, 0, len(body.Items))
		for _, line := range body.Items {
			productID, err := kernel.UUIDFromString(line.ProductID)
			if err != nil {
				return nil, decimal.Zero, errs.NewValueIsInvalidErrorWithCause("productId", err)
			}
			item, err := cart.NewItem(productID, line.Quantity)
			if err != nil {
				return nil, decimal.Zero, err
			}
			items = append(items, item)
		}
		return items, deliveryFee(body, decimal.Zero), nil
	}

	query, err := queries.NewGetCartQuery(p.UserID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	quote, err := s.getCart.Handle(ctx, query)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if len(quote.Items) == 0 {
		return nil, decimal.Zero, commands.ErrCartIsEmpty
	}

	items := make([]cart.Item, 0, len(quote.Items))
	for _, line := range quote.Items {
		item, err := cart.NewItem(line.ProductID, line.Quantity)
		if err != nil {
			return nil, decimal.Zero, err
		}
		items = append(items, item)
	}

	return items, deliveryFee(body, quote.DeliveryFee), nil
}

// deliveryFee prefers the fee sent by the client. The request schema makes
// it mandatory whenever explicit items are sent.
func deliveryFee(body CreateOrderRequest, fallback decimal.Decimal) decimal.Decimal {
	if body.DeliveryFee == nil {
		return fallback
	}
	return *body.DeliveryFee
}

// GetOrder handles GET /orders/:id. Customers only see their own orders.
func (s *Server) GetOrder(c echo.Context) error {
	response, err := s.loadOrder(c)
	if err != nil {
		return s.fail(c, "get order", err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(response))
}

func (s *Server) loadOrder(c echo.Context) (queries.GetOrderQueryResponse, error) {
	p, err := currentPrincipal(c)
	if err != nil {
		return queries.GetOrderQueryResponse{}, err
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return queries.GetOrderQueryResponse{}, err
	}
	query, err := queries.NewGetOrderQuery(orderID, p.UserID, p.IsAdmin())
	if err != nil {
		return queries.GetOrderQueryResponse{}, err
	}
	return s.getOrder.Handle(c.Request().Context(), query)
}

// ConfirmOrder handles POST /orders/:id/confirm.
func (s *Server) ConfirmOrder(c echo.Context) error {
	return s.changeOrderStatus(c, "confirm order", order.Confirmed)
}

// CancelOrder handles POST /orders/:id/cancel. Customers may cancel their own orders.
func (s *Server) CancelOrder(c echo.Context) error {
	if _, err := s.loadOrder(c); err != nil {
		return s.fail(c, "cancel order", err)
	}
	return s.changeOrderStatus(c, "cancel order", order.Cancelled)
}

// UpdateOrderStatus handles POST /orders/:id/update-status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	var body UpdateOrderStatusRequest
	if err := c.Bind(&body); err != nil {
		return s.fail(c, "update order status", errMalformedRequest)
	}
	target, err := order.ParseStatus(body.Status)
	if err != nil {
		return s.fail(c, "update order status", err)
	}
	return s.changeOrderStatus(c, "update order status", target)
}

func (s *Server) changeOrderStatus(c echo.Context, operation string, target order.Status) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, operation, err)
	}
	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target)
	if err != nil {
		return s.fail(c, operation, err)
	}
	if err = s.changeStatus.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, operation, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// GetOrderStats handles GET /orders/stats.
func (s *Server) GetOrderStats(c echo.Context) error {
	stats, err := s.getOrderStats.Handle(c.Request().Context(), queries.NewGetOrderStatsQuery())
	if err != nil {
		return s.fail(c, "get order stats", err)
	}
	return c.JSON(http.StatusOK, newOrderStatsResponse(stats))
}
