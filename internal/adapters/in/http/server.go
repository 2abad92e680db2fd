// Package http exposes the storefront over HTTP with echo. Handlers translate
// requests into commands and queries and map domain errors to status codes
// with localized messages.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"storefront/internal/adapters/out/postgres/documentrepo"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/i18n"
	"storefront/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/routers"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Use cases the server depends on.
type (
	CartReader interface {
		Handle(ctx context.Context, query queries.GetCartQuery) (queries.GetCartQueryResponse, error)
	}

	CartItemSetter interface {
		Handle(ctx context.Context, cmd commands.SetCartItemCommand) error
	}

	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}

	OrderReader interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}

	OrderStatusChanger interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) error
	}

	OrderStatsReader interface {
		Handle(ctx context.Context, query queries.GetOrderStatsQuery) (queries.GetOrderStatsQueryResponse, error)
	}

	InvoiceGenerator interface {
		Handle(ctx context.Context, cmd commands.GenerateInvoiceCommand) (commands.Document, error)
	}

	DocumentReader interface {
		Get(ctx context.Context, name string) (documentrepo.Document, error)
	}
)

// Deps groups what NewServer needs. Idempotency may be nil, in which case
// Idempotency-Key headers are ignored.
type Deps struct {
	GetCart       CartReader
	SetCartItem   CartItemSetter
	CreateOrder   OrderCreator
	GetOrder      OrderReader
	ChangeStatus  OrderStatusChanger
	GetOrderStats OrderStatsReader
	Invoice       InvoiceGenerator
	Documents     DocumentReader
	Idempotency   ports.IdempotencyStore
	Catalog       *i18n.Catalog
	Metrics       *metrics.Metrics
	Logger        *slog.Logger
}

type Server struct {
	// Command handlers
	setCartItem  CartItemSetter
	createOrder  OrderCreator
	changeStatus OrderStatusChanger
	invoice      InvoiceGenerator

	// Query handlers
	getCart       CartReader
	getOrder      OrderReader
	getOrderStats OrderStatsReader
	documents     DocumentReader

	routes      map[string]*routers.Route
	idempotency ports.IdempotencyStore
	catalog     *i18n.Catalog
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

func NewServer(d Deps) (*Server, error) {
	doc, err := Spec()
	if err != nil {
		return nil, err
	}

	catalog := d.Catalog
	if catalog == nil {
		catalog = i18n.NewCatalog()
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		setCartItem:   d.SetCartItem,
		createOrder:   d.CreateOrder,
		changeStatus:  d.ChangeStatus,
		invoice:       d.Invoice,
		getCart:       d.GetCart,
		getOrder:      d.GetOrder,
		getOrderStats: d.GetOrderStats,
		documents:     d.Documents,
		routes:        documentedRoutes(doc),
		idempotency:   d.Idempotency,
		catalog:       catalog,
		metrics:       d.Metrics,
		logger:        logger.With("component", "http"),
	}, nil
}

// Register mounts every route on e. Documented routes are validated against
// the embedded OpenAPI document after authentication.
func (s *Server) Register(e *echo.Echo) {
	e.Use(s.observe)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(SwaggerInstance)))

	auth, admin, valid := s.authenticate, s.requireAdmin, s.validate

	e.GET("/cart", s.GetCart, auth, valid)
	e.PUT("/cart/items/:productId", s.SetCartItem, auth, valid)

	e.POST("/orders", s.CreateOrder, auth, valid)
	e.GET("/orders/stats", s.GetOrderStats, auth, admin, valid)
	e.GET("/orders/:id", s.GetOrder, auth, valid)
	e.POST("/orders/:id/confirm", s.ConfirmOrder, auth, admin, valid)
	e.POST("/orders/:id/cancel", s.CancelOrder, auth, valid)
	e.POST("/orders/:id/update-status", s.UpdateOrderStatus, auth, admin, valid)
	e.POST("/orders/:id/invoice", s.GenerateInvoice, auth, valid)

	e.GET("/documents/:name", s.GetDocument, auth, admin, valid)
}
