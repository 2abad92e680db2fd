package cmd

import (
	"context"
	"errors"
	"log/slog"

	httpadapter "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/kafka"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/documentrepo"
	redisadapter "storefront/internal/adapters/out/redis"
	"storefront/internal/adapters/out/renderer"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/i18n"
	"storefront/internal/pkg/metrics"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type eventPublisher interface {
	ports.OrderEventPublisher
	Close() error
}

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	documents  *documentrepo.GormDocumentStore
	publisher  eventPublisher
	redis      *goredis.Client
	clock      clock.Clock
	logger     *slog.Logger
	metrics    *metrics.Metrics

	invoiceHandler *commands.GenerateInvoiceCommandHandler
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		documents:  documentrepo.NewGormDocumentStore(gormDB, config.PublicBaseURL),
		publisher:  kafka.NoopPublisher{},
		clock:      clock.NewSystem(),
		logger:     logger,
		metrics:    metrics.New(),
	}

	if brokers := kafka.ParseBrokers(config.KafkaHost); len(brokers) > 0 {
		c.publisher = kafka.NewOrderEventPublisher(brokers, config.KafkaOrderChangedTopic)
	} else {
		logger.Info("KAFKA_HOST is not set, order events are not published")
	}

	if config.RedisAddr != "" {
		c.redis = goredis.NewClient(&goredis.Options{Addr: config.RedisAddr})
	} else {
		logger.Info("REDIS_ADDR is not set, Idempotency-Key headers are ignored")
	}
	return c
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) pricer() (services.OrderPricer, error) {
	policy, err := services.NewDeliveryFeePolicy(c.config.DeliveryFee, c.config.FreeDeliveryThreshold)
	if err != nil {
		return services.OrderPricer{}, err
	}
	return services.NewOrderPricer(policy), nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() (*commands.CreateOrderCommandHandler, error) {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	pricer, err := c.pricer()
	if err != nil {
		return nil, err
	}
	h := commands.NewCreateOrderCommandHandler(f, pricer, c.publisher, c.clock, c.logger, c.metrics)
	return &h, nil
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() *commands.ChangeOrderStatusCommandHandler {
	var f commands.FulfilmentUoWFactory = FuncFulfilmentUoWFactory(func() commands.FulfilmentUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewChangeOrderStatusCommandHandler(
		f, c.publisher, c.clock, c.logger, c.metrics, c.config.StatusUpdateAttempts,
	)
	return &h
}

// CreateGenerateInvoiceCommandHandler returns the single invoice coordinator;
// Close waits for its background archiving.
func (c *CompositionRoot) CreateGenerateInvoiceCommandHandler() *commands.GenerateInvoiceCommandHandler {
	if c.invoiceHandler != nil {
		return c.invoiceHandler
	}

	var f commands.InvoiceUoWFactory = FuncInvoiceUoWFactory(func() commands.InvoiceUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewGenerateInvoiceCommandHandler(
		f, c.renderer(), c.documents, c.clock, c.logger, c.metrics,
		commands.InvoiceTimeouts{Render: c.config.RenderTimeout, Archive: c.config.ArchiveTimeout},
	)
	c.invoiceHandler = &h
	return c.invoiceHandler
}

func (c *CompositionRoot) renderer() ports.InvoiceRenderer {
	if c.config.RendererURL == "" {
		c.logger.Info("RENDERER_URL is not set, invoices are rendered in process")
		return renderer.NewPDFRenderer("Storefront")
	}
	r, err := renderer.NewHTTPRenderer(c.config.RendererURL, c.config.RenderTimeout)
	if err != nil {
		c.logger.Warn("invalid renderer configuration, rendering in process", "error", err)
		return renderer.NewPDFRenderer("Storefront")
	}
	return r
}

func (c *CompositionRoot) CreateSetCartItemCommandHandler() commands.SetCartItemCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetCartItemCommandHandler(f)
}

func (c *CompositionRoot) CreateSweepOrphanOrdersCommandHandler() commands.SweepOrphanOrdersCommandHandler {
	var f commands.FulfilmentUoWFactory = FuncFulfilmentUoWFactory(func() commands.FulfilmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSweepOrphanOrdersCommandHandler(f, c.clock, c.logger, c.metrics)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() (queries.GetCartQueryHandler, error) {
	pricer, err := c.pricer()
	if err != nil {
		return queries.GetCartQueryHandler{}, err
	}
	return queries.NewGetCartQueryHandler(c.gormDB, pricer, c.logger), nil
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatsQueryHandler() queries.GetOrderStatsQueryHandler {
	return queries.NewGetOrderStatsQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) idempotencyStore() ports.IdempotencyStore {
	if c.redis == nil {
		return nil
	}
	return redisadapter.NewIdempotencyStore(c.redis, c.config.IdempotencyTTL)
}

// CreateServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateServer() (*httpadapter.Server, error) {
	createOrder, err := c.CreateCreateOrderCommandHandler()
	if err != nil {
		return nil, err
	}
	getCart, err := c.CreateGetCartQueryHandler()
	if err != nil {
		return nil, err
	}

	return httpadapter.NewServer(httpadapter.Deps{
		GetCart:       getCart,
		SetCartItem:   c.CreateSetCartItemCommandHandler(),
		CreateOrder:   createOrder,
		GetOrder:      c.CreateGetOrderQueryHandler(),
		ChangeStatus:  c.CreateChangeOrderStatusCommandHandler(),
		GetOrderStats: c.CreateGetOrderStatsQueryHandler(),
		Invoice:       c.CreateGenerateInvoiceCommandHandler(),
		Documents:     c.documents,
		Idempotency:   c.idempotencyStore(),
		Catalog:       i18n.NewCatalog(),
		Metrics:       c.metrics,
		Logger:        c.logger,
	})
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	sweep, err := commands.NewSweepOrphanOrdersCommand(c.config.OrphanGracePeriod, commands.DefaultOrphanSweepLimit)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(c.CreateSweepOrphanOrdersCommandHandler(), sweep, c.logger), nil
}

// Close waits for background invoice archiving and releases the clients.
func (c *CompositionRoot) Close(ctx context.Context) error {
	if c.invoiceHandler != nil {
		done := make(chan struct{})
		go func() {
			c.invoiceHandler.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			c.logger.Warn("shutdown before invoice archiving finished")
		}
	}

	var errList []error
	if err := c.publisher.Close(); err != nil {
		errList = append(errList, err)
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncFulfilmentUoWFactory func() commands.FulfilmentUoW

func (f FuncFulfilmentUoWFactory) Create() commands.FulfilmentUoW {
	return f()
}

type FuncInvoiceUoWFactory func() commands.InvoiceUoW

func (f FuncInvoiceUoWFactory) Create() commands.InvoiceUoW {
	return f()
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}
