package commands

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/domain/model/invoice"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultRenderTimeout  = 15 * time.Second
	DefaultArchiveTimeout = 30 * time.Second
)

// Document is a rendered invoice ready to be sent to the client.
type Document struct {
	Number      string
	FileName    string
	ContentType string
	Data        []byte
}

// InvoiceTimeouts bounds the collaborator calls of the invoice coordinator.
type InvoiceTimeouts struct {
	Render  time.Duration
	Archive time.Duration
}

// GenerateInvoiceCommandHandler is the invoice coordinator. It assembles the
// payload, has it rendered and returns the bytes at once; archiving the
// document and recording its URL on the order happen in the background and
// never fail the download. Wait blocks until background archiving is done.
type GenerateInvoiceCommandHandler struct {
	uowFactory InvoiceUoWFactory
	renderer   ports.InvoiceRenderer
	store      ports.DocumentStore
	clock      clock.Clock
	logger     *slog.Logger
	metrics    *metrics.Metrics
	timeouts   InvoiceTimeouts
	background *sync.WaitGroup
}

func NewGenerateInvoiceCommandHandler(
	uowFactory InvoiceUoWFactory,
	renderer ports.InvoiceRenderer,
	store ports.DocumentStore,
	clk clock.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
	timeouts InvoiceTimeouts,
) GenerateInvoiceCommandHandler {
	if timeouts.Render <= 0 {
		timeouts.Render = DefaultRenderTimeout
	}
	if timeouts.Archive <= 0 {
		timeouts.Archive = DefaultArchiveTimeout
	}
	return GenerateInvoiceCommandHandler{
		uowFactory: uowFactory,
		renderer:   renderer,
		store:      store,
		clock:      clk,
		logger:     logger.With("component", "invoice"),
		metrics:    m,
		timeouts:   timeouts,
		background: &sync.WaitGroup{},
	}
}

// Handle returns *errs.ObjectNotFoundError, *errs.InvoiceNotAllowedError for
// cancelled orders, or *errs.InvoiceGenerationFailedError when rendering fails
// or times out.
func (h *GenerateInvoiceCommandHandler) Handle(ctx context.Context, cmd GenerateInvoiceCommand) (Document, error) {
	if err := cmd.Validate(); err != nil {
		return Document{}, err
	}

	uow := h.uowFactory.Create()
	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetHeader(ctx, cmd.OrderID())
	if err != nil {
		return Document{}, err
	}
	if !o.Status().AllowsInvoice() {
		return Document{}, errs.NewInvoiceNotAllowedError(o.ID(), o.Status())
	}

	items, buyer, err := h.load(ctx, uow, o)
	if err != nil {
		return Document{}, err
	}

	payload := invoice.NewPayload(o, items, buyer, h.clock.Now())

	renderCtx, cancel := context.WithTimeout(ctx, h.timeouts.Render)
	data, err := h.renderer.Render(renderCtx, payload)
	cancel()
	if err == nil && len(data) == 0 {
		err = errors.New("renderer returned an empty document")
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "invoice rendering failed", "orderId", o.ID().String(), "error", err)
		return Document{}, errs.NewInvoiceGenerationFailedError(o.ID(), err)
	}

	doc := Document{
		Number:      payload.Number,
		FileName:    invoice.FileName(payload.Number),
		ContentType: invoice.ContentType,
		Data:        data,
	}
	h.archive(ctx, orderRepo, o, doc)
	return doc, nil
}

// Wait blocks until every background archive started so far has finished.
func (h *GenerateInvoiceCommandHandler) Wait() {
	h.background.Wait()
}

// load reads items and customer concurrently.
func (h *GenerateInvoiceCommandHandler) load(
	ctx context.Context,
	uow InvoiceUoW,
	o *order.Order,
) ([]order.Item, *customer.Customer, error) {
	var (
		items []order.Item
		buyer *customer.Customer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = uow.OrderRepository().ListItems(gctx, o.ID())
		return err
	})
	g.Go(func() error {
		var err error
		buyer, err = uow.CustomerRepository().Get(gctx, o.CustomerID())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return items, buyer, nil
}

func (h *GenerateInvoiceCommandHandler) archive(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	o *order.Order,
	doc Document,
) {
	h.background.Add(1)
	go func() {
		defer h.background.Done()

		archiveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.timeouts.Archive)
		defer cancel()

		if err := h.storeDocument(archiveCtx, orderRepo, o, doc); err != nil {
			h.metrics.InvoiceArchiveFailed()
			h.logger.WarnContext(archiveCtx, "invoice archive failed",
				"orderId", o.ID().String(), "document", doc.FileName, "error", err)
		}
	}()
}

func (h *GenerateInvoiceCommandHandler) storeDocument(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	o *order.Order,
	doc Document,
) error {
	url, err := h.store.Put(ctx, doc.FileName, doc.ContentType, doc.Data)
	if err != nil {
		return err
	}
	if err = o.AttachDocument(url); err != nil {
		return err
	}
	return orderRepo.SetDocumentURL(ctx, o.ID(), url)
}
