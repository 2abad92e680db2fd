package http

import (
	"fmt"
	"net/http"

	"storefront/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

// GenerateInvoice handles POST /orders/:id/invoice and answers with the PDF.
func (s *Server) GenerateInvoice(c echo.Context) error {
	if _, err := s.loadOrder(c); err != nil {
		return s.fail(c, "generate invoice", err)
	}

	orderID, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, "generate invoice", err)
	}
	cmd, err := commands.NewGenerateInvoiceCommand(orderID)
	if err != nil {
		return s.fail(c, "generate invoice", err)
	}

	doc, err := s.invoice.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, "generate invoice", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.FileName))
	return c.Blob(http.StatusOK, doc.ContentType, doc.Data)
}

// GetDocument handles GET /documents/:name.
func (s *Server) GetDocument(c echo.Context) error {
	name, err := pathParam(c, "name")
	if err != nil {
		return s.fail(c, "get document", err)
	}
	doc, err := s.documents.Get(c.Request().Context(), name)
	if err != nil {
		return s.fail(c, "get document", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", doc.Name))
	return c.Blob(http.StatusOK, doc.ContentType, doc.Data)
}
