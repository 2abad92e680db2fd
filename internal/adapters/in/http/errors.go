package http

import (
	"errors"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/i18n"
	"storefront/internal/pkg/principal"

	"github.com/labstack/echo/v4"
)

var (
	errForbidden        = errors.New("forbidden")
	errRequestInFlight  = errors.New("request with this idempotency key is in flight")
	errMalformedRequest = errs.NewValueIsInvalidError("request body")
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// fail logs err and answers with the mapped status and a localized message.
// Store and collaborator error text never reaches the client.
func (s *Server) fail(c echo.Context, operation string, err error) error {
	status, key, args := classify(err)

	attrs := []any{"operation", operation, "status", status, "error", err}
	if id := c.Param("id"); id != "" {
		attrs = append(attrs, "orderId", id)
	}
	ctx := c.Request().Context()
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx, "request failed", attrs...)
	} else {
		s.logger.InfoContext(ctx, "request rejected", attrs...)
	}

	printer := s.catalog.ForAcceptLanguage(c.Request().Header.Get("Accept-Language"))
	c.Response().Header().Set("Content-Language", printer.Language().String())
	return c.JSON(status, ErrorResponse{Code: status, Message: printer.Text(key, args...)})
}

func classify(err error) (int, i18n.Key, []any) {
	var transition *errs.InvalidTransitionError

	switch {
	case errors.Is(err, errs.ErrCompensatedCreation):
		return http.StatusInternalServerError, i18n.OrderFailed, nil
	case errors.Is(err, principal.ErrMissing):
		return http.StatusUnauthorized, i18n.Unauthorized, nil
	case errors.Is(err, errForbidden):
		return http.StatusForbidden, i18n.Forbidden, nil
	case errors.Is(err, errRequestInFlight):
		return http.StatusConflict, i18n.DuplicateRequest, nil
	case errors.Is(err, commands.ErrCartIsEmpty):
		return http.StatusBadRequest, i18n.CartEmpty, nil
	case errors.Is(err, errs.ErrInsufficientStock):
		return http.StatusBadRequest, i18n.InsufficientStock, nil
	case errs.IsValidation(err):
		return http.StatusBadRequest, i18n.ValidationFailed, nil
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, i18n.NotFound, nil
	case errors.As(err, &transition):
		return http.StatusConflict, i18n.InvalidTransition, []any{transition.From, transition.To}
	case errors.Is(err, errs.ErrConcurrencyConflict):
		return http.StatusConflict, i18n.Conflict, nil
	case errors.Is(err, errs.ErrInvoiceNotAllowed):
		return http.StatusBadRequest, i18n.InvoiceNotAllowed, nil
	case errors.Is(err, errs.ErrInvoiceGenerationFailed):
		return http.StatusServiceUnavailable, i18n.InvoiceFailed, nil
	case errors.Is(err, errs.ErrUpstream):
		return http.StatusServiceUnavailable, i18n.Upstream, nil
	default:
		return http.StatusInternalServerError, i18n.Internal, nil
	}
}
