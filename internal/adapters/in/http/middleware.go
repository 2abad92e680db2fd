package http

import (
	"errors"
	"strings"
	"time"

	"storefront/internal/pkg/principal"

	"github.com/labstack/echo/v4"
)

// authenticate turns the gateway headers into a principal on the request context.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Request().Header
		p, err := principal.New(h.Get(principal.HeaderUserID), h.Get(principal.HeaderEmail), h.Get(principal.HeaderRole))
		if err != nil {
			return s.fail(c, "authenticate", err)
		}
		c.SetRequest(c.Request().WithContext(principal.WithPrincipal(c.Request().Context(), p)))
		return next(c)
	}
}

func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := principal.FromContext(c.Request().Context())
		if err != nil {
			return s.fail(c, "authorize", err)
		}
		if !p.IsAdmin() {
			return s.fail(c, "authorize", errForbidden)
		}
		return next(c)
	}
}

// observe records request count and latency per route.
func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
		}
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.ObserveRequest(strings.ToLower(c.Request().Method)+" "+route, status, time.Since(start))
		return err
	}
}

func currentPrincipal(c echo.Context) (principal.Principal, error) {
	return principal.FromContext(c.Request().Context())
}
