package http

import (
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetCart handles GET /cart.
func (s *Server) GetCart(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return s.fail(c, "get cart", err)
	}

	query, err := queries.NewGetCartQuery(p.UserID)
	if err != nil {
		return s.fail(c, "get cart", err)
	}
	response, err := s.getCart.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, "get cart", err)
	}
	return c.JSON(http.StatusOK, newCartResponse(response))
}

// SetCartItem handles PUT /cart/items/:productId. A zero quantity removes the line.
func (s *Server) SetCartItem(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return s.fail(c, "set cart item", err)
	}

	productID, err := pathUUID(c, "productId")
	if err != nil {
		return s.fail(c, "set cart item", err)
	}

	var body SetCartItemRequest
	if err = c.Bind(&body); err != nil {
		return s.fail(c, "set cart item", errMalformedRequest)
	}

	cmd, err := commands.NewSetCartItemCommand(p.UserID, productID, body.Quantity)
	if err != nil {
		return s.fail(c, "set cart item", err)
	}
	if err = s.setCartItem.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, "set cart item", err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
