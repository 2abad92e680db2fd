package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGenerateInvoiceCommandIsNotConstructed = errors.New(
	"GenerateInvoiceCommand must be created via NewGenerateInvoiceCommand constructor",
)

// GenerateInvoiceCommand asks for the invoice document of an order.
type GenerateInvoiceCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGenerateInvoiceCommand(orderID kernel.UUID) (GenerateInvoiceCommand, error) {
	if err := orderID.Validate(); err != nil {
		return GenerateInvoiceCommand{}, err
	}
	return GenerateInvoiceCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c GenerateInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrGenerateInvoiceCommandIsNotConstructed)
}

func (c GenerateInvoiceCommand) OrderID() kernel.UUID { return c.orderID }
