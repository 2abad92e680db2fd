package order

import (
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
)

// PaymentMethod is an informational label; no payment is processed.
type PaymentMethod string

const (
	CashOnDelivery PaymentMethod = "cash_on_delivery"
	BankTransfer   PaymentMethod = "bank_transfer"
	Card           PaymentMethod = "card"
	EWallet        PaymentMethod = "e_wallet"
)

var paymentAliases = map[string]PaymentMethod{
	"cash":             CashOnDelivery,
	"cod":              CashOnDelivery,
	"cash_on_delivery": CashOnDelivery,
	"bank_transfer":    BankTransfer,
	"transfer":         BankTransfer,
	"card":             Card,
	"credit_card":      Card,
	"e_wallet":         EWallet,
	"ewallet":          EWallet,
}

// NewPaymentMethod normalises a label supplied at checkout.
func NewPaymentMethod(label string) (PaymentMethod, error) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" {
		return "", errs.NewValueIsRequiredError("paymentMethod")
	}
	method, ok := paymentAliases[strings.ReplaceAll(normalized, "-", "_")]
	if !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not supported", label))
	}
	return method, nil
}

// IsCash reports whether the order is paid on delivery.
func (m PaymentMethod) IsCash() bool {
	return m == CashOnDelivery
}

func (m PaymentMethod) String() string {
	return string(m)
}
