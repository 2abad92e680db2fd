package kernel

import (
	"fmt"

	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of fractional digits kept for every amount.
const MoneyPlaces = 2

// NewAmount validates a monetary amount: it must not be negative and must not
// carry more than two fractional digits. The result is rounded to cents so
// that equal amounts compare equal regardless of their input scale.
func NewAmount(paramName string, value decimal.Decimal) (decimal.Decimal, error) {
	if value.IsNegative() {
		return decimal.Zero, errs.NewValueIsOutOfRangeError(paramName, value.StringFixed(MoneyPlaces), "0.00", "unbounded")
	}
	if !value.Equal(value.Round(MoneyPlaces)) {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause(
			paramName,
			fmt.Errorf("%s has more than %d fractional digits", value.String(), MoneyPlaces),
		)
	}
	return value.Round(MoneyPlaces), nil
}

// LineTotal returns unitPrice × quantity rounded to cents.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(MoneyPlaces)
}
