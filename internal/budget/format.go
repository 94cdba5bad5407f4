package budget

import (
	"github.com/shopspring/decimal"
)

// FormatMoney renders a monetary amount with its currency for message
// parameters, e.g. "1250.00 EUR". Amounts keep full precision
// internally; display always shows two decimal places.
func FormatMoney(amount decimal.Decimal, currency string) string {
	s := amount.StringFixed(2)
	if currency == "" {
		return s
	}
	return s + " " + currency
}
