// Package payment builds UPI deep links for customer-side payment apps.
package payment

import (
	"net/url"

	"github.com/shopspring/decimal"
)

// IntentURI assembles a upi://pay deep link. Amounts are rendered with two
// decimal places and the currency is always INR. The reference lets the
// payee reconcile the transfer against an order.
func IntentURI(payeeID, payeeName string, amount decimal.Decimal, note, reference string) string {
	v := url.Values{}
	v.Set("pa", payeeID)
	if payeeName != "" {
		v.Set("pn", payeeName)
	}
	v.Set("am", amount.StringFixed(2))
	v.Set("cu", "INR")
	if note != "" {
		v.Set("tn", note)
	}
	if reference != "" {
		v.Set("tr", reference)
	}
	return "upi://pay?" + v.Encode()
}
