package subscriptions

import "strings"

// Subscription status constants. "expired" never comes from the payment
// provider; it is derived when an active row's date window has passed.
const (
	StatusActive   = "active"
	StatusCanceled = "canceled"
	StatusLate     = "late"
	StatusExpired  = "expired"
)

// NormalizeStatus collapses free-form status strings to the known set.
func NormalizeStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active", "paid":
		return StatusActive
	case "canceled", "cancelled", "refunded", "chargeback":
		return StatusCanceled
	case "late", "past_due", "waiting_payment":
		return StatusLate
	case "expired":
		return StatusExpired
	default:
		return strings.ToLower(strings.TrimSpace(s))
	}
}
