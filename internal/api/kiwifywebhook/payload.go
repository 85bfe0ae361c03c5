package kiwifywebhook

import (
	"encoding/json"
	"time"
)

// Kiwify delivers two payload generations: the documented one nests every
// field under "order" with "signature" in the body, a legacy one flattens
// fields to the top level with the signature as a query parameter. Only the
// nested shape is accepted here; it is the one the provider documents for
// subscription events and the one carrying the Subscription block the
// approval flow needs.
type WebhookPayload struct {
	URL       string          `json:"url"`
	Signature string          `json:"signature"`
	Order     json.RawMessage `json:"order"`
}

type Order struct {
	WebhookEventType string    `json:"webhook_event_type"`
	OrderID          string    `json:"order_id"`
	SubscriptionID   string    `json:"subscription_id"`
	OrderStatus      string    `json:"order_status"`
	ApprovedDate     string    `json:"approved_date"`
	PaymentMethod    string    `json:"payment_method"`
	Installments     int       `json:"installments"`
	Customer         Customer  `json:"Customer"`
	Product          Product   `json:"Product"`
	Subscription     *OrderSub `json:"Subscription"`

	Commissions Commissions `json:"Commissions"`
}

type Customer struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Mobile   string `json:"mobile"`
}

type Product struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
}

type OrderSub struct {
	StartDate   string `json:"start_date"`
	NextPayment string `json:"next_payment"`
	Status      string `json:"status"`
	Plan        struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Frequency  string `json:"frequency"`
		QtyCharges int    `json:"qty_charges"`
	} `json:"plan"`
}

type Commissions struct {
	Currency     string  `json:"currency"`
	ChargeAmount float64 `json:"charge_amount"`
	KiwifyFee    float64 `json:"kiwify_fee"`
	MyCommission float64 `json:"my_commission"`
}

// Closed set of event types Kiwify sends. Anything else is acknowledged
// and dropped, never guessed at.
const (
	EventBilletCreated        = "billet_created"
	EventPixCreated           = "pix_created"
	EventOrderRejected        = "order_rejected"
	EventOrderApproved        = "order_approved"
	EventOrderRefunded        = "order_refunded"
	EventChargeback           = "chargeback"
	EventSubscriptionCanceled = "subscription_canceled"
	EventSubscriptionLate     = "subscription_late"
	EventSubscriptionRenewed  = "subscription_renewed"
)

// parseEventDate accepts the two timestamp formats seen in Kiwify
// deliveries. Zero time when the field is absent or unparseable.
func parseEventDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}
