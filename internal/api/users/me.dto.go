package users

import "time"

type MeResponse struct {
	User         UserDTO          `json:"user"`
	Subscription *SubscriptionDTO `json:"subscription"`
	Access       AccessDTO        `json:"access"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID         uint    `json:"id"`
	Email      string  `json:"email"`
	FullName   string  `json:"full_name"`
	Phone      *string `json:"phone"`
	Role       string  `json:"role"`
	IsVerified bool    `json:"is_verified"`
}

/* ---------- SUBSCRIPTION ---------- */

type SubscriptionDTO struct {
	ID                   uint      `json:"id"`
	PlanType             string    `json:"plan_type"`
	Status               string    `json:"status"`
	StartDate            time.Time `json:"start_date"`
	EndDate              time.Time `json:"end_date"`
	KiwifyOrderID        string    `json:"kiwify_order_id"`
	KiwifySubscriptionID *string   `json:"kiwify_subscription_id"`
}

/* ---------- ACCESS ---------- */

type AccessDTO struct {
	State    string       `json:"state"`
	Features []FeatureDTO `json:"features"`
}

type FeatureDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
