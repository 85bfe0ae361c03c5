package subscriptions

import (
	"time"

	"historinhas-api/internal/domain/users"
)

type Subscription struct {
	ID     uint       `gorm:"primaryKey" json:"id"`
	UserID uint       `gorm:"index;not null" json:"user_id"`
	User   users.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	// Identifiers assigned by Kiwify; the reconciliation keys.
	KiwifyOrderID        string  `gorm:"column:kiwify_order_id;uniqueIndex:idx_subscriptions_kiwify_order_id" json:"kiwify_order_id"`
	KiwifySubscriptionID *string `gorm:"column:kiwify_subscription_id;index" json:"kiwify_subscription_id"`

	PlanType string `gorm:"type:varchar(20);not null" json:"plan_type"` // "magic" | "family"
	Status   string `gorm:"type:varchar(20);not null" json:"status"`    // see status.go

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
