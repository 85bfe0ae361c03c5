package kiwifywebhook

import (
	"fmt"
	"time"

	"historinhas-api/database"
	"historinhas-api/internal/domain/subscriptions"
	"historinhas-api/internal/infra/notify"
	"historinhas-api/internal/logs"

	"go.uber.org/zap"
)

// handleCancellation covers order_refunded, chargeback and
// subscription_canceled: all set the matching row(s) to canceled. Matching
// prefers the subscription id and falls back to the order id for one-off
// purchases.
func handleCancellation(order *Order) error {
	q := database.DB.Model(&subscriptions.Subscription{})
	if order.SubscriptionID != "" {
		q = q.Where("kiwify_subscription_id = ?", order.SubscriptionID)
	} else {
		q = q.Where("kiwify_order_id = ?", order.OrderID)
	}

	if err := q.Update("status", subscriptions.StatusCanceled).Error; err != nil {
		return fmt.Errorf("failed to cancel subscription for order %s: %w", order.OrderID, err)
	}

	notify.Send("subscription_canceled", map[string]interface{}{
		"order_id":        order.OrderID,
		"subscription_id": order.SubscriptionID,
		"email":           order.Customer.Email,
		"full_name":       order.Customer.FullName,
		"phone":           order.Customer.Mobile,
		"reason":          order.WebhookEventType,
	})

	return nil
}

// handleSubscriptionRenewed recomputes the paid window from the approval
// date instead of extending the stored end_date, so redelivering the same
// renewal cannot double-extend.
func handleSubscriptionRenewed(order *Order) error {
	if order.SubscriptionID == "" {
		logs.L().Warn("renewal without subscription id ignored",
			zap.String("order_id", order.OrderID),
		)
		return nil
	}

	approved := parseEventDate(order.ApprovedDate)
	if approved.IsZero() {
		logs.L().Warn("renewal without approved date ignored",
			zap.String("subscription_id", order.SubscriptionID),
		)
		return nil
	}

	endDate := approved.Add(30 * 24 * time.Hour)

	err := database.DB.Model(&subscriptions.Subscription{}).
		Where("kiwify_subscription_id = ?", order.SubscriptionID).
		Updates(map[string]interface{}{
			"status":     subscriptions.StatusActive,
			"start_date": approved,
			"end_date":   endDate,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to renew subscription %s: %w", order.SubscriptionID, err)
	}

	return nil
}

// handleSubscriptionLate flags the row; dates stay untouched so a later
// renewal restores the real window.
func handleSubscriptionLate(order *Order) error {
	if order.SubscriptionID == "" {
		return nil
	}

	err := database.DB.Model(&subscriptions.Subscription{}).
		Where("kiwify_subscription_id = ?", order.SubscriptionID).
		Update("status", subscriptions.StatusLate).Error
	if err != nil {
		return fmt.Errorf("failed to mark subscription %s late: %w", order.SubscriptionID, err)
	}

	return nil
}
