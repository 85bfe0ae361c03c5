package subscriptions

import (
	"time"

	"gorm.io/gorm"
)

type AccessState string

const (
	AccessActive   AccessState = "active"
	AccessLate     AccessState = "late"
	AccessCanceled AccessState = "canceled"
	AccessExpired  AccessState = "expired"
	AccessNone     AccessState = "none"
)

// Current returns the authoritative subscription for a user: the most
// recently created row. Nil without error when the user never subscribed.
func Current(db *gorm.DB, userID uint) (*Subscription, error) {
	var sub Subscription
	err := db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// ComputeAccessState interprets a subscription row for the UI.
// Effective access requires status=active AND now inside [start, end].
func ComputeAccessState(now time.Time, sub *Subscription) AccessState {
	if sub == nil {
		return AccessNone
	}

	switch NormalizeStatus(sub.Status) {
	case StatusActive:
		if now.Before(sub.StartDate) || now.After(sub.EndDate) {
			return AccessExpired
		}
		return AccessActive
	case StatusLate:
		return AccessLate
	case StatusCanceled:
		return AccessCanceled
	default:
		return AccessExpired
	}
}

// HasEffectiveAccess is the single gate used by the subscription guard.
func HasEffectiveAccess(now time.Time, sub *Subscription) bool {
	return ComputeAccessState(now, sub) == AccessActive
}
