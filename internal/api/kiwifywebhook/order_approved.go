package kiwifywebhook

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"historinhas-api/database"
	"historinhas-api/internal/api/auth"
	"historinhas-api/internal/domain/subscriptions"
	"historinhas-api/internal/domain/users"
	"historinhas-api/internal/infra/notify"
	"historinhas-api/internal/logs"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"
)

// handleOrderApproved provisions (or finds) the buyer and upserts the
// subscription keyed by the Kiwify order id. Redelivery of the same event
// converges on the same row.
func handleOrderApproved(order *Order) error {
	if order.OrderStatus != "paid" {
		logs.L().Info("order not paid, skipping",
			zap.String("order_id", order.OrderID),
			zap.String("order_status", order.OrderStatus),
		)
		return nil
	}

	startDate, endDate := subscriptionWindow(order)

	user, created, err := findOrCreateBuyer(order.Customer)
	if err != nil {
		return fmt.Errorf("failed to resolve buyer %s: %w", order.Customer.Email, err)
	}

	planType := subscriptions.PlanTypeFromProduct(order.Product.ProductName)

	sub := subscriptions.Subscription{
		UserID:        user.ID,
		KiwifyOrderID: order.OrderID,
		PlanType:      planType,
		Status:        subscriptions.StatusActive,
		StartDate:     startDate,
		EndDate:       endDate,
	}
	if order.SubscriptionID != "" {
		sub.KiwifySubscriptionID = &order.SubscriptionID
	}

	if err := database.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "kiwify_order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id", "kiwify_subscription_id", "plan_type", "status", "start_date", "end_date", "updated_at",
		}),
	}).Create(&sub).Error; err != nil {
		return fmt.Errorf("failed to upsert subscription for order %s: %w", order.OrderID, err)
	}

	if created {
		welcomeBuyer(user)
		notify.Send("user_created", map[string]interface{}{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
			"phone":     order.Customer.Mobile,
		})
	}

	notify.Send("subscription_created", map[string]interface{}{
		"user_id":   user.ID,
		"email":     user.Email,
		"full_name": user.FullName,
		"phone":     order.Customer.Mobile,
		"subscription": map[string]interface{}{
			"order_id":        order.OrderID,
			"subscription_id": order.SubscriptionID,
			"plan_type":       planType,
			"status":          subscriptions.StatusActive,
			"start_date":      startDate.UTC().Format(time.RFC3339),
			"end_date":        endDate.UTC().Format(time.RFC3339),
		},
		"payment": map[string]interface{}{
			"method":       order.PaymentMethod,
			"installments": order.Installments,
			"currency":     order.Commissions.Currency,
			"amount":       order.Commissions.ChargeAmount,
		},
	})

	return nil
}

// subscriptionWindow derives [start, end]: subscription-provided dates when
// present, else approval date (or now) plus 30 days.
func subscriptionWindow(order *Order) (time.Time, time.Time) {
	var start time.Time
	if order.Subscription != nil {
		start = parseEventDate(order.Subscription.StartDate)
	}
	if start.IsZero() {
		start = parseEventDate(order.ApprovedDate)
	}
	if start.IsZero() {
		start = time.Now()
	}

	var end time.Time
	if order.Subscription != nil {
		end = parseEventDate(order.Subscription.NextPayment)
	}
	if end.IsZero() {
		end = start.Add(30 * 24 * time.Hour)
	}

	return start, end
}

// findOrCreateBuyer resolves the user by the checkout email, creating a
// verified account with a random password when this is a first purchase.
func findOrCreateBuyer(customer Customer) (users.User, bool, error) {
	var user users.User
	if err := database.DB.Where("email = ?", customer.Email).First(&user).Error; err == nil {
		return user, false, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(randomPassword()), bcrypt.DefaultCost)
	if err != nil {
		return users.User{}, false, err
	}
	password := string(hashed)

	user = users.User{
		FullName:     customer.FullName,
		Email:        customer.Email,
		Password:     &password,
		AuthProvider: "local",
		Role:         "user",
		IsVerified:   true, // checkout already proved the mailbox
	}
	if customer.Mobile != "" {
		mobile := customer.Mobile
		user.Phone = &mobile
	}

	if err := database.DB.Create(&user).Error; err != nil {
		return users.User{}, false, err
	}

	return user, true, nil
}

// welcomeBuyer stores a set-password token and emails it to a buyer whose
// account was just provisioned from checkout. Fire-and-forget: the
// subscription has to land even when SMTP is down.
func welcomeBuyer(user users.User) {
	reset := users.VerificationToken{
		UserID:    user.ID,
		Token:     randomHex(16),
		Type:      "password_reset",
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
	if err := database.DB.Create(&reset).Error; err != nil {
		logs.L().Warn("failed to store welcome token",
			zap.String("email", user.Email),
			zap.Error(err),
		)
		return
	}

	if err := auth.SendWelcomeEmail(user.Email, reset.Token); err != nil {
		logs.L().Warn("failed to send welcome email",
			zap.String("email", user.Email),
			zap.Error(err),
		)
	}
}

func randomPassword() string {
	return randomHex(20)
}

func randomHex(n int) string {
	bytes := make([]byte, n)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
