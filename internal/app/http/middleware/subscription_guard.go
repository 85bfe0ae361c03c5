package middleware

import (
	"net/http"
	"time"

	"historinhas-api/database"
	"historinhas-api/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
)

// RequireActiveSubscription gates story generation behind a paid plan.
// The most recent subscription row is authoritative; access requires
// status=active with now inside the paid window.
func RequireActiveSubscription() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		sub, err := subscriptions.Current(database.DB, userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription"})
			return
		}
		if sub == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Você precisa de uma assinatura ativa para continuar",
			})
			return
		}

		if !subscriptions.HasEffectiveAccess(time.Now(), sub) {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "Sua assinatura não está ativa",
			})
			return
		}

		c.Set("subscription_plan", sub.PlanType)
		c.Next()
	}
}
