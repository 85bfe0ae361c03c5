package kiwifywebhook

import (
	"encoding/json"
	"io"
	"net/http"

	"historinhas-api/config"
	"historinhas-api/internal/logs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// KiwifyWebhookHead answers the provider's reachability probe.
func KiwifyWebhookHead(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// KiwifyWebhook receives payment lifecycle events and reconciles local
// subscription state. Kiwify delivers at least once, so every mutation is
// an upsert/update keyed by the external order/subscription id and the
// handler always acknowledges with 200 once the event was dispatched.
func KiwifyWebhook(c *gin.Context) {
	body, err := readBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading request body"})
		return
	}

	var payload WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
		return
	}

	// Signature validation is skipped in development only.
	if !config.IsDevelopment() {
		if payload.Signature == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Assinatura não fornecida"})
			return
		}
		if !ValidSignature(payload.Order, payload.Signature, config.KIWIFY_WEBHOOK_SECRET) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Assinatura inválida"})
			return
		}
	}

	var order Order
	if err := json.Unmarshal(payload.Order, &order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed order payload"})
		return
	}

	logs.L().Info("processing kiwify event",
		zap.String("event", order.WebhookEventType),
		zap.String("order_id", order.OrderID),
		zap.String("subscription_id", order.SubscriptionID),
		zap.String("order_status", order.OrderStatus),
	)

	switch order.WebhookEventType {
	case EventOrderApproved:
		err = handleOrderApproved(&order)

	case EventOrderRefunded, EventChargeback, EventSubscriptionCanceled:
		err = handleCancellation(&order)

	case EventSubscriptionRenewed:
		err = handleSubscriptionRenewed(&order)

	case EventSubscriptionLate:
		err = handleSubscriptionLate(&order)

	case EventBilletCreated, EventPixCreated, EventOrderRejected:
		// Payment-pending / rejection notices carry no state we track.
		logs.L().Info("kiwify event logged only",
			zap.String("event", order.WebhookEventType),
			zap.String("order_id", order.OrderID),
		)

	default:
		logs.L().Warn("unknown kiwify event ignored",
			zap.String("event", order.WebhookEventType),
		)
	}

	if err != nil {
		logs.L().Error("kiwify event failed",
			zap.String("event", order.WebhookEventType),
			zap.String("order_id", order.OrderID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
