package notify

import (
	"time"

	"historinhas-api/config"
	"historinhas-api/internal/logs"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Payload is the envelope posted to the configured external webhook sink.
type Payload struct {
	ID        string                 `json:"id"`
	Event     string                 `json:"event"`
	Timestamp string                 `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// Send posts an event to EXTERNAL_WEBHOOK_URL. Fire-and-forget: failures
// are logged, never retried, and never surfaced to the caller.
func Send(event string, data map[string]interface{}) {
	webhookURL := config.EXTERNAL_WEBHOOK_URL
	if webhookURL == "" {
		logs.L().Debug("EXTERNAL_WEBHOOK_URL not configured, skipping notification",
			zap.String("event", event),
		)
		return
	}

	payload := Payload{
		ID:        uuid.NewString(),
		Event:     event,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      data,
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Source", "historinhas").
		SetBody(payload).
		Post(webhookURL)

	if err != nil {
		logs.L().Warn("failed to deliver notification webhook",
			zap.String("event", event),
			zap.Error(err),
		)
		return
	}
	if resp.IsError() {
		logs.L().Warn("notification webhook rejected",
			zap.String("event", event),
			zap.Int("status", resp.StatusCode()),
		)
		return
	}

	logs.L().Info("notification webhook delivered",
		zap.String("event", event),
		zap.String("id", payload.ID),
	)
}
