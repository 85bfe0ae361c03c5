package notify

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"historinhas-api/config"
)

func TestSendPostsEnvelope(t *testing.T) {
	var received Payload
	var source string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		source = r.Header.Get("X-Source")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	original := config.EXTERNAL_WEBHOOK_URL
	config.EXTERNAL_WEBHOOK_URL = server.URL
	defer func() { config.EXTERNAL_WEBHOOK_URL = original }()

	Send("subscription_created", map[string]interface{}{
		"email":     "maria@example.com",
		"plan_type": "family",
	})

	assert.Equal(t, "historinhas", source)
	assert.Equal(t, "subscription_created", received.Event)
	assert.NotEmpty(t, received.ID)
	assert.NotEmpty(t, received.Timestamp)
	assert.Equal(t, "maria@example.com", received.Data["email"])
}

func TestSendWithoutURLIsNoOp(t *testing.T) {
	original := config.EXTERNAL_WEBHOOK_URL
	config.EXTERNAL_WEBHOOK_URL = ""
	defer func() { config.EXTERNAL_WEBHOOK_URL = original }()

	// must not panic or block
	Send("user_created", map[string]interface{}{"email": "x@example.com"})
}

func TestSendSwallowsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	original := config.EXTERNAL_WEBHOOK_URL
	config.EXTERNAL_WEBHOOK_URL = server.URL
	defer func() { config.EXTERNAL_WEBHOOK_URL = original }()

	// errors are logged, never surfaced
	Send("subscription_canceled", map[string]interface{}{"order_id": "order-1"})
}
