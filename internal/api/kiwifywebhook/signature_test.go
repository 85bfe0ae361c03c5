package kiwifywebhook

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signOrder(orderJSON []byte, secret string) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(orderJSON)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestValidSignature(t *testing.T) {
	secret := "test-secret"
	orderJSON := []byte(`{"webhook_event_type":"order_approved","order_id":"abc"}`)

	assert.True(t, ValidSignature(orderJSON, signOrder(orderJSON, secret), secret))
	assert.False(t, ValidSignature(orderJSON, signOrder(orderJSON, "other-secret"), secret))
	assert.False(t, ValidSignature(orderJSON, "deadbeef", secret))
	assert.False(t, ValidSignature(orderJSON, "", secret))

	// any change to the payload invalidates the signature
	tampered := []byte(`{"webhook_event_type":"order_approved","order_id":"abd"}`)
	assert.False(t, ValidSignature(tampered, signOrder(orderJSON, secret), secret))
}
