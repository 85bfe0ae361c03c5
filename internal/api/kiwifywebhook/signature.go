package kiwifywebhook

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
)

// ValidSignature recomputes the HMAC-SHA1 of the raw order JSON with the
// shared secret and compares it to the hex signature Kiwify sent.
func ValidSignature(orderJSON []byte, signature, secret string) bool {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(orderJSON)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
