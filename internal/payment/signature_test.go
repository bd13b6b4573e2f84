package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignature(t *testing.T) {
	secret := "test-secret"
	orderID := "order_123"
	paymentID := "pay_456"

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	assert.Equal(t, expected, Signature(secret, orderID, paymentID))
}

func TestVerifySignature(t *testing.T) {
	secret := "test-secret"
	sig := Signature(secret, "order_123", "pay_456")

	assert.True(t, VerifySignature(secret, "order_123", "pay_456", sig))
	assert.False(t, VerifySignature(secret, "order_123", "pay_456", "bogus"))
	assert.False(t, VerifySignature(secret, "order_999", "pay_456", sig))
	assert.False(t, VerifySignature("other-secret", "order_123", "pay_456", sig))
}
