package receipt_test

import (
	"strings"
	"testing"

	"medibook/receipt"

	"github.com/stretchr/testify/assert"
)

func TestPayloadSigning(t *testing.T) {
	secret := []byte("receipt-secret")

	payload := receipt.SignPayload(secret, "b-1", "Cleaning", "2024-01-01", "10am")

	t.Run("round trip verifies", func(t *testing.T) {
		assert.True(t, receipt.VerifyPayload(secret, payload))
	})

	t.Run("tampered fields fail", func(t *testing.T) {
		tampered := strings.Replace(payload, "10am", "11am", 1)
		assert.False(t, receipt.VerifyPayload(secret, tampered))
	})

	t.Run("wrong secret fails", func(t *testing.T) {
		assert.False(t, receipt.VerifyPayload([]byte("other"), payload))
	})

	t.Run("garbage fails", func(t *testing.T) {
		assert.False(t, receipt.VerifyPayload(secret, "not-a-payload"))
	})
}
