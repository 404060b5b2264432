package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeRazorpaySignatureDeterministic(t *testing.T) {
	first := ComputeRazorpaySignature("order_123", "pay_456", "secret")
	second := ComputeRazorpaySignature("order_123", "pay_456", "secret")
	assert.Equal(t, first, second, "same inputs must produce the same signature")
	assert.Len(t, first, 64, "hex-encoded SHA256 output")
}

func TestComputeRazorpaySignatureVariesWithInputs(t *testing.T) {
	base := ComputeRazorpaySignature("order_123", "pay_456", "secret")
	assert.NotEqual(t, base, ComputeRazorpaySignature("order_124", "pay_456", "secret"))
	assert.NotEqual(t, base, ComputeRazorpaySignature("order_123", "pay_457", "secret"))
	assert.NotEqual(t, base, ComputeRazorpaySignature("order_123", "pay_456", "other"))
}

func TestVerifyRazorpaySignature(t *testing.T) {
	sig := ComputeRazorpaySignature("order_123", "pay_456", "secret")
	assert.True(t, VerifyRazorpaySignature("order_123", "pay_456", sig, "secret"))
}

func TestVerifyRazorpaySignatureRejectsTampering(t *testing.T) {
	sig := ComputeRazorpaySignature("order_123", "pay_456", "secret")

	// Flipping any single character must cause rejection.
	for i := range sig {
		tampered := []byte(sig)
		if tampered[i] == 'a' {
			tampered[i] = 'b'
		} else {
			tampered[i] = 'a'
		}
		assert.False(t, VerifyRazorpaySignature("order_123", "pay_456", string(tampered), "secret"),
			"mutated signature at position %d must be rejected", i)
	}

	assert.False(t, VerifyRazorpaySignature("order_123", "pay_456", "", "secret"))
	assert.False(t, VerifyRazorpaySignature("order_123", "pay_456", sig+"00", "secret"))
}
