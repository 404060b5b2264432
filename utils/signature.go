package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// ComputeRazorpaySignature returns the hex HMAC-SHA256 of
// "orderID|paymentID" keyed with the gateway key secret. This is the
// signature Razorpay sends back from its checkout widget.
func ComputeRazorpaySignature(orderID, paymentID, keySecret string) string {
	h := hmac.New(sha256.New, []byte(keySecret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyRazorpaySignature checks a widget callback signature against the
// expected value. The comparison is constant-time.
func VerifyRazorpaySignature(orderID, paymentID, signature, keySecret string) bool {
	expected := ComputeRazorpaySignature(orderID, paymentID, keySecret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
