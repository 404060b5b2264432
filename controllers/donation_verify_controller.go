package controllers

import (
	"errors"
	"os"
	"time"

	"github.com/mahaseva-foundation/donation-portal/utils"
	"github.com/gin-gonic/gin"
)

// VerifyPaymentRequest carries the values the Razorpay widget hands back
// on successful checkout
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpayOrderId" binding:"required"`
	RazorpayPaymentID string `json:"razorpayPaymentId" binding:"required"`
	RazorpaySignature string `json:"razorpaySignature" binding:"required"`
}

// POST /api/donations/verify
//
// Checks the widget callback signature and, only on a match, transitions
// the pending donation to completed and issues its receipt number. The
// signature check strictly precedes any state mutation. Receipt email
// dispatch happens in the background; its failure never fails this call.
func VerifyDonationPayment(c *gin.Context) {
	utils.LogInfo("VerifyDonationPayment called")

	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keySecret == "" {
		utils.LogError("Razorpay key secret not configured")
		utils.CheckoutError(c, "Razorpay key secret not configured")
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid verification request: %v", err)
		utils.CheckoutError(c, "Invalid request: "+err.Error())
		return
	}
	utils.LogInfo("Verifying payment %s for order %s", req.RazorpayPaymentID, req.RazorpayOrderID)

	if !utils.VerifyRazorpaySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, keySecret) {
		utils.LogError("Signature verification failed for order %s", req.RazorpayOrderID)
		utils.CheckoutError(c, "Invalid payment signature")
		return
	}
	utils.LogInfo("Signature verified for order %s", req.RazorpayOrderID)

	receiptNumber := utils.GenerateReceiptNumber(time.Now())
	rows, err := completeDonation(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, receiptNumber)
	if err != nil {
		utils.LogError("Failed to update donation for order %s: %v", req.RazorpayOrderID, err)
		utils.CheckoutError(c, "Failed to update donation")
		return
	}

	if rows > 0 {
		// The donation completed on this call, so the receipt goes out
		// whatever the response re-read below does. The goroutine loads
		// the row itself.
		utils.LogInfo("Donation completed for order %s with receipt %s", req.RazorpayOrderID, receiptNumber)
		go func(orderID string) {
			donation, err := findDonationByOrderID(orderID)
			if err != nil {
				utils.LogError("Failed to load donation for receipt, order %s: %v", orderID, err)
				return
			}
			if err := sendReceiptForDonation(donation.ID); err != nil {
				utils.LogError("Failed to send 80G receipt for donation %d: %v", donation.ID, err)
				return
			}
			utils.LogInfo("80G receipt sent for donation %d", donation.ID)
		}(req.RazorpayOrderID)
	}

	donation, err := findDonationByOrderID(req.RazorpayOrderID)
	if err != nil {
		if errors.Is(err, errDonationNotFound) {
			utils.LogError("No donation matches order %s", req.RazorpayOrderID)
			utils.CheckoutError(c, "Donation not found")
			return
		}
		utils.LogError("Donation lookup failed for order %s: %v", req.RazorpayOrderID, err)
		utils.CheckoutError(c, "Failed to load donation")
		return
	}

	if rows == 0 {
		// The conditional update matched nothing: the donation was already
		// completed by an earlier verification. Return the receipt number
		// issued then instead of minting a second one, and do not re-send
		// the receipt email.
		utils.LogInfo("Order %s already verified, receipt %s", req.RazorpayOrderID, donation.ReceiptNumber)
		c.JSON(200, gin.H{
			"success":       true,
			"donation":      donation,
			"receiptNumber": donation.ReceiptNumber,
		})
		return
	}

	c.JSON(200, gin.H{
		"success":       true,
		"donation":      donation,
		"receiptNumber": receiptNumber,
	})
}
