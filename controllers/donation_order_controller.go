package controllers

import (
	"fmt"
	"os"
	"time"

	"github.com/mahaseva-foundation/donation-portal/config"
	"github.com/mahaseva-foundation/donation-portal/models"
	"github.com/mahaseva-foundation/donation-portal/utils"
	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
)

// DonationOrderRequest is the payload the donation form submits to start
// a checkout
type DonationOrderRequest struct {
	Amount       int64  `json:"amount" binding:"required"`
	DonorName    string `json:"donorName" binding:"required"`
	DonorEmail   string `json:"donorEmail" binding:"required"`
	DonorPhone   string `json:"donorPhone" binding:"required"`
	DonorPAN     string `json:"donorPan"`
	CampaignID   string `json:"campaignId" binding:"required"`
	CampaignName string `json:"campaignName" binding:"required"`
	IsRecurring  bool   `json:"isRecurring"`
}

// POST /api/donations/order
//
// Creates a Razorpay order for the donation amount and records a pending
// donation carrying the gateway order id. The remote order is created
// first; if the local insert then fails the remote order is orphaned and
// only reconciliation against gateway records will surface it.
func CreateDonationOrder(c *gin.Context) {
	utils.LogInfo("CreateDonationOrder called")

	if !config.RazorpayConfigured() {
		utils.LogError("Razorpay credentials not configured")
		utils.CheckoutError(c, "Razorpay credentials not configured")
		return
	}

	var req DonationOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid donation order request: %v", err)
		utils.CheckoutError(c, "Invalid request: "+err.Error())
		return
	}

	if req.Amount <= 0 {
		utils.LogError("Rejected non-positive donation amount: %d", req.Amount)
		utils.CheckoutError(c, "Donation amount must be positive")
		return
	}

	pan := utils.NormalizePAN(req.DonorPAN)

	// Razorpay expects the amount in paise; the donation row keeps rupees.
	amountPaise := req.Amount * 100
	utils.LogInfo("Creating Razorpay order for %d paise, campaign %s", amountPaise, req.CampaignID)

	client := razorpay.NewClient(os.Getenv("RAZORPAY_KEY_ID"), os.Getenv("RAZORPAY_KEY_SECRET"))
	orderData := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  fmt.Sprintf("receipt_%d", time.Now().UnixMilli()),
		"notes": map[string]interface{}{
			"donor_name":  req.DonorName,
			"donor_email": req.DonorEmail,
			"campaign_id": req.CampaignID,
		},
	}
	rzOrder, err := client.Order.Create(orderData, nil)
	if err != nil {
		utils.LogError("Razorpay order creation failed for campaign %s: %v", req.CampaignID, err)
		utils.CheckoutError(c, "Razorpay order creation failed")
		return
	}
	razorpayOrderID := fmt.Sprintf("%v", rzOrder["id"])
	utils.LogInfo("Razorpay order created: %s", razorpayOrderID)

	donation := models.Donation{
		DonorName:       req.DonorName,
		DonorEmail:      req.DonorEmail,
		DonorPhone:      req.DonorPhone,
		DonorPAN:        pan,
		Amount:          req.Amount,
		CampaignID:      req.CampaignID,
		CampaignName:    req.CampaignName,
		IsRecurring:     req.IsRecurring,
		PaymentStatus:   models.PaymentStatusPending,
		RazorpayOrderID: razorpayOrderID,
	}
	if err := config.DB.Create(&donation).Error; err != nil {
		utils.LogError("Failed to record donation for order %s: %v", razorpayOrderID, err)
		utils.CheckoutError(c, "Failed to record donation")
		return
	}
	utils.LogInfo("Donation %d recorded as pending for order %s", donation.ID, razorpayOrderID)

	c.JSON(200, gin.H{
		"orderId":    razorpayOrderID,
		"amount":     amountPaise,
		"currency":   "INR",
		"donationId": donation.ID,
	})
}
