package controllers

import (
	"errors"

	"github.com/mahaseva-foundation/donation-portal/config"
	"github.com/mahaseva-foundation/donation-portal/models"
	"gorm.io/gorm"
)

// errDonationNotFound is returned when no donation matches the lookup key
var errDonationNotFound = errors.New("donation not found")

// findDonationByID loads a donation by primary key
func findDonationByID(id uint) (*models.Donation, error) {
	var donation models.Donation
	if err := config.DB.First(&donation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errDonationNotFound
		}
		return nil, err
	}
	return &donation, nil
}

// findDonationByOrderID loads a donation by its gateway order id
func findDonationByOrderID(razorpayOrderID string) (*models.Donation, error) {
	var donation models.Donation
	if err := config.DB.Where("razorpay_order_id = ?", razorpayOrderID).First(&donation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errDonationNotFound
		}
		return nil, err
	}
	return &donation, nil
}

// completeDonation transitions the donation matched by the gateway order id
// from pending to completed, recording the payment id, signature and receipt
// number. The update is scoped to rows still pending, so a donation that has
// already been completed is never touched again; the caller can tell the two
// apart by the returned rows-affected count.
func completeDonation(razorpayOrderID, paymentID, signature, receiptNumber string) (int64, error) {
	result := config.DB.Model(&models.Donation{}).
		Where("razorpay_order_id = ? AND payment_status = ?", razorpayOrderID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"payment_status":      models.PaymentStatusCompleted,
			"razorpay_payment_id": paymentID,
			"razorpay_signature":  signature,
			"receipt_number":      receiptNumber,
		})
	return result.RowsAffected, result.Error
}
