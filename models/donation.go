package models

import (
	"gorm.io/gorm"
)

// PaymentStatus values for a donation. The only legal transition is
// pending -> completed; abandoned checkouts stay pending forever.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// Donation represents a single donation attempt and its payment outcome
type Donation struct {
	gorm.Model
	DonorName  string `gorm:"not null" json:"donor_name"`
	DonorEmail string `gorm:"not null" json:"donor_email"`
	DonorPhone string `gorm:"not null" json:"donor_phone"`
	DonorPAN   string `gorm:"column:donor_pan" json:"donor_pan,omitempty"`

	// Amount is stored in rupees (major units). The gateway order is
	// created in paise (amount * 100); that value is never stored here.
	Amount int64 `gorm:"not null" json:"amount"`

	CampaignID   string `json:"campaign_id"`
	CampaignName string `json:"campaign_name"`
	IsRecurring  bool   `gorm:"default:false" json:"is_recurring"`

	PaymentStatus string `gorm:"not null;default:'pending'" json:"payment_status"`

	RazorpayOrderID   string `gorm:"uniqueIndex;not null" json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id,omitempty"`
	RazorpaySignature string `json:"razorpay_signature,omitempty"`

	// ReceiptNumber is assigned exactly once, when the payment completes.
	ReceiptNumber string `json:"receipt_number,omitempty"`
}

// IsCompleted reports whether the payment for this donation has been verified
func (d *Donation) IsCompleted() bool {
	return d.PaymentStatus == PaymentStatusCompleted
}
