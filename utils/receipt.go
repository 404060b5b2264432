package utils

import (
	"fmt"
	"time"

	"github.com/mahaseva-foundation/donation-portal/models"
)

// Static organization details printed on every 80G receipt.
const (
	OrgName    = "Mahaseva Sahayog Foundation"
	OrgAddress = "Phaltan, Maharashtra, India"
	OrgEmail   = "advprashantnimbalkar@gmail.com"
	OrgPhone   = "+91 91722 93187"
)

// GenerateReceiptNumber builds an 80G receipt number of the form
// 80G/<year>/<unix-ms>. The millisecond suffix keeps it unique per
// donation at human-paced volume.
func GenerateReceiptNumber(now time.Time) string {
	return fmt.Sprintf("80G/%d/%d", now.Year(), now.UnixMilli())
}

// FormatINR formats a rupee amount with Indian digit grouping:
// the last three digits form one group, every two digits after that
// form another (1234567 -> "12,34,567").
func FormatINR(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := fmt.Sprintf("%d", amount)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		for len(head) > 2 {
			tail = head[len(head)-2:] + "," + tail
			head = head[:len(head)-2]
		}
		s = head + "," + tail
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatReceiptDate renders a donation date the way it appears on the
// receipt, e.g. "15 August 2026".
func FormatReceiptDate(t time.Time) string {
	return t.Format("02 January 2006")
}

// ReceiptEmailSubject returns the subject line for an 80G receipt email
func ReceiptEmailSubject(receiptNumber string) string {
	return fmt.Sprintf("80G Receipt - Thank You for Your Donation (%s)", receiptNumber)
}

// RenderReceiptHTML renders the 80G receipt email body for a completed
// donation. The PAN row appears only when a PAN was provided, and the
// recurring note only for recurring donations.
func RenderReceiptHTML(donation *models.Donation) string {
	panRow := ""
	if donation.DonorPAN != "" {
		panRow = fmt.Sprintf(`
			<div class="detail-row">
				<span class="detail-label">PAN Number:</span>
				<span>%s</span>
			</div>`, donation.DonorPAN)
	}

	recurringNote := ""
	if donation.IsRecurring {
		recurringNote = `
			<div class="note">
				<strong>Recurring Donation:</strong> This is a monthly recurring donation. You will receive a separate receipt for each monthly contribution.
			</div>`
	}

	return fmt.Sprintf(`
		<html>
		<head>
		<style>
			body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
			.container { max-width: 600px; margin: 0 auto; padding: 20px; }
			.header { background: #FF6B35; color: white; padding: 30px; text-align: center; }
			.content { background: #f9f9f9; padding: 30px; border: 1px solid #e0e0e0; }
			.receipt-box { background: white; padding: 20px; margin: 20px 0; border-left: 4px solid #FF6B35; }
			.detail-row { display: flex; justify-content: space-between; padding: 10px 0; border-bottom: 1px solid #e0e0e0; }
			.detail-label { font-weight: bold; color: #666; }
			.amount { font-size: 32px; font-weight: bold; color: #FF6B35; text-align: center; margin: 20px 0; }
			.note { background: #fff3cd; border-left: 4px solid #ffc107; padding: 15px; margin: 20px 0; }
			.footer { background: #1E3A5F; color: white; padding: 20px; text-align: center; font-size: 12px; }
		</style>
		</head>
		<body>
		<div class="container">
			<div class="header">
				<h1>Thank You for Your Donation</h1>
				<p>%s</p>
			</div>
			<div class="content">
				<p>Dear %s,</p>
				<p>We sincerely thank you for your generous donation towards <strong>%s</strong>. Your contribution will make a significant impact on the lives of those we serve.</p>
				<div class="receipt-box">
					<h2 style="color: #FF6B35; margin-top: 0;">80G Tax Exemption Receipt</h2>
					<div class="amount">&#8377;%s</div>
					<div class="detail-row">
						<span class="detail-label">Receipt Number:</span>
						<span>%s</span>
					</div>
					<div class="detail-row">
						<span class="detail-label">Date:</span>
						<span>%s</span>
					</div>
					<div class="detail-row">
						<span class="detail-label">Payment ID:</span>
						<span>%s</span>
					</div>
					<div class="detail-row">
						<span class="detail-label">Campaign:</span>
						<span>%s</span>
					</div>
					%s
					%s
				</div>
				<div class="note">
					<strong>About 80G Tax Benefits:</strong><br>
					%s is registered under Section 80G of the Income Tax Act. This donation is eligible for tax deduction of 50%% under Section 80G. Please consult with your tax advisor for specific guidance.
				</div>
				<p style="margin-top: 30px;">
					<strong>Organization Details:</strong><br>
					%s<br>
					%s<br>
					Email: %s<br>
					Phone: %s
				</p>
			</div>
			<div class="footer">
				<p>This is an auto-generated receipt. Please save this for your tax records.</p>
				<p>&copy; %d %s. All rights reserved.</p>
			</div>
		</div>
		</body>
		</html>`,
		OrgName,
		donation.DonorName,
		donation.CampaignName,
		FormatINR(donation.Amount),
		donation.ReceiptNumber,
		FormatReceiptDate(donation.CreatedAt),
		donation.RazorpayPaymentID,
		donation.CampaignName,
		panRow,
		recurringNote,
		OrgName,
		OrgName,
		OrgAddress,
		OrgEmail,
		OrgPhone,
		time.Now().Year(),
		OrgName,
	)
}
