package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/mahaseva-foundation/donation-portal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestGenerateReceiptNumber(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)
	number := GenerateReceiptNumber(now)

	assert.Regexp(t, regexp.MustCompile(`^80G/2026/\d+$`), number)
}

func TestGenerateReceiptNumberUnique(t *testing.T) {
	a := GenerateReceiptNumber(time.Now())
	b := GenerateReceiptNumber(time.Now().Add(time.Millisecond))
	assert.NotEqual(t, a, b)
}

func TestFormatINR(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		500:      "500",
		999:      "999",
		1000:     "1,000",
		99999:    "99,999",
		100000:   "1,00,000",
		1234567:  "12,34,567",
		15000000: "1,50,00,000",
	}
	for amount, expected := range cases {
		assert.Equal(t, expected, FormatINR(amount), "amount %d", amount)
	}
}

func TestFormatReceiptDate(t *testing.T) {
	date := time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "15 August 2026", FormatReceiptDate(date))
}

func TestReceiptEmailSubjectIncludesReceiptNumber(t *testing.T) {
	subject := ReceiptEmailSubject("80G/2026/1755246600000")
	assert.Contains(t, subject, "80G/2026/1755246600000")
}

func testDonation() *models.Donation {
	return &models.Donation{
		Model:             gorm.Model{ID: 42, CreatedAt: time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)},
		DonorName:         "Asha Rao",
		DonorEmail:        "asha@example.com",
		DonorPhone:        "+919999999999",
		Amount:            500,
		CampaignID:        "education",
		CampaignName:      "Education for Every Child",
		PaymentStatus:     models.PaymentStatusCompleted,
		RazorpayOrderID:   "order_test_1",
		RazorpayPaymentID: "pay_test_1",
		ReceiptNumber:     "80G/2026/1755246600000",
	}
}

func TestRenderReceiptHTML(t *testing.T) {
	donation := testDonation()
	html := RenderReceiptHTML(donation)

	assert.Contains(t, html, "Asha Rao")
	assert.Contains(t, html, "Education for Every Child")
	assert.Contains(t, html, "&#8377;500")
	assert.Contains(t, html, "80G/2026/1755246600000")
	assert.Contains(t, html, "15 August 2026")
	assert.Contains(t, html, "pay_test_1")
	assert.Contains(t, html, OrgName)
	assert.Contains(t, html, OrgEmail)
}

func TestRenderReceiptHTMLWithPAN(t *testing.T) {
	donation := testDonation()
	donation.DonorPAN = "ABCDE1234F"

	html := RenderReceiptHTML(donation)
	assert.Contains(t, html, "PAN Number:")
	assert.Contains(t, html, "ABCDE1234F")
}

func TestRenderReceiptHTMLWithoutPAN(t *testing.T) {
	donation := testDonation()
	donation.DonorPAN = ""

	html := RenderReceiptHTML(donation)
	assert.NotContains(t, html, "PAN Number:")
}

func TestRenderReceiptHTMLRecurringNote(t *testing.T) {
	donation := testDonation()

	donation.IsRecurring = false
	assert.NotContains(t, RenderReceiptHTML(donation), "Recurring Donation:")

	donation.IsRecurring = true
	assert.Contains(t, RenderReceiptHTML(donation), "Recurring Donation:")
}

func TestRenderReceiptHTMLAmountGrouping(t *testing.T) {
	donation := testDonation()
	donation.Amount = 125000

	html := RenderReceiptHTML(donation)
	assert.Contains(t, html, "&#8377;1,25,000")
}
