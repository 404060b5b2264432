package controllers

import (
	"bytes"
	"fmt"

	"github.com/mahaseva-foundation/donation-portal/models"
	"github.com/mahaseva-foundation/donation-portal/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// SendReceiptRequest identifies the donation to issue a receipt for
type SendReceiptRequest struct {
	DonationID uint `json:"donationId" binding:"required"`
}

// POST /api/donations/receipt
//
// Renders the 80G receipt for a completed donation and emails it to the
// donor. Normally invoked in the background by payment verification, but
// kept callable on its own so a lost receipt can be re-issued.
func SendDonationReceipt(c *gin.Context) {
	utils.LogInfo("SendDonationReceipt called")

	var req SendReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid receipt request: %v", err)
		utils.CheckoutError(c, "Invalid request: "+err.Error())
		return
	}

	if err := sendReceiptForDonation(req.DonationID); err != nil {
		utils.LogError("Failed to send receipt for donation %d: %v", req.DonationID, err)
		utils.CheckoutError(c, err.Error())
		return
	}

	utils.LogInfo("80G receipt sent for donation %d", req.DonationID)
	c.JSON(200, gin.H{"success": true, "message": "80G receipt sent successfully"})
}

// sendReceiptForDonation renders and emails the 80G receipt for a donation.
// The donation row is read, never mutated; a delivery failure leaves no
// trace in the data model.
func sendReceiptForDonation(donationID uint) error {
	donation, err := findDonationByID(donationID)
	if err != nil {
		return err
	}

	html := utils.RenderReceiptHTML(donation)
	pdfBytes, err := buildReceiptPDF(donation)
	if err != nil {
		return fmt.Errorf("failed to generate receipt PDF: %v", err)
	}

	subject := utils.ReceiptEmailSubject(donation.ReceiptNumber)
	return utils.SendHTMLEmail(donation.DonorEmail, subject, html, utils.Attachment{
		Filename: "80g-receipt.pdf",
		Content:  pdfBytes,
	})
}

// buildReceiptPDF generates the printable copy of the 80G receipt
func buildReceiptPDF(donation *models.Donation) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, utils.OrgName)
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, utils.OrgAddress)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Email: "+utils.OrgEmail+" | Phone: "+utils.OrgPhone)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "80G TAX EXEMPTION RECEIPT")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(60, 8, "Receipt Number: "+donation.ReceiptNumber)
	pdf.Cell(60, 8, "Date: "+utils.FormatReceiptDate(donation.CreatedAt))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Received with thanks from:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, donation.DonorName)
	pdf.Ln(6)
	pdf.Cell(100, 8, donation.DonorEmail)
	pdf.Ln(6)
	pdf.Cell(100, 8, "Phone: "+donation.DonorPhone)
	pdf.Ln(6)
	if donation.DonorPAN != "" {
		pdf.Cell(100, 8, "PAN: "+donation.DonorPAN)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(70, 8, "Campaign", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Payment ID", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Amount (Rs.)", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(70, 8, donation.CampaignName, "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, donation.RazorpayPaymentID, "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, utils.FormatINR(donation.Amount), "1", 0, "R", false, 0, "")
	pdf.Ln(12)

	if donation.IsRecurring {
		pdf.SetFont("Arial", "I", 11)
		pdf.Cell(0, 8, "This is a monthly recurring donation. A separate receipt is issued for each contribution.")
		pdf.Ln(8)
	}

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, utils.OrgName+" is registered under Section 80G of the Income Tax Act. "+
		"This donation is eligible for tax deduction of 50% under Section 80G.", "", "L", false)

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 11)
	pdf.Cell(0, 8, "This is an auto-generated receipt. Please save it for your tax records.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
