package controllers

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/mahaseva-foundation/donation-portal/config"
	"github.com/mahaseva-foundation/donation-portal/models"
	"github.com/mahaseva-foundation/donation-portal/utils"
)

// GET /admin/donations/export?period=day|week|month
//
// Streams an Excel export of donations for manual reconciliation against
// the gateway's records: completed donations with their payment ids and
// receipt numbers, plus rows stuck in pending (abandoned checkouts or
// orders whose verification never arrived).
func DownloadDonationsReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadDonationsReportExcel called")

	token := os.Getenv("REPORT_TOKEN")
	if token == "" {
		utils.LogError("REPORT_TOKEN not configured")
		utils.InternalServerError(c, "Report access not configured", nil)
		return
	}
	if c.GetHeader("X-Admin-Token") != token {
		utils.LogError("Rejected donations export with bad admin token from %s", c.ClientIP())
		utils.Unauthorized(c, "Invalid admin token")
		return
	}

	period := c.DefaultQuery("period", "day")
	utils.LogDebug("Generating donations export for period: %s", period)

	now := time.Now()
	var startDate, endDate time.Time

	switch period {
	case "day":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
	case "week":
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		startDate = endDate.AddDate(0, 0, -6)
		startDate = time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	case "month":
		startDate = now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
		endDate = now.Add(24 * time.Hour)
	default:
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	var donations []models.Donation
	query := config.DB.Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Order("created_at DESC")
	if err := query.Find(&donations).Error; err != nil {
		utils.LogError("Failed to fetch donations: %v", err)
		utils.InternalServerError(c, "Failed to fetch donations", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d donations for export", len(donations))

	var summary struct {
		TotalDonations  int
		Completed       int
		Pending         int
		CompletedAmount int64
		PendingAmount   int64
		UniqueDonors    int
	}
	donorSet := make(map[string]bool)
	for _, d := range donations {
		summary.TotalDonations++
		donorSet[d.DonorEmail] = true
		if d.IsCompleted() {
			summary.Completed++
			summary.CompletedAmount += d.Amount
		} else {
			summary.Pending++
			summary.PendingAmount += d.Amount
		}
	}
	summary.UniqueDonors = len(donorSet)

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Donations")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	companyRow := sheet.AddRow()
	companyRow.AddCell().SetString(utils.OrgName + " - Donations Report")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString(utils.OrgAddress)
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Email: " + utils.OrgEmail + " | Phone: " + utils.OrgPhone)
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Period: " + period + " | " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow() // spacing

	headers := []string{"ID", "Date", "Donor", "Email", "Campaign", "Amount (Rs.)", "Recurring", "Status", "Gateway Order ID", "Payment ID", "Receipt Number"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, d := range donations {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(d.ID))
		row.AddCell().SetString(d.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(d.DonorName)
		row.AddCell().SetString(d.DonorEmail)
		row.AddCell().SetString(d.CampaignName)
		row.AddCell().SetInt(int(d.Amount))
		row.AddCell().SetBool(d.IsRecurring)
		row.AddCell().SetString(d.PaymentStatus)
		row.AddCell().SetString(d.RazorpayOrderID)
		row.AddCell().SetString(d.RazorpayPaymentID)
		row.AddCell().SetString(d.ReceiptNumber)
	}

	sheet.AddRow() // spacing

	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	summaryRow.Cells[0].SetStyle(style)

	summaryData := [][]string{
		{"Total Donations", fmt.Sprintf("%d", summary.TotalDonations)},
		{"Completed", fmt.Sprintf("%d", summary.Completed)},
		{"Still Pending", fmt.Sprintf("%d", summary.Pending)},
		{"Completed Amount", utils.FormatINR(summary.CompletedAmount)},
		{"Pending Amount", utils.FormatINR(summary.PendingAmount)},
		{"Unique Donors", fmt.Sprintf("%d", summary.UniqueDonors)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=donations_report_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated donations export for period %s", period)
}
