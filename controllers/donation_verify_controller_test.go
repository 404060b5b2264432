package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mahaseva-foundation/donation-portal/config"
	"github.com/mahaseva-foundation/donation-portal/models"
	"github.com/mahaseva-foundation/donation-portal/utils"
)

const testKeySecret = "test_key_secret"

// setupVerifyTest points config.DB at an in-memory database and returns a
// router exposing the verification endpoint
func setupVerifyTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("RAZORPAY_KEY_SECRET", testKeySecret)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Donation{}))
	config.DB = db

	router := gin.New()
	router.POST("/api/donations/verify", VerifyDonationPayment)
	return router
}

func seedPendingDonation(t *testing.T, orderID string) *models.Donation {
	t.Helper()
	donation := &models.Donation{
		DonorName:       "Asha Rao",
		DonorEmail:      "asha@example.com",
		DonorPhone:      "+919999999999",
		Amount:          500,
		CampaignID:      "education",
		CampaignName:    "Education for Every Child",
		PaymentStatus:   models.PaymentStatusPending,
		RazorpayOrderID: orderID,
	}
	require.NoError(t, config.DB.Create(donation).Error)
	return donation
}

func postVerify(t *testing.T, router *gin.Engine, orderID, paymentID, signature string) (int, map[string]interface{}) {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"razorpayOrderId":   orderID,
		"razorpayPaymentId": paymentID,
		"razorpaySignature": signature,
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, "/api/donations/verify", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w.Code, parsed
}

func TestVerifyPaymentCompletesPendingDonation(t *testing.T) {
	router := setupVerifyTest(t)
	seedPendingDonation(t, "order_test_1")

	sig := utils.ComputeRazorpaySignature("order_test_1", "pay_test_1", testKeySecret)
	status, body := postVerify(t, router, "order_test_1", "pay_test_1", sig)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Regexp(t, regexp.MustCompile(`^80G/\d{4}/\d+$`), body["receiptNumber"])

	var stored models.Donation
	require.NoError(t, config.DB.Where("razorpay_order_id = ?", "order_test_1").First(&stored).Error)
	assert.Equal(t, models.PaymentStatusCompleted, stored.PaymentStatus)
	assert.Equal(t, "pay_test_1", stored.RazorpayPaymentID)
	assert.Equal(t, sig, stored.RazorpaySignature)
	assert.Equal(t, body["receiptNumber"], stored.ReceiptNumber)
}

func TestVerifyPaymentReplayKeepsReceiptNumber(t *testing.T) {
	router := setupVerifyTest(t)
	seedPendingDonation(t, "order_test_1")

	sig := utils.ComputeRazorpaySignature("order_test_1", "pay_test_1", testKeySecret)

	status, first := postVerify(t, router, "order_test_1", "pay_test_1", sig)
	require.Equal(t, http.StatusOK, status)
	firstReceipt := first["receiptNumber"].(string)
	require.NotEmpty(t, firstReceipt)

	// Replaying the same valid callback must not mint a second receipt.
	status, second := postVerify(t, router, "order_test_1", "pay_test_1", sig)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, second["success"])
	assert.Equal(t, firstReceipt, second["receiptNumber"])

	var stored models.Donation
	require.NoError(t, config.DB.Where("razorpay_order_id = ?", "order_test_1").First(&stored).Error)
	assert.Equal(t, firstReceipt, stored.ReceiptNumber)
	assert.Equal(t, models.PaymentStatusCompleted, stored.PaymentStatus)
}

func TestCompleteDonationIsPendingOnly(t *testing.T) {
	setupVerifyTest(t)
	seedPendingDonation(t, "order_test_1")

	rows, err := completeDonation("order_test_1", "pay_test_1", "sig_1", "80G/2026/1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// A second attempt finds no pending row and must change nothing.
	rows, err = completeDonation("order_test_1", "pay_test_2", "sig_2", "80G/2026/2")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	stored, err := findDonationByOrderID("order_test_1")
	require.NoError(t, err)
	assert.Equal(t, "80G/2026/1", stored.ReceiptNumber)
	assert.Equal(t, "pay_test_1", stored.RazorpayPaymentID)
}

func TestVerifyPaymentRejectsTamperedSignature(t *testing.T) {
	router := setupVerifyTest(t)
	seedPendingDonation(t, "order_test_1")

	sig := []byte(utils.ComputeRazorpaySignature("order_test_1", "pay_test_1", testKeySecret))
	if sig[0] == 'a' {
		sig[0] = 'b'
	} else {
		sig[0] = 'a'
	}
	status, body := postVerify(t, router, "order_test_1", "pay_test_1", string(sig))

	require.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Invalid payment signature", body["error"])

	var stored models.Donation
	require.NoError(t, config.DB.Where("razorpay_order_id = ?", "order_test_1").First(&stored).Error)
	assert.Equal(t, models.PaymentStatusPending, stored.PaymentStatus)
	assert.Empty(t, stored.ReceiptNumber)
}

func TestVerifyPaymentUnknownOrder(t *testing.T) {
	router := setupVerifyTest(t)

	sig := utils.ComputeRazorpaySignature("order_missing", "pay_test_1", testKeySecret)
	status, body := postVerify(t, router, "order_missing", "pay_test_1", sig)

	require.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Donation not found", body["error"])
}

func TestVerifyPaymentUpdateFailure(t *testing.T) {
	router := setupVerifyTest(t)
	seedPendingDonation(t, "order_test_1")
	require.NoError(t, config.DB.Migrator().DropTable(&models.Donation{}))

	sig := utils.ComputeRazorpaySignature("order_test_1", "pay_test_1", testKeySecret)
	status, body := postVerify(t, router, "order_test_1", "pay_test_1", sig)

	// A store failure is reported as such, not as a missing donation.
	require.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to update donation", body["error"])
}
