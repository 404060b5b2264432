package routes

import (
	"github.com/mahaseva-foundation/donation-portal/controllers"
	"github.com/mahaseva-foundation/donation-portal/utils"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes.
// Middleware is registered before the routes so pre-flight requests and
// request logging cover every endpoint.
func SetupRouter() *gin.Engine {
	router := gin.New()

	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		donations := api.Group("/donations")
		{
			donations.POST("/order", controllers.CreateDonationOrder)
			donations.POST("/verify", controllers.VerifyDonationPayment)
			donations.POST("/receipt", controllers.SendDonationReceipt)
		}

		api.GET("/campaigns", controllers.ListCampaigns)
		api.GET("/campaigns/:slug", controllers.GetCampaign)
	}

	admin := router.Group("/admin")
	{
		admin.GET("/donations/export", controllers.DownloadDonationsReportExcel)
	}

	return router
}
