package main

import (
	"log"

	"github.com/mahaseva-foundation/donation-portal/config"
	"github.com/mahaseva-foundation/donation-portal/controllers"
	"github.com/mahaseva-foundation/donation-portal/routes"
	"github.com/mahaseva-foundation/donation-portal/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Seed campaigns shown on the site
	if err := controllers.CreateDefaultCampaigns(); err != nil {
		utils.LogError("Failed to seed campaigns: %v", err)
		log.Fatal("Failed to seed campaigns:", err)
	}

	// Set up router with middleware
	router := routes.SetupRouter()

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	utils.LogInfo("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
