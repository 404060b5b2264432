package controllers

import (
	"errors"

	"github.com/mahaseva-foundation/donation-portal/config"
	"github.com/mahaseva-foundation/donation-portal/models"
	"github.com/mahaseva-foundation/donation-portal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateDefaultCampaigns seeds the campaigns shown on the site if none
// exist yet. Figures are static display values.
func CreateDefaultCampaigns() error {
	var count int64
	if err := config.DB.Model(&models.Campaign{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	campaigns := []models.Campaign{
		{
			Slug:        "education",
			Name:        "Education for Every Child",
			Description: "Support school fees, books and uniforms for underprivileged children.",
			GoalAmount:  1000000,
			RaisedLabel: "7.2 lakh raised",
			Featured:    true,
			Active:      true,
		},
		{
			Slug:        "healthcare",
			Name:        "Healthcare for Rural Families",
			Description: "Fund medical camps, medicines and health checkups in rural Maharashtra.",
			GoalAmount:  1500000,
			RaisedLabel: "9.8 lakh raised",
			Featured:    true,
			Active:      true,
		},
	}
	return config.DB.Create(&campaigns).Error
}

// GET /api/campaigns
func ListCampaigns(c *gin.Context) {
	var campaigns []models.Campaign
	if err := config.DB.Where("active = ?", true).Order("featured DESC, created_at ASC").Find(&campaigns).Error; err != nil {
		utils.LogError("Failed to fetch campaigns: %v", err)
		utils.InternalServerError(c, "Failed to fetch campaigns", err.Error())
		return
	}
	utils.Success(c, "Campaigns retrieved successfully", gin.H{"campaigns": campaigns})
}

// GET /api/campaigns/:slug
func GetCampaign(c *gin.Context) {
	slug := c.Param("slug")
	var campaign models.Campaign
	if err := config.DB.Where("slug = ? AND active = ?", slug, true).First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Campaign not found")
			return
		}
		utils.LogError("Failed to fetch campaign %s: %v", slug, err)
		utils.InternalServerError(c, "Failed to fetch campaign", err.Error())
		return
	}
	utils.Success(c, "Campaign retrieved successfully", gin.H{"campaign": campaign})
}
