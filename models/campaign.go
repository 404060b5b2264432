package models

import (
	"gorm.io/gorm"
)

// Campaign represents a fundraising campaign shown on the site.
// Goal and raised figures are static display values; no progress
// computation happens server-side.
type Campaign struct {
	gorm.Model
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	GoalAmount  int64  `json:"goal_amount"`
	RaisedLabel string `json:"raised_label"`
	Featured    bool   `gorm:"default:false" json:"featured"`
	Active      bool   `gorm:"default:true" json:"active"`
}
