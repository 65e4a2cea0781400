package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// DefaultCategory is assigned to links created without an explicit category.
const DefaultCategory = "General"

// Link is a navigation dashboard entry.
type Link struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	URL           string    `gorm:"not null" json:"url"`
	Description   string    `json:"description,omitempty"`
	Category      string    `gorm:"default:'General';index" json:"category"`
	IsRecommended bool      `gorm:"default:false" json:"is_recommended"`
	CreatedAt     time.Time `json:"created_at"`
}

// Category groups links on the dashboard. Rows are auto-created whenever a
// link references an unknown category name.
type Category struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"uniqueIndex;not null" json:"name"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
}

// LinkCreate request payload for creating or updating a link
type LinkCreate struct {
	Title         string `json:"title" binding:"required"`
	URL           string `json:"url" binding:"required"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	IsRecommended bool   `json:"is_recommended"`
}

// Normalize trims whitespace from input fields
func (l *LinkCreate) Normalize() {
	l.Title = strings.TrimSpace(l.Title)
	l.URL = strings.TrimSpace(l.URL)
	l.Description = strings.TrimSpace(l.Description)
	l.Category = strings.TrimSpace(l.Category)
}

// ReorderItem is one {id, sort_order} pair of a batch reorder request.
type ReorderItem struct {
	ID        uint `json:"id" binding:"required"`
	SortOrder int  `json:"sort_order"`
}

// BeforeCreate GORM hook - fall back to the default category when missing
func (l *Link) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(l.Category) == "" {
		l.Category = DefaultCategory
	}
	return nil
}
