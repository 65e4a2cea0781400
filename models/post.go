package models

import (
	"strings"
	"time"
)

// Post is a blog entry. Public listings only include published posts.
type Post struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Title            string    `gorm:"not null" json:"title"`
	Content          string    `gorm:"type:text" json:"content"`
	Summary          string    `json:"summary,omitempty"`
	Published        bool      `gorm:"default:false;index" json:"published"`
	IsMarkdown       bool      `gorm:"default:true" json:"is_markdown"`
	BackgroundImage  string    `json:"background_image,omitempty"`
	ContentBgColor   string    `gorm:"default:'#ffffff'" json:"content_bg_color"`
	ContentBgOpacity float64   `gorm:"default:0.85" json:"content_bg_opacity"`
	CreatedAt        time.Time `json:"created_at"`
}

// PostCreate request payload for creating or updating a post
type PostCreate struct {
	Title            string   `json:"title" binding:"required"`
	Content          string   `json:"content"`
	Summary          string   `json:"summary"`
	Published        bool     `json:"published"`
	IsMarkdown       *bool    `json:"is_markdown"`
	BackgroundImage  string   `json:"background_image"`
	ContentBgColor   string   `json:"content_bg_color"`
	ContentBgOpacity *float64 `json:"content_bg_opacity"`
}

// Normalize trims whitespace from input fields
func (p *PostCreate) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Summary = strings.TrimSpace(p.Summary)
	p.BackgroundImage = strings.TrimSpace(p.BackgroundImage)
	p.ContentBgColor = strings.TrimSpace(p.ContentBgColor)
}
