package models

import (
	"strings"
	"time"
)

// SmartWallpaper holds a time-of-day wallpaper theme. Each slot stores a
// comma-delimited list of image references as a single string.
type SmartWallpaper struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Morning   string    `gorm:"type:text" json:"morning"`
	Afternoon string    `gorm:"type:text" json:"afternoon"`
	Night     string    `gorm:"type:text" json:"night"`
	CreatedAt time.Time `json:"created_at"`
}

// SmartWallpaperCreate request payload for creating or updating a theme
type SmartWallpaperCreate struct {
	Name      string `json:"name" binding:"required"`
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Night     string `json:"night"`
}

// Normalize trims whitespace from input fields
func (w *SmartWallpaperCreate) Normalize() {
	w.Name = strings.TrimSpace(w.Name)
	w.Morning = strings.TrimSpace(w.Morning)
	w.Afternoon = strings.TrimSpace(w.Afternoon)
	w.Night = strings.TrimSpace(w.Night)
}

// Images splits a slot value into its image references.
func SplitWallpaperImages(slot string) []string {
	parts := strings.Split(slot, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
