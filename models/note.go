package models

import (
	"strings"
	"time"
)

// Note is a sticky note on the notes wall. SortOrder doubles as the stacking
// z-order; X/Y are pixel positions on the wall.
type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text" json:"content"`
	Color     string    `gorm:"default:'yellow'" json:"color"`
	X         int       `gorm:"default:0" json:"x"`
	Y         int       `gorm:"default:0" json:"y"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteCreate request payload for creating or updating a note
type NoteCreate struct {
	Content string `json:"content" binding:"required"`
	Color   string `json:"color"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

// Normalize trims whitespace from input fields
func (n *NoteCreate) Normalize() {
	n.Content = strings.TrimSpace(n.Content)
	n.Color = strings.TrimSpace(n.Color)
}

// NoteMove carries the lightweight drag-to-reposition update. It only touches
// position and stacking order, never content.
type NoteMove struct {
	X         int `json:"x"`
	Y         int `json:"y"`
	SortOrder int `json:"sort_order"`
}
