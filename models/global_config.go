package models

import (
	"time"

	"gorm.io/datatypes"
)

// GlobalConfig stores small persistent key/value settings as raw JSON.
// It is intentionally generic to avoid adding new tables for every tiny
// feature; values are upserted whole, never partially merged.
type GlobalConfig struct {
	Key       string         `gorm:"primaryKey;size:128" json:"key"`
	Value     datatypes.JSON `gorm:"type:text" json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Well-known GlobalConfig keys.
const (
	ConfigKeyAnnouncement     = "announcement"
	ConfigKeyUISettings       = "ui_settings"
	ConfigKeyNotesWallSetting = "notes_bg_settings"
)

// AnnouncementHistory is an append-only log of saved announcements. Rows are
// written only when a non-empty announcement is saved.
type AnnouncementHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
