package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"sanctuary/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UISettings is the dashboard appearance blob stored under the
// "ui_settings" config key. Fields absent from the stored JSON keep their
// defaults; malformed JSON reads as all-defaults.
type UISettings struct {
	Version          int    `json:"version"`
	Theme            string `json:"theme"`
	AccentColor      string `json:"accent_color"`
	DashboardColumns int    `json:"dashboard_columns"`
	ShowAnnouncement bool   `json:"show_announcement"`
	ShowRecommended  bool   `json:"show_recommended"`
}

// DefaultUISettings returns the baseline UI settings.
func DefaultUISettings() UISettings {
	return UISettings{
		Version:          1,
		Theme:            "system",
		AccentColor:      "#6366f1",
		DashboardColumns: 4,
		ShowAnnouncement: true,
		ShowRecommended:  true,
	}
}

// NotesWallSettings is the notes-wall background blob stored under the
// "notes_bg_settings" config key.
type NotesWallSettings struct {
	Version         int     `json:"version"`
	Background      string  `json:"background"`
	BackgroundImage string  `json:"background_image"`
	Opacity         float64 `json:"opacity"`
	GridSnap        bool    `json:"grid_snap"`
}

// DefaultNotesWallSettings returns the baseline notes-wall settings.
func DefaultNotesWallSettings() NotesWallSettings {
	return NotesWallSettings{
		Version:    1,
		Background: "#f5f1e8",
		Opacity:    1.0,
	}
}

// SettingsService reads and writes the GlobalConfig bag and the
// announcement history log.
type SettingsService struct {
	db *gorm.DB
}

// NewSettingsService constructs a settings service
func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// rawGet returns the stored JSON for key; ok is false when absent.
func (s *SettingsService) rawGet(key string) (value []byte, ok bool, err error) {
	var c models.GlobalConfig
	if err := s.db.First(&c, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read config %q: %w", key, err)
	}
	return []byte(c.Value), true, nil
}

// rawSet upserts the whole stored value for key.
func (s *SettingsService) rawSet(key string, value []byte) error {
	if err := s.db.Save(&models.GlobalConfig{Key: key, Value: datatypes.JSON(value)}).Error; err != nil {
		return fmt.Errorf("failed to write config %q: %w", key, err)
	}
	return nil
}

// UISettings returns the stored UI settings merged over defaults. A missing
// or unparseable blob yields the defaults.
func (s *SettingsService) UISettings() (UISettings, error) {
	settings := DefaultUISettings()
	raw, ok, err := s.rawGet(models.ConfigKeyUISettings)
	if err != nil {
		return settings, err
	}
	if ok {
		// Parse failures fall back to defaults on purpose.
		_ = json.Unmarshal(raw, &settings)
	}
	return settings, nil
}

// SaveUISettings persists the whole UI settings blob.
func (s *SettingsService) SaveUISettings(settings UISettings) error {
	if settings.Version == 0 {
		settings.Version = 1
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to serialize ui settings: %w", err)
	}
	return s.rawSet(models.ConfigKeyUISettings, raw)
}

// NotesWallSettings returns the stored notes-wall settings merged over
// defaults.
func (s *SettingsService) NotesWallSettings() (NotesWallSettings, error) {
	settings := DefaultNotesWallSettings()
	raw, ok, err := s.rawGet(models.ConfigKeyNotesWallSetting)
	if err != nil {
		return settings, err
	}
	if ok {
		_ = json.Unmarshal(raw, &settings)
	}
	return settings, nil
}

// SaveNotesWallSettings persists the whole notes-wall settings blob.
func (s *SettingsService) SaveNotesWallSettings(settings NotesWallSettings) error {
	if settings.Version == 0 {
		settings.Version = 1
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to serialize notes settings: %w", err)
	}
	return s.rawSet(models.ConfigKeyNotesWallSetting, raw)
}

// Announcement returns the current announcement text, empty when unset or
// unparseable.
func (s *SettingsService) Announcement() (string, error) {
	raw, ok, err := s.rawGet(models.ConfigKeyAnnouncement)
	if err != nil || !ok {
		return "", err
	}
	var text string
	_ = json.Unmarshal(raw, &text)
	return text, nil
}

// SetAnnouncement upserts the announcement. A non-empty announcement is also
// appended to the history log; clearing the announcement is not.
func (s *SettingsService) SetAnnouncement(text string) error {
	text = strings.TrimSpace(text)
	raw, err := json.Marshal(text)
	if err != nil {
		return fmt.Errorf("failed to serialize announcement: %w", err)
	}
	if err := s.rawSet(models.ConfigKeyAnnouncement, raw); err != nil {
		return err
	}

	if text == "" {
		return nil
	}
	if err := s.db.Create(&models.AnnouncementHistory{Content: text}).Error; err != nil {
		return fmt.Errorf("failed to append announcement history: %w", err)
	}
	return nil
}

// AnnouncementHistory returns the most recent announcements, newest first.
func (s *SettingsService) AnnouncementHistory(limit int) ([]models.AnnouncementHistory, error) {
	if limit <= 0 {
		limit = 20
	}
	var history []models.AnnouncementHistory
	if err := s.db.Order("created_at DESC, id DESC").Limit(limit).Find(&history).Error; err != nil {
		return nil, fmt.Errorf("failed to list announcement history: %w", err)
	}
	return history, nil
}
