package handlers

import (
	"encoding/json"
	"net/http"

	"sanctuary/config"
	"sanctuary/database"
	"sanctuary/service"

	"github.com/gin-gonic/gin"
)

// GetAnnouncement returns the current announcement text
func GetAnnouncement(c *gin.Context) {
	text, err := service.GlobalServices.Settings.Announcement()
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"content": text})
}

// SetAnnouncement saves the announcement; non-empty values are logged to history
func SetAnnouncement(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	if err := service.GlobalServices.Settings.SetAnnouncement(req.Content); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"content": req.Content})
}

// GetAnnouncementHistory returns the recent announcement log, newest first
func GetAnnouncementHistory(c *gin.Context) {
	history, err := service.GlobalServices.Settings.AnnouncementHistory(config.Settings.AnnouncementHistoryLimit)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, history)
}

// GetUISettings returns the UI settings merged over defaults
func GetUISettings(c *gin.Context) {
	settings, err := service.GlobalServices.Settings.UISettings()
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, settings)
}

// SaveUISettings persists the UI settings blob
func SaveUISettings(c *gin.Context) {
	var settings service.UISettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	if err := service.GlobalServices.Settings.SaveUISettings(settings); err != nil {
		failErr(c, err)
		return
	}
	ok(c, settings)
}

// GetNotesWallSettings returns the notes-wall settings merged over defaults
func GetNotesWallSettings(c *gin.Context) {
	settings, err := service.GlobalServices.Settings.NotesWallSettings()
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, settings)
}

// SaveNotesWallSettings persists the notes-wall settings blob
func SaveNotesWallSettings(c *gin.Context) {
	var settings service.NotesWallSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	if err := service.GlobalServices.Settings.SaveNotesWallSettings(settings); err != nil {
		failErr(c, err)
		return
	}
	ok(c, settings)
}

// GetConfigValue reads a raw config value by key. Missing keys return null
// data rather than an error; the caller falls back to its defaults.
func GetConfigValue(c *gin.Context) {
	key := c.Param("key")
	raw, found, err := database.GetConfig(key)
	if err != nil {
		failErr(c, err)
		return
	}
	if !found {
		ok(c, gin.H{"key": key, "value": nil})
		return
	}
	ok(c, gin.H{"key": key, "value": json.RawMessage(raw)})
}

// SetConfigValue upserts a raw config value whole. The store accepts any
// JSON-shaped payload verbatim; shape is the caller's responsibility.
func SetConfigValue(c *gin.Context) {
	key := c.Param("key")

	var value json.RawMessage
	if err := c.ShouldBindJSON(&value); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, "body must be valid JSON")
		return
	}

	if err := database.SetConfig(key, value); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"key": key, "value": value})
}

// DeleteConfigValue removes a config key entirely. Deleting an absent key is
// a no-op success; readers fall back to their defaults either way.
func DeleteConfigValue(c *gin.Context) {
	key := c.Param("key")
	if err := database.DeleteConfig(key); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"key": key})
}
