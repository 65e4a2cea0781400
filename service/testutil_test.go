package service

import (
	"testing"

	"sanctuary/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Link{},
		&models.Category{},
		&models.Post{},
		&models.Note{},
		&models.SmartWallpaper{},
		&models.GlobalConfig{},
		&models.AnnouncementHistory{},
		&models.AICharacter{},
		&models.AIChatSession{},
		&models.AIChatMessage{},
	)
	if err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return db
}
