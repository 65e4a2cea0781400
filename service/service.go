package service

import (
	"gorm.io/gorm"
)

// Services is the global service container
type Services struct {
	Link      *LinkService
	Category  *CategoryService
	Post      *PostService
	Note      *NoteService
	Wallpaper *WallpaperService
	Settings  *SettingsService
	Character *CharacterService
	Session   *ChatSessionService
}

// GlobalServices is the global service instance
var GlobalServices *Services

// InitServices initializes all services
func InitServices(db *gorm.DB) {
	categorySvc := NewCategoryService(db)

	GlobalServices = &Services{
		Link:      NewLinkService(db, categorySvc),
		Category:  categorySvc,
		Post:      NewPostService(db),
		Note:      NewNoteService(db),
		Wallpaper: NewWallpaperService(db),
		Settings:  NewSettingsService(db),
		Character: NewCharacterService(db),
		Session:   NewChatSessionService(db),
	}
}
