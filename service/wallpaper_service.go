package service

import (
	"fmt"

	"sanctuary/models"

	"gorm.io/gorm"
)

// WallpaperService handles smart wallpaper theme business logic
type WallpaperService struct {
	db *gorm.DB
}

// NewWallpaperService constructs a wallpaper service
func NewWallpaperService(db *gorm.DB) *WallpaperService {
	return &WallpaperService{db: db}
}

// List returns all wallpaper themes, newest first.
func (s *WallpaperService) List() ([]models.SmartWallpaper, error) {
	var wallpapers []models.SmartWallpaper
	if err := s.db.Order("created_at DESC").Find(&wallpapers).Error; err != nil {
		return nil, fmt.Errorf("failed to list wallpapers: %w", err)
	}
	return wallpapers, nil
}

// Get fetches a wallpaper theme by ID
func (s *WallpaperService) Get(id uint) (*models.SmartWallpaper, error) {
	var wallpaper models.SmartWallpaper
	if err := s.db.First(&wallpaper, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, wrapSentinel(fmt.Sprintf("wallpaper not found: %d", id), ErrWallpaperNotFound)
		}
		return nil, fmt.Errorf("failed to get wallpaper: %w", err)
	}
	return &wallpaper, nil
}

// Create creates a wallpaper theme
func (s *WallpaperService) Create(req models.SmartWallpaperCreate) (*models.SmartWallpaper, error) {
	req.Normalize()
	if req.Name == "" {
		return nil, wrapSentinel("name is required", ErrValidation)
	}

	wallpaper := models.SmartWallpaper{
		Name:      req.Name,
		Morning:   req.Morning,
		Afternoon: req.Afternoon,
		Night:     req.Night,
	}
	if err := s.db.Create(&wallpaper).Error; err != nil {
		return nil, fmt.Errorf("failed to create wallpaper: %w", err)
	}
	return &wallpaper, nil
}

// Update updates a wallpaper theme by ID
func (s *WallpaperService) Update(id uint, req models.SmartWallpaperCreate) (*models.SmartWallpaper, error) {
	wallpaper, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	if req.Name == "" {
		return nil, wrapSentinel("name is required", ErrValidation)
	}

	wallpaper.Name = req.Name
	wallpaper.Morning = req.Morning
	wallpaper.Afternoon = req.Afternoon
	wallpaper.Night = req.Night

	if err := s.db.Save(wallpaper).Error; err != nil {
		return nil, fmt.Errorf("failed to update wallpaper: %w", err)
	}
	return wallpaper, nil
}

// Delete deletes a wallpaper theme by ID
func (s *WallpaperService) Delete(id uint) error {
	result := s.db.Delete(&models.SmartWallpaper{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete wallpaper: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapSentinel(fmt.Sprintf("wallpaper not found: %d", id), ErrWallpaperNotFound)
	}
	return nil
}
