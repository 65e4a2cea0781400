package service

import (
	"fmt"
	"strings"

	"sanctuary/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryService handles link category business logic
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService constructs a category service
func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// List returns all categories ordered by sort order, then name.
func (s *CategoryService) List() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Ensure inserts the category name with sort order 0 when it is not present.
// Used by link writes to keep the category set consistent with link rows.
func (s *CategoryService) Ensure(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Category{Name: name, SortOrder: 0}).Error
	if err != nil {
		return fmt.Errorf("failed to ensure category %q: %w", name, err)
	}
	return nil
}

// Create creates a category with an explicit name
func (s *CategoryService) Create(name string, sortOrder int) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, wrapSentinel("category name is required", ErrValidation)
	}

	var count int64
	if err := s.db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if count > 0 {
		return nil, wrapSentinel(fmt.Sprintf("category already exists: %s", name), ErrCategoryExists)
	}

	category := models.Category{Name: name, SortOrder: sortOrder}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// Rename renames a category and rewrites the category name on its links so
// the dashboard stays consistent.
func (s *CategoryService) Rename(id uint, newName string) (*models.Category, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, wrapSentinel("category name is required", ErrValidation)
	}

	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, wrapSentinel(fmt.Sprintf("category not found: %d", id), ErrCategoryNotFound)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	oldName := category.Name
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&category).Update("name", newName).Error; err != nil {
			return err
		}
		return tx.Model(&models.Link{}).Where("category = ?", oldName).
			Update("category", newName).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to rename category: %w", err)
	}

	category.Name = newName
	return &category, nil
}

// Delete deletes a category row. Links keep their category name and show up
// as an orphaned group until re-categorized.
func (s *CategoryService) Delete(id uint) error {
	result := s.db.Delete(&models.Category{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapSentinel(fmt.Sprintf("category not found: %d", id), ErrCategoryNotFound)
	}
	return nil
}

// Reorder applies an ordered batch of {id, sort_order} pairs as a single
// all-or-nothing update. Records outside the batch are untouched.
func (s *CategoryService) Reorder(items []models.ReorderItem) error {
	if len(items) == 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			result := tx.Model(&models.Category{}).Where("id = ?", item.ID).
				Update("sort_order", item.SortOrder)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return wrapSentinel(fmt.Sprintf("category not found: %d", item.ID), ErrCategoryNotFound)
			}
		}
		return nil
	})
}
