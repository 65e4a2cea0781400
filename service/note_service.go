package service

import (
	"fmt"

	"sanctuary/models"

	"gorm.io/gorm"
)

// NoteService handles sticky-note business logic
type NoteService struct {
	db *gorm.DB
}

// NewNoteService constructs a note service
func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

// List returns all notes in stacking order (lowest first).
func (s *NoteService) List() ([]models.Note, error) {
	var notes []models.Note
	if err := s.db.Order("sort_order ASC, id ASC").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// Get fetches a note by ID
func (s *NoteService) Get(id uint) (*models.Note, error) {
	var note models.Note
	if err := s.db.First(&note, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, wrapSentinel(fmt.Sprintf("note not found: %d", id), ErrNoteNotFound)
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return &note, nil
}

// Create creates a note. New notes stack on top of existing ones.
func (s *NoteService) Create(req models.NoteCreate) (*models.Note, error) {
	req.Normalize()
	if req.Content == "" {
		return nil, wrapSentinel("content is required", ErrValidation)
	}
	if req.Color == "" {
		req.Color = "yellow"
	}

	var maxOrder int
	s.db.Model(&models.Note{}).Select("COALESCE(MAX(sort_order), 0)").Scan(&maxOrder)

	note := models.Note{
		Content:   req.Content,
		Color:     req.Color,
		X:         req.X,
		Y:         req.Y,
		SortOrder: maxOrder + 1,
	}
	if err := s.db.Create(&note).Error; err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return &note, nil
}

// Update updates a note's content and color by ID
func (s *NoteService) Update(id uint, req models.NoteCreate) (*models.Note, error) {
	note, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	if req.Content == "" {
		return nil, wrapSentinel("content is required", ErrValidation)
	}

	note.Content = req.Content
	if req.Color != "" {
		note.Color = req.Color
	}

	if err := s.db.Save(note).Error; err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return note, nil
}

// Move updates only position and stacking order, bypassing full-record
// update semantics. Last writer wins when two clients drag the same note.
func (s *NoteService) Move(id uint, req models.NoteMove) error {
	result := s.db.Model(&models.Note{}).Where("id = ?", id).Updates(map[string]interface{}{
		"x":          req.X,
		"y":          req.Y,
		"sort_order": req.SortOrder,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to move note: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapSentinel(fmt.Sprintf("note not found: %d", id), ErrNoteNotFound)
	}
	return nil
}

// Reorder applies an ordered batch of {id, sort_order} pairs as a single
// all-or-nothing update.
func (s *NoteService) Reorder(items []models.ReorderItem) error {
	if len(items) == 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			result := tx.Model(&models.Note{}).Where("id = ?", item.ID).
				Update("sort_order", item.SortOrder)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return wrapSentinel(fmt.Sprintf("note not found: %d", item.ID), ErrNoteNotFound)
			}
		}
		return nil
	})
}

// Delete deletes a note by ID
func (s *NoteService) Delete(id uint) error {
	result := s.db.Delete(&models.Note{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete note: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapSentinel(fmt.Sprintf("note not found: %d", id), ErrNoteNotFound)
	}
	return nil
}
