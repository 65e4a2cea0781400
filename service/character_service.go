package service

import (
	"fmt"

	"sanctuary/models"

	"gorm.io/gorm"
)

// CharacterService handles AI persona business logic
type CharacterService struct {
	db *gorm.DB
}

// NewCharacterService constructs a character service
func NewCharacterService(db *gorm.DB) *CharacterService {
	return &CharacterService{db: db}
}

// List returns personas, optionally only public ones, oldest first.
func (s *CharacterService) List(publicOnly bool) ([]models.AICharacter, error) {
	query := s.db.Order("created_at ASC, id ASC")
	if publicOnly {
		query = query.Where("is_public = ?", true)
	}
	var characters []models.AICharacter
	if err := query.Find(&characters).Error; err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return characters, nil
}

// Get fetches a persona by ID
func (s *CharacterService) Get(id uint) (*models.AICharacter, error) {
	var character models.AICharacter
	if err := s.db.First(&character, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, wrapSentinel(fmt.Sprintf("character not found: %d", id), ErrCharacterNotFound)
		}
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return &character, nil
}

// Create creates a persona
func (s *CharacterService) Create(req models.AICharacterCreate) (*models.AICharacter, error) {
	req.Normalize()
	if req.Name == "" || req.SystemPrompt == "" {
		return nil, wrapSentinel("name and system prompt are required", ErrValidation)
	}

	character := models.AICharacter{
		Name:         req.Name,
		Description:  req.Description,
		SystemPrompt: req.SystemPrompt,
		Avatar:       req.Avatar,
		IsPublic:     true,
	}
	if req.IsPublic != nil {
		character.IsPublic = *req.IsPublic
	}
	if err := s.db.Create(&character).Error; err != nil {
		return nil, fmt.Errorf("failed to create character: %w", err)
	}
	return &character, nil
}

// Update updates a persona by ID
func (s *CharacterService) Update(id uint, req models.AICharacterCreate) (*models.AICharacter, error) {
	character, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	if req.Name == "" || req.SystemPrompt == "" {
		return nil, wrapSentinel("name and system prompt are required", ErrValidation)
	}

	character.Name = req.Name
	character.Description = req.Description
	character.SystemPrompt = req.SystemPrompt
	character.Avatar = req.Avatar
	if req.IsPublic != nil {
		character.IsPublic = *req.IsPublic
	}

	if err := s.db.Save(character).Error; err != nil {
		return nil, fmt.Errorf("failed to update character: %w", err)
	}
	return character, nil
}

// Delete deletes a persona. Its rows in the session participant table are
// cleared first; sessions survive with their remaining participants and old
// transcript messages keep their character_id attribution.
func (s *CharacterService) Delete(id uint) error {
	character, err := s.Get(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM ai_chat_session_participants WHERE ai_character_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to clear session participation: %w", err)
		}
		if err := tx.Delete(character).Error; err != nil {
			return fmt.Errorf("failed to delete character: %w", err)
		}
		return nil
	})
}
