package service

import (
	"fmt"
	"strings"
	"time"

	"sanctuary/models"

	"gorm.io/gorm"
)

// ChatSessionService handles persisted group conversation business logic
type ChatSessionService struct {
	db *gorm.DB
}

// NewChatSessionService constructs a chat session service
func NewChatSessionService(db *gorm.DB) *ChatSessionService {
	return &ChatSessionService{db: db}
}

// List returns all sessions with participants, most recently active first.
func (s *ChatSessionService) List() ([]models.AIChatSession, error) {
	var sessions []models.AIChatSession
	if err := s.db.Preload("Participants").Order("updated_at DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// Get fetches a session with its participants
func (s *ChatSessionService) Get(id uint) (*models.AIChatSession, error) {
	var session models.AIChatSession
	if err := s.db.Preload("Participants").First(&session, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, wrapSentinel(fmt.Sprintf("chat session not found: %d", id), ErrSessionNotFound)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// Create creates a session with the given participant personas. An empty
// name defaults to the joined participant names.
func (s *ChatSessionService) Create(req models.AIChatSessionCreate) (*models.AIChatSession, error) {
	req.Normalize()
	if len(req.ParticipantIDs) == 0 {
		return nil, wrapSentinel("at least one participant is required", ErrValidation)
	}

	var participants []models.AICharacter
	if err := s.db.Find(&participants, req.ParticipantIDs).Error; err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}
	if len(participants) != len(req.ParticipantIDs) {
		return nil, wrapSentinel("one or more participants do not exist", ErrCharacterNotFound)
	}

	name := req.Name
	if name == "" {
		names := make([]string, len(participants))
		for i, p := range participants {
			names[i] = p.Name
		}
		name = strings.Join(names, ", ")
	}

	session := models.AIChatSession{Name: name, Participants: participants}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &session, nil
}

// Rename renames a session
func (s *ChatSessionService) Rename(id uint, name string) (*models.AIChatSession, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, wrapSentinel("session name is required", ErrValidation)
	}

	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(session).Update("name", name).Error; err != nil {
		return nil, fmt.Errorf("failed to rename session: %w", err)
	}
	session.Name = name
	return session, nil
}

// Delete deletes a session, its transcript, and its participant relations.
func (s *ChatSessionService) Delete(id uint) error {
	session, err := s.Get(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&models.AIChatMessage{}).Error; err != nil {
			return fmt.Errorf("failed to delete session messages: %w", err)
		}
		if err := tx.Model(session).Association("Participants").Clear(); err != nil {
			return fmt.Errorf("failed to clear participants: %w", err)
		}
		if err := tx.Delete(session).Error; err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		return nil
	})
}

// Messages returns the full transcript ordered by (created_at, id) so
// same-tick writes keep a total order.
func (s *ChatSessionService) Messages(sessionID uint) ([]models.AIChatMessage, error) {
	if _, err := s.Get(sessionID); err != nil {
		return nil, err
	}
	var messages []models.AIChatMessage
	if err := s.db.Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// History returns the most recent limit messages in chronological order.
func (s *ChatSessionService) History(sessionID uint, limit int) ([]models.AIChatMessage, error) {
	messages, err := s.Messages(sessionID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return messages, nil
}

// AppendUserMessage appends a user turn and bumps the session's updated_at.
func (s *ChatSessionService) AppendUserMessage(sessionID uint, content string) (*models.AIChatMessage, error) {
	return s.appendMessage(sessionID, models.RoleUser, content, nil)
}

// AppendAssistantMessage appends a persona reply and bumps the session's
// updated_at. This is the persisted-mode reply sink.
func (s *ChatSessionService) AppendAssistantMessage(sessionID uint, characterID uint, content string) (*models.AIChatMessage, error) {
	return s.appendMessage(sessionID, models.RoleAssistant, content, &characterID)
}

func (s *ChatSessionService) appendMessage(sessionID uint, role, content string, characterID *uint) (*models.AIChatMessage, error) {
	if _, err := s.Get(sessionID); err != nil {
		return nil, err
	}

	message := models.AIChatMessage{
		SessionID:   sessionID,
		Role:        role,
		Content:     content,
		CharacterID: characterID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return tx.Model(&models.AIChatSession{}).Where("id = ?", sessionID).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}
	return &message, nil
}
