package models

import (
	"strings"
	"time"
)

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// AICharacter defines a chat persona: a display name plus the behavior
// prompt fed to the completion endpoint.
type AICharacter struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `json:"description,omitempty"`
	SystemPrompt string    `gorm:"type:text;not null" json:"system_prompt"`
	Avatar       string    `json:"avatar,omitempty"`
	IsPublic     bool      `gorm:"default:true" json:"is_public"`
	CreatedAt    time.Time `json:"created_at"`
}

// AICharacterCreate request payload for creating or updating a persona
type AICharacterCreate struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	SystemPrompt string `json:"system_prompt" binding:"required"`
	Avatar       string `json:"avatar"`
	IsPublic     *bool  `json:"is_public"`
}

// Normalize trims whitespace from input fields
func (c *AICharacterCreate) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	c.SystemPrompt = strings.TrimSpace(c.SystemPrompt)
	c.Avatar = strings.TrimSpace(c.Avatar)
}

// AIChatSession is a persisted group conversation.
type AIChatSession struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Name         string        `gorm:"not null" json:"name"`
	Participants []AICharacter `gorm:"many2many:ai_chat_session_participants" json:"participants"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// AIChatSessionCreate request payload for creating a session
type AIChatSessionCreate struct {
	Name           string `json:"name"`
	ParticipantIDs []uint `json:"participant_ids" binding:"required"`
}

// Normalize trims whitespace from input fields
func (s *AIChatSessionCreate) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
}

// AIChatMessage is one turn of a persisted session. Appended only; readers
// order by (created_at, id) so same-tick writes keep a total order.
type AIChatMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SessionID   uint      `gorm:"not null;index" json:"session_id"`
	Role        string    `gorm:"not null" json:"role"`
	Content     string    `gorm:"type:text" json:"content"`
	CharacterID *uint     `json:"character_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
