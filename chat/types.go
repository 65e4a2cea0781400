package chat

import (
	"strconv"
	"time"

	"sanctuary/models"

	"github.com/google/uuid"
)

// Persona parameterizes one reply from the completion endpoint.
type Persona struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	SystemPrompt string `json:"system_prompt"`
}

// PersonaFromCharacter converts a stored character into a persona descriptor.
func PersonaFromCharacter(c models.AICharacter) Persona {
	return Persona{ID: c.ID, Name: c.Name, SystemPrompt: c.SystemPrompt}
}

// Turn is one prior conversation turn, tagged with its actor's display label.
type Turn struct {
	Actor   string `json:"actor"`
	Content string `json:"content"`
}

// UserActor is the actor label for turns written by the human user.
const UserActor = "User"

// TurnsFromMessages converts a transcript into actor-labelled turns, using
// names to resolve assistant turns back to their persona's display name.
func TurnsFromMessages(messages []models.AIChatMessage, names map[uint]string) []Turn {
	turns := make([]Turn, 0, len(messages))
	for _, m := range messages {
		actor := UserActor
		if m.Role == models.RoleAssistant && m.CharacterID != nil {
			if name, ok := names[*m.CharacterID]; ok {
				actor = name
			} else {
				actor = "Assistant"
			}
		}
		turns = append(turns, Turn{Actor: actor, Content: m.Content})
	}
	return turns
}

// Reply is one generated persona reply, shaped identically in persisted and
// stateless mode; only the id provenance differs.
type Reply struct {
	ID            string    `json:"id"`
	Role          string    `json:"role"`
	Content       string    `json:"content"`
	CharacterID   uint      `json:"character_id"`
	CharacterName string    `json:"character_name"`
	CreatedAt     time.Time `json:"created_at"`
}

// RoundTurn is the per-persona outcome of a round.
type RoundTurn struct {
	CharacterID   uint   `json:"character_id"`
	CharacterName string `json:"character_name"`
	Success       bool   `json:"success"`
	Reply         *Reply `json:"reply,omitempty"`
	Error         string `json:"error,omitempty"`
}

// ReplySink receives each cleaned reply. It is the seam between persisted
// and stateless operation.
type ReplySink interface {
	Deliver(persona Persona, content string) (*Reply, error)
}

// MessageStore is the slice of the session service the persisted sink needs.
type MessageStore interface {
	AppendAssistantMessage(sessionID uint, characterID uint, content string) (*models.AIChatMessage, error)
}

// PersistedSink writes replies as transcript rows of a session.
type PersistedSink struct {
	Store     MessageStore
	SessionID uint
}

func (s *PersistedSink) Deliver(persona Persona, content string) (*Reply, error) {
	message, err := s.Store.AppendAssistantMessage(s.SessionID, persona.ID, content)
	if err != nil {
		return nil, err
	}
	return &Reply{
		ID:            strconv.FormatUint(uint64(message.ID), 10),
		Role:          message.Role,
		Content:       message.Content,
		CharacterID:   persona.ID,
		CharacterName: persona.Name,
		CreatedAt:     message.CreatedAt,
	}, nil
}

// StatelessSink fabricates transient replies and performs no durable writes.
// Callers supply history and participants wholesale on every invocation.
type StatelessSink struct{}

func (StatelessSink) Deliver(persona Persona, content string) (*Reply, error) {
	return &Reply{
		ID:            uuid.NewString(),
		Role:          models.RoleAssistant,
		Content:       content,
		CharacterID:   persona.ID,
		CharacterName: persona.Name,
		CreatedAt:     time.Now(),
	}, nil
}
