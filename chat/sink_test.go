package chat

import (
	"testing"
	"time"

	"sanctuary/models"
)

type fakeStore struct {
	appended []models.AIChatMessage
}

func (f *fakeStore) AppendAssistantMessage(sessionID uint, characterID uint, content string) (*models.AIChatMessage, error) {
	msg := models.AIChatMessage{
		ID:          uint(len(f.appended) + 1),
		SessionID:   sessionID,
		Role:        models.RoleAssistant,
		Content:     content,
		CharacterID: &characterID,
		CreatedAt:   time.Now(),
	}
	f.appended = append(f.appended, msg)
	return &msg, nil
}

func TestSinks_ProduceStructurallyEquivalentReplies(t *testing.T) {
	persona := Persona{ID: 7, Name: "Haru", SystemPrompt: "x"}

	store := &fakeStore{}
	persisted := &PersistedSink{Store: store, SessionID: 3}

	fromDB, err := persisted.Deliver(persona, "hello")
	if err != nil {
		t.Fatalf("persisted deliver failed: %v", err)
	}
	transient, err := StatelessSink{}.Deliver(persona, "hello")
	if err != nil {
		t.Fatalf("stateless deliver failed: %v", err)
	}

	if fromDB.Role != transient.Role || fromDB.Role != models.RoleAssistant {
		t.Fatalf("role mismatch: %q vs %q", fromDB.Role, transient.Role)
	}
	if fromDB.Content != transient.Content {
		t.Fatalf("content mismatch: %q vs %q", fromDB.Content, transient.Content)
	}
	if fromDB.CharacterID != transient.CharacterID || fromDB.CharacterName != transient.CharacterName {
		t.Fatalf("persona echo mismatch: %+v vs %+v", fromDB, transient)
	}
	if fromDB.ID == "" || transient.ID == "" {
		t.Fatal("both modes must produce an id")
	}

	if len(store.appended) != 1 {
		t.Fatalf("expected exactly one persisted row, got %d", len(store.appended))
	}
	if store.appended[0].SessionID != 3 {
		t.Fatalf("expected session 3, got %d", store.appended[0].SessionID)
	}
}

func TestTurnsFromMessages_ResolvesActors(t *testing.T) {
	cid := uint(2)
	unknown := uint(99)
	messages := []models.AIChatMessage{
		{Role: models.RoleUser, Content: "hi"},
		{Role: models.RoleAssistant, Content: "hello", CharacterID: &cid},
		{Role: models.RoleAssistant, Content: "hm", CharacterID: &unknown},
	}

	turns := TurnsFromMessages(messages, map[uint]string{2: "Haru"})
	if turns[0].Actor != UserActor {
		t.Fatalf("expected user actor, got %q", turns[0].Actor)
	}
	if turns[1].Actor != "Haru" {
		t.Fatalf("expected persona actor, got %q", turns[1].Actor)
	}
	if turns[2].Actor != "Assistant" {
		t.Fatalf("expected fallback actor for deleted persona, got %q", turns[2].Actor)
	}
}
