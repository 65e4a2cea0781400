package handlers

import (
	"net/http"
	"strings"

	"sanctuary/chat"
	"sanctuary/config"
	"sanctuary/models"
	"sanctuary/service"
	"sanctuary/state"

	"github.com/gin-gonic/gin"
)

var orchestrator *chat.Orchestrator

// SetOrchestrator wires the chat orchestrator used by the round endpoints.
func SetOrchestrator(o *chat.Orchestrator) {
	orchestrator = o
}

// ListPublicCharacters lists public personas for the chat picker
func ListPublicCharacters(c *gin.Context) {
	characters, err := service.GlobalServices.Character.List(true)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, characters)
}

// ListCharacters lists every persona for the admin console
func ListCharacters(c *gin.Context) {
	characters, err := service.GlobalServices.Character.List(false)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, characters)
}

// CreateCharacter creates a persona
func CreateCharacter(c *gin.Context) {
	var req models.AICharacterCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	character, err := service.GlobalServices.Character.Create(req)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, character)
}

// UpdateCharacter updates a persona
func UpdateCharacter(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var req models.AICharacterCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	character, err := service.GlobalServices.Character.Update(id, req)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, character)
}

// DeleteCharacter deletes a persona and clears its session participation
func DeleteCharacter(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	if err := service.GlobalServices.Character.Delete(id); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"id": id})
}

// ListSessions lists persisted group conversations
func ListSessions(c *gin.Context) {
	sessions, err := service.GlobalServices.Session.List()
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, sessions)
}

// CreateSession creates a persisted group conversation
func CreateSession(c *gin.Context) {
	var req models.AIChatSessionCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	session, err := service.GlobalServices.Session.Create(req)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, session)
}

// RenameSession renames a session
func RenameSession(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	session, err := service.GlobalServices.Session.Rename(id, req.Name)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, session)
}

// DeleteSession deletes a session with its transcript
func DeleteSession(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	if err := service.GlobalServices.Session.Delete(id); err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"id": id})
}

// ListSessionMessages returns a session transcript in order
func ListSessionMessages(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	messages, err := service.GlobalServices.Session.Messages(id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, messages)
}

// SessionMessageRequest is the user turn that triggers a persisted round.
type SessionMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// PostSessionMessage persists the user turn, then runs one round: every
// participant replies in order, each reply written to the transcript before
// the next persona's turn. A persona failure skips that persona's
// contribution; the user message is never rolled back.
func PostSessionMessage(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var req SessionMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, "message content is required")
		return
	}

	session, err := service.GlobalServices.Session.Get(id)
	if err != nil {
		failErr(c, err)
		return
	}

	if !state.Global.BeginRound(id) {
		fail(c, http.StatusConflict, CodeResourceBusy, "a round is already running for this session")
		return
	}
	defer state.Global.EndRound(id)

	userMessage, err := service.GlobalServices.Session.AppendUserMessage(id, content)
	if err != nil {
		failErr(c, err)
		return
	}

	history, err := service.GlobalServices.Session.History(id, config.Settings.ChatHistoryLimit)
	if err != nil {
		failErr(c, err)
		return
	}

	names := make(map[uint]string, len(session.Participants))
	personas := make([]chat.Persona, 0, len(session.Participants))
	for _, participant := range session.Participants {
		names[participant.ID] = participant.Name
		personas = append(personas, chat.PersonaFromCharacter(participant))
	}

	sink := &chat.PersistedSink{Store: service.GlobalServices.Session, SessionID: id}
	results := orchestrator.RunRound(c.Request.Context(), personas, chat.TurnsFromMessages(history, names), sink)

	ok(c, gin.H{"user_message": userMessage, "turns": results})
}

// StatelessRoundRequest carries everything a round needs when nothing is
// persisted server-side: the caller supplies personas and history wholesale.
type StatelessRoundRequest struct {
	Personas []chat.Persona `json:"personas" binding:"required"`
	History  []chat.Turn    `json:"history"`
	Message  string         `json:"message" binding:"required"`
}

// StatelessRound runs one round without touching durable storage. Failures
// come back as error turns attributed to their persona; the round continues.
func StatelessRound(c *gin.Context) {
	var req StatelessRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}
	if len(req.Personas) == 0 {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, "at least one persona is required")
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, "message is required")
		return
	}

	history := append(req.History, chat.Turn{Actor: chat.UserActor, Content: message})
	results := orchestrator.RunRound(c.Request.Context(), req.Personas, history, chat.StatelessSink{})

	ok(c, gin.H{"turns": results})
}
