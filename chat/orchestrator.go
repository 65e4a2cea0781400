package chat

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// EmptyReplyPlaceholder is returned when the completion endpoint answers
// with no choices at all.
const EmptyReplyPlaceholder = "..."

// Config holds completion-endpoint parameters.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Completer is the slice of the OpenAI client the orchestrator uses.
// *openai.Client satisfies it; tests substitute a fake.
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Orchestrator produces persona replies against an OpenAI-compatible
// completion endpoint. One instance serves both persisted and stateless
// mode; the ReplySink passed per round decides what happens to each reply.
type Orchestrator struct {
	client      Completer
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
}

// New builds an orchestrator with its own endpoint client.
func New(cfg Config) *Orchestrator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 512
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &Orchestrator{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
	}
}

// NewWithClient builds an orchestrator around an existing Completer.
func NewWithClient(client Completer, cfg Config) *Orchestrator {
	o := New(cfg)
	o.client = client
	return o
}

// GenerateReply produces one cleaned reply for persona given the prior
// turns. others lists the remaining participant display names so the
// persona can address them. No retry is attempted on failure.
func (o *Orchestrator) GenerateReply(ctx context.Context, persona Persona, others []string, history []Turn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: buildSystemInstruction(persona, others),
	})
	for _, turn := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: turn.Actor + ": " + turn.Content,
		})
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: o.temperature,
		MaxTokens:   o.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return EmptyReplyPlaceholder, nil
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	return stripSelfPrefix(persona.Name, text), nil
}

// RunRound iterates the participants sequentially, generating at most one
// reply each. The history is threaded as a fresh value per step, so later
// personas see earlier personas' replies from this round. A per-persona
// failure is recorded and the round continues; there is no early
// termination and no way for a persona to decline.
func (o *Orchestrator) RunRound(ctx context.Context, personas []Persona, history []Turn, sink ReplySink) []RoundTurn {
	hist := append([]Turn(nil), history...)
	results := make([]RoundTurn, 0, len(personas))

	for i, persona := range personas {
		others := make([]string, 0, len(personas)-1)
		for j, other := range personas {
			if j != i {
				others = append(others, other.Name)
			}
		}

		turn := RoundTurn{CharacterID: persona.ID, CharacterName: persona.Name}

		content, err := o.GenerateReply(ctx, persona, others, hist)
		if err != nil {
			turn.Error = err.Error()
			results = append(results, turn)
			continue
		}

		reply, err := sink.Deliver(persona, content)
		if err != nil {
			turn.Error = err.Error()
			results = append(results, turn)
			continue
		}

		turn.Success = true
		turn.Reply = reply
		results = append(results, turn)

		hist = append(append([]Turn(nil), hist...), Turn{Actor: persona.Name, Content: content})
	}

	return results
}

// buildSystemInstruction states the persona's identity and behavior prompt,
// lists the other participants, and issues the group-chat directives.
func buildSystemInstruction(persona Persona, others []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s.\n%s\n\n", persona.Name, persona.SystemPrompt)
	if len(others) > 0 {
		fmt.Fprintf(&b, "You are in a group chat together with %s and the user.\n", strings.Join(others, ", "))
	} else {
		b.WriteString("You are in a chat with the user.\n")
	}
	b.WriteString("Rules:\n")
	b.WriteString("1. You may address any participant, not only the most recent speaker.\n")
	b.WriteString("2. When you address someone directly, mention them as @Name.\n")
	b.WriteString("3. Never prefix your reply with your own name.\n")
	b.WriteString("4. Keep replies short and conversational.\n")
	return b.String()
}

// stripSelfPrefix removes a leading "Name:", "Name：" or "@Name" token the
// model sometimes emits despite the no-self-prefix rule. Mid-sentence
// mentions are left alone.
func stripSelfPrefix(name, text string) string {
	if name == "" || text == "" {
		return text
	}

	quoted := regexp.QuoteMeta(name)
	re, err := regexp.Compile(`(?i)^\s*(?:@?` + quoted + `\s*[:：]\s*|@` + quoted + `(?:\s+|$))`)
	if err != nil {
		return text
	}
	return re.ReplaceAllString(text, "")
}
