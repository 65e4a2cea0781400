package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
)

// fakeCompleter records every request and answers from a scripted list.
type fakeCompleter struct {
	requests []openai.ChatCompletionRequest
	replies  []string
	errs     []error
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	i := len(f.requests)
	f.requests = append(f.requests, req)

	if i < len(f.errs) && f.errs[i] != nil {
		return openai.ChatCompletionResponse{}, f.errs[i]
	}

	var resp openai.ChatCompletionResponse
	if i < len(f.replies) {
		resp.Choices = []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: f.replies[i]}},
		}
	}
	return resp, nil
}

func testOrchestrator(f *fakeCompleter) *Orchestrator {
	return NewWithClient(f, Config{Model: "test-model"})
}

func TestStripSelfPrefix(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"Haru", "Haru: hello there", "hello there"},
		{"Haru", "@Haru hello", "hello"},
		{"Haru", "Hello Haru", "Hello Haru"},
		{"Haru", "HARU: yo", "yo"},
		{"Haru", "@Haru: hi", "hi"},
		{"Haru", "Haru：hi", "hi"},
		{"Haru", "say hi to @Haru later", "say hi to @Haru later"},
		{"Haru", "", ""},
	}

	for _, c := range cases {
		if got := stripSelfPrefix(c.name, c.text); got != c.want {
			t.Fatalf("stripSelfPrefix(%q, %q) = %q, want %q", c.name, c.text, got, c.want)
		}
	}
}

func TestGenerateReply_EmptyChoicesYieldsPlaceholder(t *testing.T) {
	f := &fakeCompleter{}
	o := testOrchestrator(f)

	got, err := o.GenerateReply(context.Background(), Persona{Name: "Haru", SystemPrompt: "be kind"}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != EmptyReplyPlaceholder {
		t.Fatalf("expected placeholder %q, got %q", EmptyReplyPlaceholder, got)
	}
}

func TestGenerateReply_EndpointFailure(t *testing.T) {
	f := &fakeCompleter{errs: []error{errors.New("upstream 500")}}
	o := testOrchestrator(f)

	_, err := o.GenerateReply(context.Background(), Persona{Name: "Haru", SystemPrompt: "be kind"}, nil, nil)
	if err == nil {
		t.Fatal("expected error from failing endpoint")
	}
	if !strings.Contains(err.Error(), "upstream 500") {
		t.Fatalf("expected wrapped endpoint error, got %v", err)
	}
}

func TestGenerateReply_PromptShape(t *testing.T) {
	f := &fakeCompleter{replies: []string{"hello"}}
	o := testOrchestrator(f)

	history := []Turn{{Actor: UserActor, Content: "hi"}}
	_, err := o.GenerateReply(context.Background(), Persona{Name: "Haru", SystemPrompt: "be kind"}, []string{"Yuki"}, history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := f.requests[0]
	if req.Model != "test-model" {
		t.Fatalf("expected model test-model, got %q", req.Model)
	}
	if len(req.Messages) != 2 {
		t.Fatalf("expected system + 1 history message, got %d", len(req.Messages))
	}
	system := req.Messages[0]
	if system.Role != openai.ChatMessageRoleSystem {
		t.Fatalf("expected leading system message, got role %q", system.Role)
	}
	if !strings.Contains(system.Content, "You are Haru.") || !strings.Contains(system.Content, "be kind") {
		t.Fatalf("system instruction missing persona identity: %q", system.Content)
	}
	if !strings.Contains(system.Content, "Yuki") {
		t.Fatalf("system instruction missing other participants: %q", system.Content)
	}
	if !strings.Contains(system.Content, "@Name") {
		t.Fatalf("system instruction missing mention rule: %q", system.Content)
	}
	if got := req.Messages[1].Content; got != "User: hi" {
		t.Fatalf("expected actor-labelled history turn, got %q", got)
	}
}

func TestGenerateReply_StripsLeakedSelfPrefix(t *testing.T) {
	f := &fakeCompleter{replies: []string{"Haru: hello there"}}
	o := testOrchestrator(f)

	got, err := o.GenerateReply(context.Background(), Persona{Name: "Haru", SystemPrompt: "x"}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello there" {
		t.Fatalf("expected cleaned reply, got %q", got)
	}
}

func TestRunRound_LaterPersonasSeeEarlierReplies(t *testing.T) {
	f := &fakeCompleter{replies: []string{"reply-a", "reply-b"}}
	o := testOrchestrator(f)

	personas := []Persona{
		{ID: 1, Name: "A", SystemPrompt: "a"},
		{ID: 2, Name: "B", SystemPrompt: "b"},
	}
	history := []Turn{{Actor: UserActor, Content: "hi"}}

	results := o.RunRound(context.Background(), personas, history, StatelessSink{})
	if len(results) != 2 {
		t.Fatalf("expected 2 round turns, got %d", len(results))
	}
	if !results[0].Success || results[0].Reply.Content != "reply-a" {
		t.Fatalf("unexpected first turn: %+v", results[0])
	}
	if !results[1].Success || results[1].Reply.Content != "reply-b" {
		t.Fatalf("unexpected second turn: %+v", results[1])
	}

	// A's request saw only the user turn
	reqA := f.requests[0]
	if len(reqA.Messages) != 2 {
		t.Fatalf("expected A to see 1 history turn, got %d messages", len(reqA.Messages))
	}

	// B's request includes A's reply from this round
	reqB := f.requests[1]
	found := false
	for _, m := range reqB.Messages {
		if m.Content == "A: reply-a" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected B's context to include A's reply, got %+v", reqB.Messages)
	}

	// Input history is threaded immutably, never appended in place
	if len(history) != 1 || history[0].Content != "hi" {
		t.Fatalf("input history mutated: %+v", history)
	}
}

func TestRunRound_FailureContinuesRound(t *testing.T) {
	f := &fakeCompleter{
		replies: []string{"", "reply-b"},
		errs:    []error{errors.New("boom"), nil},
	}
	o := testOrchestrator(f)

	personas := []Persona{
		{ID: 1, Name: "A", SystemPrompt: "a"},
		{ID: 2, Name: "B", SystemPrompt: "b"},
	}

	results := o.RunRound(context.Background(), personas, []Turn{{Actor: UserActor, Content: "hi"}}, StatelessSink{})
	if results[0].Success || results[0].Error == "" {
		t.Fatalf("expected first turn to fail, got %+v", results[0])
	}
	if !results[1].Success {
		t.Fatalf("expected round to continue past the failure, got %+v", results[1])
	}

	// B must not see a reply A never produced
	for _, m := range f.requests[1].Messages {
		if strings.Contains(m.Content, "A:") {
			t.Fatalf("failed persona leaked into later context: %q", m.Content)
		}
	}
}
