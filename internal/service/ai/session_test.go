package ai_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/adityanegi/portfolio/backend/internal/model/chat"
	portfoliomodel "github.com/adityanegi/portfolio/backend/internal/model/portfolio"
	"github.com/adityanegi/portfolio/backend/internal/service/ai"
)

// fakeChatModel records every message batch it is asked to complete.
type fakeChatModel struct {
	mu    sync.Mutex
	calls [][]*schema.Message
	reply string
	err   error
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, input)
	if f.err != nil {
		return nil, f.err
	}
	reply := f.reply
	if reply == "" {
		reply = "ok"
	}
	return schema.AssistantMessage(reply, nil), nil
}

func (f *fakeChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported by fake")
}

func (f *fakeChatModel) BindTools(_ []*schema.ToolInfo) error {
	return nil
}

func (f *fakeChatModel) lastCall(t *testing.T) []*schema.Message {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		t.Fatal("fake model was never invoked")
	}
	return f.calls[len(f.calls)-1]
}

func newManager(t *testing.T, fake *fakeChatModel) *ai.SessionManager {
	t.Helper()

	prompts, err := ai.NewPromptSet(portfoliomodel.MustSeed())
	if err != nil {
		t.Fatalf("NewPromptSet err: %v", err)
	}
	svc, err := ai.NewService(context.Background(), fake, prompts)
	if err != nil {
		t.Fatalf("NewService err: %v", err)
	}
	return ai.NewSessionManager(svc)
}

func systemOf(t *testing.T, msgs []*schema.Message) string {
	t.Helper()
	if len(msgs) == 0 || msgs[0].Role != schema.System {
		t.Fatalf("expected leading system message, got %+v", msgs)
	}
	return msgs[0].Content
}

func TestSendAppliesModeInstruction(t *testing.T) {
	fake := &fakeChatModel{reply: "hello from dev"}
	mgr := newManager(t, fake)

	reply, err := mgr.Send(context.Background(), "what stack do you use?", chat.ModeDeveloper)
	if err != nil {
		t.Fatalf("Send err: %v", err)
	}
	if reply.Text != "hello from dev" {
		t.Fatalf("unexpected reply: %s", reply.Text)
	}
	if reply.Mode != chat.ModeDeveloper {
		t.Fatalf("reply not tagged with mode: %s", reply.Mode)
	}

	system := systemOf(t, fake.lastCall(t))
	if !strings.Contains(system, "DEVELOPER mode") {
		t.Fatal("system instruction missing developer block")
	}
	if !strings.Contains(system, "Aditya Pratap Singh Negi") {
		t.Fatal("system instruction missing serialized profile data")
	}
}

func TestRepeatSendKeepsHistory(t *testing.T) {
	fake := &fakeChatModel{}
	mgr := newManager(t, fake)
	ctx := context.Background()

	if _, err := mgr.Send(ctx, "first", chat.ModeDeveloper); err != nil {
		t.Fatalf("Send err: %v", err)
	}
	if _, err := mgr.Send(ctx, "second", chat.ModeDeveloper); err != nil {
		t.Fatalf("Send err: %v", err)
	}

	// system + prior user + prior assistant + current user
	msgs := fake.lastCall(t)
	if len(msgs) != 4 {
		t.Fatalf("expected replayed history, got %d messages", len(msgs))
	}
	if msgs[1].Content != "first" {
		t.Fatalf("history turn missing: %+v", msgs[1])
	}
}

func TestModeSwitchDropsHistoryAndSwapsInstruction(t *testing.T) {
	fake := &fakeChatModel{}
	mgr := newManager(t, fake)
	ctx := context.Background()

	if _, err := mgr.Send(ctx, "remember this", chat.ModeDeveloper); err != nil {
		t.Fatalf("Send err: %v", err)
	}
	if _, err := mgr.Send(ctx, "now mentor me", chat.ModeMentor); err != nil {
		t.Fatalf("Send err: %v", err)
	}

	msgs := fake.lastCall(t)
	if len(msgs) != 2 {
		t.Fatalf("expected fresh context after mode switch, got %d messages", len(msgs))
	}
	system := systemOf(t, msgs)
	if !strings.Contains(system, "MENTOR mode") {
		t.Fatal("system instruction not rebuilt for mentor mode")
	}
	for _, msg := range msgs {
		if strings.Contains(msg.Content, "remember this") {
			t.Fatal("prior-turn context reused across persona switch")
		}
	}

	if mode, active := mgr.Mode(); !active || mode != chat.ModeMentor {
		t.Fatalf("manager not tracking new mode: %s active=%v", mode, active)
	}
}

func TestSendFailureKeepsSessionAlive(t *testing.T) {
	fake := &fakeChatModel{}
	mgr := newManager(t, fake)
	ctx := context.Background()

	if _, err := mgr.Send(ctx, "first", chat.ModeDeveloper); err != nil {
		t.Fatalf("Send err: %v", err)
	}

	fake.mu.Lock()
	fake.err = errors.New("completion service down")
	fake.mu.Unlock()

	if _, err := mgr.Send(ctx, "doomed", chat.ModeDeveloper); err == nil {
		t.Fatal("expected error from failing completion")
	}

	fake.mu.Lock()
	fake.err = nil
	fake.mu.Unlock()

	if _, err := mgr.Send(ctx, "retry", chat.ModeDeveloper); err != nil {
		t.Fatalf("Send after failure err: %v", err)
	}

	// The failed turn must not have polluted the replayed history.
	msgs := fake.lastCall(t)
	for _, msg := range msgs {
		if msg.Content == "doomed" {
			t.Fatal("failed turn leaked into history")
		}
	}
	if msgs[1].Content != "first" {
		t.Fatal("pre-failure history lost")
	}
}

func TestTranscriptRecordsBothRoles(t *testing.T) {
	fake := &fakeChatModel{reply: "sure"}
	mgr := newManager(t, fake)

	if _, err := mgr.Send(context.Background(), "hi", chat.ModeDesigner); err != nil {
		t.Fatalf("Send err: %v", err)
	}

	transcript := mgr.Transcript()
	if len(transcript) != 2 {
		t.Fatalf("expected 2 transcript messages, got %d", len(transcript))
	}
	if transcript[0].Role != chat.RoleUser || transcript[1].Role != chat.RoleModel {
		t.Fatalf("unexpected roles: %s / %s", transcript[0].Role, transcript[1].Role)
	}
	if transcript[1].Mode != chat.ModeDesigner {
		t.Fatal("model message missing mode tag")
	}
	if transcript[0].ID == "" || transcript[0].ID == transcript[1].ID {
		t.Fatal("transcript messages need distinct identifiers")
	}
}
