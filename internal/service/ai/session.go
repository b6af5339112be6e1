package ai

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/adityanegi/portfolio/backend/internal/model/chat"
)

// SessionManager owns one live conversation at a time, tagged with the
// persona mode that produced it. It is an explicit object the caller
// constructs and threads around, so independent managers can hold
// independent conversations.
//
// Requesting a different mode than the active one rebuilds the
// conversation context from scratch: the model forgets every prior turn,
// while the transcript kept here (and the message list a UI holds) still
// shows the full history. That asymmetry is inherited site behavior.
type SessionManager struct {
	svc *Service

	mu         sync.Mutex
	active     bool
	mode       chat.Mode
	history    []*schema.Message
	transcript []chat.Message
}

// NewSessionManager creates a manager with no live session.
func NewSessionManager(svc *Service) *SessionManager {
	return &SessionManager{svc: svc}
}

// Send delivers one user message under the requested mode and returns the
// model's reply tagged with that mode. A completion failure leaves the
// session exactly as it was, so the next send retries the same context.
func (m *SessionManager) Send(ctx context.Context, text string, mode chat.Mode) (chat.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active || m.mode != mode {
		if m.active {
			log.Printf("[ai] persona switch %s -> %s, dropping %d prior turns", m.mode, mode, len(m.history))
		}
		m.active = true
		m.mode = mode
		m.history = nil
	}

	response, err := m.svc.generate(ctx, mode, m.history, text)
	if err != nil {
		return chat.Message{}, err
	}

	now := time.Now().UTC()
	m.history = append(m.history,
		schema.UserMessage(text),
		schema.AssistantMessage(response.Content, nil),
	)
	m.transcript = append(m.transcript,
		chat.Message{ID: uuid.NewString(), Role: chat.RoleUser, Text: text, Timestamp: now},
	)

	reply := chat.Message{
		ID:        uuid.NewString(),
		Role:      chat.RoleModel,
		Text:      response.Content,
		Timestamp: now,
		Mode:      mode,
	}
	m.transcript = append(m.transcript, reply)
	return reply, nil
}

// Mode returns the persona of the live session, or false when none is.
func (m *SessionManager) Mode() (chat.Mode, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode, m.active
}

// Transcript returns a copy of every message exchanged through this
// manager, across persona switches.
func (m *SessionManager) Transcript() []chat.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]chat.Message, len(m.transcript))
	copy(copied, m.transcript)
	return copied
}
