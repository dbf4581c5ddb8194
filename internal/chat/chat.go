// Package chat holds the assistant conversation: a linear, append-only
// message history synchronized with the per-user chat endpoints.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/models"
)

const welcomeText = `Hello! I'm your assistant. I can help you manage your tasks. Try "Add a task: Buy groceries" or "Show my tasks".`

// Store holds one user's conversation. Sending is the single optimistic
// update in the application: the user's message is appended before the
// service confirms anything.
type Store struct {
	client *api.Client
	userID string

	mu             sync.RWMutex
	messages       []models.ChatMessage
	conversationID string
	sending        bool
	lastErr        string
}

// NewStore creates a conversation store for userID.
func NewStore(client *api.Client, userID string) *Store {
	return &Store{client: client, userID: userID}
}

// Messages returns a copy of the conversation in arrival order.
func (s *Store) Messages() []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Sending reports whether a send is in flight; the input stays disabled
// while true.
func (s *Store) Sending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sending
}

// LastError returns the most recent chat failure, or "".
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Dismiss clears the error slot.
func (s *Store) Dismiss() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

// LoadHistory fetches the stored conversation once at startup. Failure is
// not an error here: a missing session just means a fresh conversation, so a
// local welcome message is synthesized instead.
func (s *Store) LoadHistory(ctx context.Context) {
	history, err := s.client.GetChatHistory(ctx, s.userID)
	if err != nil {
		logger.Debug("no chat history, starting fresh", zap.Error(err))
		s.mu.Lock()
		s.messages = []models.ChatMessage{{
			ID:        uuid.NewString(),
			Role:      models.RoleAssistant,
			Content:   welcomeText,
			Timestamp: time.Now(),
		}}
		s.mu.Unlock()
		return
	}

	messages := make([]models.ChatMessage, 0, len(history.Messages))
	for _, m := range history.Messages {
		messages = append(messages, models.ChatMessage{
			ID:        m.ID,
			Role:      models.Role(m.Role),
			Content:   m.Content,
			Timestamp: api.ParseTime(m.Timestamp),
		})
	}

	s.mu.Lock()
	s.messages = messages
	s.conversationID = history.SessionID
	s.mu.Unlock()
}

// Send appends the user's message immediately, then awaits the assistant's
// reply. On failure the error text is surfaced as a synthesized assistant
// message so the conversation never silently drops a turn.
func (s *Store) Send(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return nil
	}
	s.sending = true
	s.lastErr = ""
	conversationID := s.conversationID
	s.messages = append(s.messages, models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      models.RoleUser,
		Content:   content,
		Timestamp: time.Now(),
	})
	s.mu.Unlock()

	resp, err := s.client.SendChat(ctx, s.userID, api.ChatRequest{
		Message:        content,
		ConversationID: conversationID,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sending = false

	if err != nil {
		logger.Error("chat send failed", err)
		s.lastErr = err.Error()
		s.messages = append(s.messages, models.ChatMessage{
			ID:        uuid.NewString(),
			Role:      models.RoleAssistant,
			Content:   "Sorry, I encountered an error: " + err.Error(),
			Timestamp: time.Now(),
		})
		return err
	}

	s.conversationID = resp.ConversationID
	s.messages = append(s.messages, models.ChatMessage{
		ID:        resp.MessageID,
		Role:      models.RoleAssistant,
		Content:   resp.Response,
		Timestamp: time.Now(),
	})
	return nil
}

// Clear deletes the remote conversation, then empties the local history only
// on success.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.ClearChat(ctx, s.userID); err != nil {
		logger.Error("chat clear failed", err)
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.messages = nil
	s.conversationID = ""
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}
