package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/symptexlab/symptex-api/internal/model/chat"
)

// MemoryStore implements Store with guarded maps. It backs tests and
// single-process deployments without a database.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]chat.Session
	messages map[string][]chat.Message
}

// NewMemoryStore bootstraps an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]chat.Session),
		messages: make(map[string][]chat.Message),
	}
}

// ResolveOrCreate returns the session for the id, creating it on first use.
// Check and insert happen under one lock, so a racing second caller observes
// the first caller's session instead of creating a duplicate.
func (s *MemoryStore) ResolveOrCreate(_ context.Context, sessionID, patientID string) (chat.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[sessionID]; ok {
		return existing, nil
	}

	session := chat.Session{
		ID:        sessionID,
		PatientID: patientID,
		CreatedAt: time.Now().UTC(),
	}
	s.sessions[sessionID] = session
	s.messages[sessionID] = make([]chat.Message, 0, 16)
	return session, nil
}

// Append stores a message for the session. Timestamps advance monotonically
// per session even when the wall clock does not, so replay order is total.
func (s *MemoryStore) Append(_ context.Context, sessionID string, role chat.Role, content string) (chat.Message, error) {
	if !role.Valid() {
		return chat.Message{}, ErrInvalidRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return chat.Message{}, ErrSessionNotFound
	}

	ts := time.Now().UTC()
	if prior := s.messages[sessionID]; len(prior) > 0 {
		if last := prior[len(prior)-1].CreatedAt; !ts.After(last) {
			ts = last.Add(time.Nanosecond)
		}
	}

	message := chat.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: ts,
	}
	s.messages[sessionID] = append(s.messages[sessionID], message)
	return message, nil
}

// History returns a copy of the stored messages in append order.
func (s *MemoryStore) History(_ context.Context, sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}

// Reset removes the session and its messages. Unknown ids are a no-op.
func (s *MemoryStore) Reset(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	delete(s.messages, sessionID)
	return nil
}
