package editorcmd

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/seldinet/tui.editor/internal/editor"
)

// ErrSessionNotFound is returned when a message names a session that is not open.
var ErrSessionNotFound = errors.New("editor command: session not found")

// Sessions tracks open editor sessions by id.
type Sessions struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*editor.Session
}

// NewSessions returns an empty session table.
func NewSessions() *Sessions {
	return &Sessions{items: map[uuid.UUID]*editor.Session{}}
}

// Open stores session under a fresh id.
func (s *Sessions) Open(session *editor.Session) uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	s.items[id] = session
	s.mu.Unlock()
	return id
}

// Get returns the session stored under id.
func (s *Sessions) Get(id uuid.UUID) (*editor.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.items[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Close forgets id. It reports whether the session was open.
func (s *Sessions) Close(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[id]
	delete(s.items, id)
	return ok
}

// Len reports the number of open sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
