package editor

import (
	"errors"
	"fmt"
	"sync"
)

var ErrUnboundKey = errors.New("editor: key not bound")

// Session owns the current state of one editor and serializes commands
// against it.
type Session struct {
	mu     sync.Mutex
	state  *State
	keymap *Keymap
}

// NewSession wraps state. keymap may be nil.
func NewSession(state *State, keymap *Keymap) *Session {
	if keymap == nil {
		keymap = NewKeymap(CurrentPlatform())
	}
	return &Session{state: state, keymap: keymap}
}

// State returns the current snapshot.
func (s *Session) State() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Run executes cmd against the current state and stores the state it
// dispatches.
func (s *Session) Run(cmd Command) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cmd == nil {
		return false
	}
	return cmd(s.state, func(next *State) {
		s.state = next
	})
}

// CanRun reports whether cmd applies to the current state.
func (s *Session) CanRun(cmd Command) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cmd == nil {
		return false
	}
	return cmd(s.state, nil)
}

// HandleKey runs the command bound to key. It returns ErrUnboundKey when
// nothing is bound, and whether the command applied otherwise.
func (s *Session) HandleKey(key string) (bool, error) {
	cmd, ok := s.keymap.Lookup(key)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnboundKey, key)
	}
	return s.Run(cmd), nil
}

// Select moves the selection.
func (s *Session) Select(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.state.WithSelection(from, to)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// Keymap returns the session keymap.
func (s *Session) Keymap() *Keymap { return s.keymap }
