package conversation

import (
	"errors"
	"fmt"
	"sync"

	"niv-scholar-be/pkg/llm"
)

var ErrInvalidTurn = errors.New("invalid conversation turn")

// Store is the ordered turn log of one session. It only holds user and
// assistant turns; the persona is never stored.
type Store struct {
	mu    sync.RWMutex
	turns []llm.Message
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Append(turn llm.Message) error {
	if !turn.Valid() {
		return fmt.Errorf("%w: role and content are required", ErrInvalidTurn)
	}
	if turn.Role != llm.RoleUser && turn.Role != llm.RoleAssistant {
		return fmt.Errorf("%w: role %q cannot be stored", ErrInvalidTurn, turn.Role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turn)
	return nil
}

// Turns returns a copy in append order.
func (s *Store) Turns() []llm.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]llm.Message, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

// Reset drops every turn.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
}
