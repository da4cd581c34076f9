// File: service/ai/memoryStore.go
package ai

import (
	"context"
	"sync"

	"concierge/models"
)

type MemoryStateStore struct {
	mu     sync.RWMutex
	states map[string]models.ConversationState
}

// NewMemoryStateStore returns a StateStore for the local chat mode and
// tests, with the same fresh-state-when-absent behavior as the Redis store.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: make(map[string]models.ConversationState)}
}

func (s *MemoryStateStore) Get(_ context.Context, userID string) (*models.ConversationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if state, ok := s.states[userID]; ok {
		copied := state
		return &copied, nil
	}
	return models.NewConversationState(userID), nil
}

func (s *MemoryStateStore) Save(_ context.Context, state *models.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.UserID] = *state
	return nil
}

func (s *MemoryStateStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
	return nil
}
