package mocks

import (
	"context"
	"sync"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
)

// MockOAuthStateStore is a mock implementation of OAuthStateStore for testing
type MockOAuthStateStore struct {
	mu     sync.Mutex
	states map[string]*domain.OAuthState
}

// NewMockOAuthStateStore creates a new MockOAuthStateStore
func NewMockOAuthStateStore() *MockOAuthStateStore {
	return &MockOAuthStateStore{
		states: make(map[string]*domain.OAuthState),
	}
}

func (m *MockOAuthStateStore) Save(ctx context.Context, state *domain.OAuthState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *state
	m.states[state.State] = &copied
	return nil
}

func (m *MockOAuthStateStore) GetAndDelete(ctx context.Context, state string) (*domain.OAuthState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.states[state]
	if !ok {
		return nil, nil
	}
	delete(m.states, state)
	return record, nil
}

// Count returns the number of stored states
func (m *MockOAuthStateStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.states)
}
