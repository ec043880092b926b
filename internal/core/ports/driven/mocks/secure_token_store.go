package mocks

import (
	"context"
	"sync"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
)

// MockSecureTokenStore is a mock implementation of SecureTokenStore for testing
type MockSecureTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]*domain.SecureToken

	// SaveErr forces Save to fail when set
	SaveErr error
}

// NewMockSecureTokenStore creates a new MockSecureTokenStore
func NewMockSecureTokenStore() *MockSecureTokenStore {
	return &MockSecureTokenStore{
		tokens: make(map[string]*domain.SecureToken),
	}
}

func (m *MockSecureTokenStore) Save(ctx context.Context, token *domain.SecureToken) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *token
	m.tokens[token.AdminUID] = &copied
	return nil
}

func (m *MockSecureTokenStore) Get(ctx context.Context, adminUID string) (*domain.SecureToken, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	token, ok := m.tokens[adminUID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *token
	return &copied, nil
}

func (m *MockSecureTokenStore) Delete(ctx context.Context, adminUID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, adminUID)
	return nil
}

// Count returns the number of stored tokens
func (m *MockSecureTokenStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tokens)
}
