package mocks

import (
	"context"
	"sync"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
)

// MockPendingSetupStore is a mock implementation of PendingSetupStore for testing
type MockPendingSetupStore struct {
	mu      sync.Mutex
	pending map[string]*domain.PendingSetup
}

// NewMockPendingSetupStore creates a new MockPendingSetupStore
func NewMockPendingSetupStore() *MockPendingSetupStore {
	return &MockPendingSetupStore{
		pending: make(map[string]*domain.PendingSetup),
	}
}

func (m *MockPendingSetupStore) Save(ctx context.Context, pending *domain.PendingSetup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *pending
	m.pending[pending.SessionID] = &copied
	return nil
}

func (m *MockPendingSetupStore) Get(ctx context.Context, sessionID string) (*domain.PendingSetup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.pending[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (m *MockPendingSetupStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, sessionID)
	return nil
}

// Count returns the number of stored pending setups
func (m *MockPendingSetupStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
