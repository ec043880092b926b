package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
)

// MockSocietyStore is a mock implementation of SocietyStore for testing
type MockSocietyStore struct {
	mu        sync.RWMutex
	societies map[string]*domain.Society

	// SaveErr forces Save to fail when set
	SaveErr error
}

// NewMockSocietyStore creates a new MockSocietyStore
func NewMockSocietyStore() *MockSocietyStore {
	return &MockSocietyStore{
		societies: make(map[string]*domain.Society),
	}
}

func (m *MockSocietyStore) Save(ctx context.Context, society *domain.Society) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *society
	m.societies[society.ID] = &copied
	return nil
}

func (m *MockSocietyStore) Get(ctx context.Context, adminUID string) (*domain.Society, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	society, ok := m.societies[adminUID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *society
	return &copied, nil
}

func (m *MockSocietyStore) GetByEmail(ctx context.Context, email string) (*domain.Society, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, society := range m.societies {
		if strings.EqualFold(society.AdminEmail, email) {
			copied := *society
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockSocietyStore) UpdateAccessToken(ctx context.Context, adminUID, accessToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	society, ok := m.societies[adminUID]
	if !ok {
		return domain.ErrNotFound
	}
	society.DriveAccessToken = accessToken
	return nil
}

// Count returns the number of stored societies
func (m *MockSocietyStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.societies)
}
