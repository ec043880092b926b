package mocks

import (
	"context"
	"sync"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
)

// MockOTPStore is a mock implementation of OTPStore for testing
type MockOTPStore struct {
	mu      sync.Mutex
	records map[string]*domain.OTPRecord
}

// NewMockOTPStore creates a new MockOTPStore
func NewMockOTPStore() *MockOTPStore {
	return &MockOTPStore{
		records: make(map[string]*domain.OTPRecord),
	}
}

func (m *MockOTPStore) Save(ctx context.Context, record *domain.OTPRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *record
	m.records[record.Email] = &copied
	return nil
}

func (m *MockOTPStore) Get(ctx context.Context, email string) (*domain.OTPRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[email]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (m *MockOTPStore) IncrementAttempts(ctx context.Context, email string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[email]
	if !ok {
		return 0, domain.ErrNotFound
	}
	record.Attempts++
	return record.Attempts, nil
}

func (m *MockOTPStore) Delete(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, email)
	return nil
}

// Count returns the number of stored codes
func (m *MockOTPStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
