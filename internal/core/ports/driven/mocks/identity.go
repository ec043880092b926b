package mocks

import (
	"context"
	"sync"
)

type mockAccount struct {
	email       string
	displayName string
	password    string
}

// MockIdentityProvider is a mock implementation of IdentityProvider for testing
type MockIdentityProvider struct {
	mu       sync.Mutex
	accounts map[string]*mockAccount

	// EnsureErr forces EnsureAccount to fail when set
	EnsureErr error

	// EnsureCalls counts EnsureAccount invocations
	EnsureCalls int
}

// NewMockIdentityProvider creates a new MockIdentityProvider
func NewMockIdentityProvider() *MockIdentityProvider {
	return &MockIdentityProvider{
		accounts: make(map[string]*mockAccount),
	}
}

func (m *MockIdentityProvider) EnsureAccount(ctx context.Context, uid, email, displayName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnsureCalls++
	if m.EnsureErr != nil {
		return m.EnsureErr
	}
	if _, ok := m.accounts[uid]; ok {
		return nil
	}
	m.accounts[uid] = &mockAccount{email: email, displayName: displayName}
	return nil
}

func (m *MockIdentityProvider) AccountExists(ctx context.Context, uid string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.accounts[uid]
	return ok, nil
}

func (m *MockIdentityProvider) UpdatePassword(ctx context.Context, uid, newPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[uid]
	if !ok {
		m.accounts[uid] = &mockAccount{password: newPassword}
		return nil
	}
	account.password = newPassword
	return nil
}

// Password returns the stored password for a uid
func (m *MockIdentityProvider) Password(uid string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if account, ok := m.accounts[uid]; ok {
		return account.password
	}
	return ""
}

// AccountCount returns the number of accounts
func (m *MockIdentityProvider) AccountCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.accounts)
}
