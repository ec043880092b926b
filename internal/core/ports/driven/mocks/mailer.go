package mocks

import (
	"context"
	"sync"
)

// SentMail records one delivered message
type SentMail struct {
	To   string
	Code string
}

// MockMailer is a mock implementation of Mailer for testing
type MockMailer struct {
	mu   sync.Mutex
	sent []SentMail

	// SendErr forces SendOTP to fail when set
	SendErr error
}

// NewMockMailer creates a new MockMailer
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) SendOTP(ctx context.Context, toEmail, code string) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentMail{To: toEmail, Code: code})
	return nil
}

// Sent returns all delivered messages
func (m *MockMailer) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMail(nil), m.sent...)
}
