package mocks

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
)

// MockAuthAdapter is a mock implementation of AuthAdapter for testing.
// Tokens are unsigned JSON claims with a fixed prefix and password hashes
// are a fixed prefix too. Enough to verify flows without real crypto.
type MockAuthAdapter struct{}

// NewMockAuthAdapter creates a new MockAuthAdapter
func NewMockAuthAdapter() *MockAuthAdapter {
	return &MockAuthAdapter{}
}

func (m *MockAuthAdapter) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (m *MockAuthAdapter) VerifyPassword(password, hash string) bool {
	return hash == "hashed:"+password
}

func (m *MockAuthAdapter) GenerateToken(claims *domain.TokenClaims) (string, error) {
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	return "token:" + string(payload), nil
}

func (m *MockAuthAdapter) ParseToken(token string) (*domain.TokenClaims, error) {
	payload, ok := strings.CutPrefix(token, "token:")
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	var claims domain.TokenClaims
	if err := json.Unmarshal([]byte(payload), &claims); err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if claims.ExpiresAt > 0 && time.Now().Unix() >= claims.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}
	return &claims, nil
}
