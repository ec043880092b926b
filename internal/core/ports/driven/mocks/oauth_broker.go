package mocks

import (
	"context"
	"fmt"

	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driven"
)

// MockOAuthBroker is a mock implementation of OAuthBroker for testing
type MockOAuthBroker struct {
	// Token is returned from Exchange
	Token *driven.OAuthToken

	// Identity is returned from VerifyIDToken
	Identity *driven.OAuthIdentity

	// RefreshedToken is returned from AccessTokenFromRefresh
	RefreshedToken *driven.OAuthToken

	// ExchangeErr forces Exchange to fail when set
	ExchangeErr error

	// VerifyErr forces VerifyIDToken to fail when set
	VerifyErr error

	// RefreshErr forces AccessTokenFromRefresh to fail when set
	RefreshErr error

	// LastRefreshToken records the argument of AccessTokenFromRefresh
	LastRefreshToken string
}

// NewMockOAuthBroker creates a new MockOAuthBroker
func NewMockOAuthBroker() *MockOAuthBroker {
	return &MockOAuthBroker{}
}

func (m *MockOAuthBroker) AuthCodeURL(state string, signup bool) string {
	prompt := "select_account"
	if signup {
		prompt = "consent"
	}
	return fmt.Sprintf("https://accounts.example.com/o/oauth2/auth?state=%s&prompt=%s", state, prompt)
}

func (m *MockOAuthBroker) Exchange(ctx context.Context, code string) (*driven.OAuthToken, error) {
	if m.ExchangeErr != nil {
		return nil, m.ExchangeErr
	}
	return m.Token, nil
}

func (m *MockOAuthBroker) VerifyIDToken(ctx context.Context, rawIDToken string) (*driven.OAuthIdentity, error) {
	if m.VerifyErr != nil {
		return nil, m.VerifyErr
	}
	return m.Identity, nil
}

func (m *MockOAuthBroker) AccessTokenFromRefresh(ctx context.Context, refreshToken string) (*driven.OAuthToken, error) {
	m.LastRefreshToken = refreshToken
	if m.RefreshErr != nil {
		return nil, m.RefreshErr
	}
	return m.RefreshedToken, nil
}
