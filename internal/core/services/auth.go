package services

import (
	"context"
	"time"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driven"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// authService validates session credentials. Credentials are stateless: the
// signature and expiry are the only checks, no session store lookup.
type authService struct {
	auth driven.AuthAdapter
}

// NewAuthService creates a new auth service.
func NewAuthService(auth driven.AuthAdapter) driving.AuthService {
	return &authService{auth: auth}
}

// ValidateToken parses a session credential and returns the auth context.
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	claims, err := s.auth.ParseToken(token)
	if err != nil {
		return nil, err
	}
	if claims.ExpiresAt > 0 && time.Now().Unix() >= claims.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}
	return &domain.AuthContext{
		AdminUID: claims.AdminUID,
		Email:    claims.Email,
		AppID:    claims.AppID,
	}, nil
}
