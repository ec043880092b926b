package driving

import (
	"context"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
)

// AuthService validates session credentials on protected endpoints.
type AuthService interface {
	// ValidateToken parses a session credential and returns the auth context.
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)
}
