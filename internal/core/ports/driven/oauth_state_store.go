package driven

import (
	"context"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
)

// OAuthStateStore manages single-use OAuth flow state.
type OAuthStateStore interface {
	// Save stores a new state record with its expiry.
	Save(ctx context.Context, state *domain.OAuthState) error

	// GetAndDelete atomically retrieves and deletes the state.
	// Returns (nil, nil) when the state is unknown or expired.
	GetAndDelete(ctx context.Context, state string) (*domain.OAuthState, error)
}
