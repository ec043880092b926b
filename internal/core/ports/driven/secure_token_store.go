package driven

import (
	"context"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
)

// SecureTokenStore persists long-lived refresh tokens, keyed by admin UID.
// Implementations must encrypt the refresh token at rest.
type SecureTokenStore interface {
	// Save creates or overwrites the token record for an admin.
	Save(ctx context.Context, token *domain.SecureToken) error

	// Get retrieves the token record for an admin.
	// Returns domain.ErrNotFound if no token is stored.
	Get(ctx context.Context, adminUID string) (*domain.SecureToken, error)

	// Delete removes the token record. Missing records are not an error.
	Delete(ctx context.Context, adminUID string) error
}
