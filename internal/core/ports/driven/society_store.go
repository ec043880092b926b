package driven

import (
	"context"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
)

// SocietyStore persists admin-scoped society records.
type SocietyStore interface {
	// Save stores a new society or overwrites an existing one (last-write-wins).
	Save(ctx context.Context, society *domain.Society) error

	// Get retrieves a society by admin UID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, adminUID string) (*domain.Society, error)

	// GetByEmail retrieves a society by admin email.
	// Returns (nil, nil) when no society exists for the email.
	GetByEmail(ctx context.Context, email string) (*domain.Society, error)

	// UpdateAccessToken overwrites the short-lived Drive access token.
	UpdateAccessToken(ctx context.Context, adminUID, accessToken string) error
}
