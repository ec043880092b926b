package driven

import (
	"context"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
)

// PendingSetupStore holds provisional OAuth tokens between the callback and
// the finalize step, keyed by a random session id.
//
// Lookup and delete are separate on purpose: finalize deletes the session
// only after the permanent records are written, so a retry after a partial
// failure still finds it.
type PendingSetupStore interface {
	// Save stores a pending setup under its session id.
	Save(ctx context.Context, pending *domain.PendingSetup) error

	// Get retrieves a pending setup by session id.
	// Returns (nil, nil) when the session id is unknown or expired.
	Get(ctx context.Context, sessionID string) (*domain.PendingSetup, error)

	// Delete removes a pending setup. Missing records are not an error.
	Delete(ctx context.Context, sessionID string) error
}
