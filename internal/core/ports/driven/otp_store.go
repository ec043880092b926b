package driven

import (
	"context"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
)

// OTPStore persists short-lived password-reset codes, keyed by email.
type OTPStore interface {
	// Save stores a code record, replacing any previous one for the email.
	Save(ctx context.Context, record *domain.OTPRecord) error

	// Get retrieves the code record for an email.
	// Returns (nil, nil) when no code has been issued or it expired.
	Get(ctx context.Context, email string) (*domain.OTPRecord, error)

	// IncrementAttempts bumps the attempt counter and returns the new value.
	IncrementAttempts(ctx context.Context, email string) (int, error)

	// Delete removes the code record. Missing records are not an error.
	Delete(ctx context.Context, email string) error
}
