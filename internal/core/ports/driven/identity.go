package driven

import "context"

// IdentityProvider manages admin accounts at the external identity service.
type IdentityProvider interface {
	// EnsureAccount creates the account with uid as the permanent identifier,
	// or succeeds silently when it already exists (idempotent).
	EnsureAccount(ctx context.Context, uid, email, displayName string) error

	// AccountExists reports whether an account exists for the uid.
	AccountExists(ctx context.Context, uid string) (bool, error)

	// UpdatePassword sets a new password on the account.
	UpdatePassword(ctx context.Context, uid, newPassword string) error
}
