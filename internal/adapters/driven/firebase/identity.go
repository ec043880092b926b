// Package firebase backs the identity-provider port with the Firebase
// Admin SDK. Admin accounts are keyed by the Google subject id so the
// account uid and the society id are the same string.
package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driven"
)

// Ensure IdentityProvider implements the interface.
var _ driven.IdentityProvider = (*IdentityProvider)(nil)

// IdentityProviderConfig holds Firebase Admin SDK configuration.
type IdentityProviderConfig struct {
	ProjectID string

	// CredentialsFile is the service-account JSON path. Empty falls back to
	// application-default credentials / GOOGLE_APPLICATION_CREDENTIALS.
	CredentialsFile string
}

// IdentityProvider implements driven.IdentityProvider via Firebase Auth.
type IdentityProvider struct {
	client *auth.Client
}

// NewIdentityProvider initialises the Firebase Admin SDK and its auth client.
func NewIdentityProvider(ctx context.Context, cfg IdentityProviderConfig) (*IdentityProvider, error) {
	opts := []option.ClientOption{}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase app.Auth: %w", err)
	}
	return &IdentityProvider{client: client}, nil
}

// EnsureAccount creates the account with uid as the permanent identifier, or
// succeeds silently when it already exists. Safe to call on finalize retries.
func (p *IdentityProvider) EnsureAccount(ctx context.Context, uid, email, displayName string) error {
	params := (&auth.UserToCreate{}).
		UID(uid).
		Email(email).
		EmailVerified(true)
	if displayName != "" {
		params = params.DisplayName(displayName)
	}

	_, err := p.client.CreateUser(ctx, params)
	if err == nil {
		return nil
	}
	if auth.IsUIDAlreadyExists(err) || auth.IsEmailAlreadyExists(err) {
		return nil
	}
	return fmt.Errorf("create account %s: %w", uid, err)
}

// AccountExists reports whether an account exists for the uid.
func (p *IdentityProvider) AccountExists(ctx context.Context, uid string) (bool, error) {
	_, err := p.client.GetUser(ctx, uid)
	if err == nil {
		return true, nil
	}
	if auth.IsUserNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("get account %s: %w", uid, err)
}

// UpdatePassword sets a new password on the account.
func (p *IdentityProvider) UpdatePassword(ctx context.Context, uid, newPassword string) error {
	params := (&auth.UserToUpdate{}).Password(newPassword)
	if _, err := p.client.UpdateUser(ctx, uid, params); err != nil {
		return fmt.Errorf("update password for %s: %w", uid, err)
	}
	return nil
}
