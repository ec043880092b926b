package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driven"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driving"
)

// Ensure oauthService implements OAuthService
var _ driving.OAuthService = (*oauthService)(nil)

// stateTTL bounds how long an OAuth round trip may take.
const stateTTL = 10 * time.Minute

// sessionTokenTTL is the lifetime of a minted session credential.
const sessionTokenTTL = 24 * time.Hour

// OAuthServiceConfig holds configuration for the OAuth service.
type OAuthServiceConfig struct {
	// OAuthStateStore manages single-use OAuth flow state.
	OAuthStateStore driven.OAuthStateStore

	// PendingSetupStore holds provisional signup tokens until finalize.
	PendingSetupStore driven.PendingSetupStore

	// SocietyStore persists society records.
	SocietyStore driven.SocietyStore

	// SecureTokenStore persists refresh tokens.
	SecureTokenStore driven.SecureTokenStore

	// Broker wraps the Google OAuth endpoints.
	Broker driven.OAuthBroker

	// Auth mints session credentials.
	Auth driven.AuthAdapter

	// AllowedEmailDomain restricts sign-in to one email domain.
	// Example: "gmail.com". Empty disables the check.
	AllowedEmailDomain string

	Logger *slog.Logger
}

// oauthService implements the OAuthService interface.
type oauthService struct {
	states        driven.OAuthStateStore
	pending       driven.PendingSetupStore
	societies     driven.SocietyStore
	secureTokens  driven.SecureTokenStore
	broker        driven.OAuthBroker
	auth          driven.AuthAdapter
	allowedDomain string
	logger        *slog.Logger
}

// NewOAuthService creates a new OAuth service.
func NewOAuthService(cfg OAuthServiceConfig) driving.OAuthService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &oauthService{
		states:        cfg.OAuthStateStore,
		pending:       cfg.PendingSetupStore,
		societies:     cfg.SocietyStore,
		secureTokens:  cfg.SecureTokenStore,
		broker:        cfg.Broker,
		auth:          cfg.Auth,
		allowedDomain: strings.ToLower(cfg.AllowedEmailDomain),
		logger:        logger,
	}
}

// BuildAuthURL starts an OAuth flow.
// It stores opaque single-use state and returns the consent-screen URL.
func (s *oauthService) BuildAuthURL(ctx context.Context, req driving.BuildAuthURLRequest) (string, error) {
	if req.AppID == "" {
		return "", fmt.Errorf("%w: appId is required", domain.ErrInvalidInput)
	}

	// Generate state (CSRF protection). The caller's identity travels
	// server-side with the state, never inside the redirect URL.
	state, err := generateRandomString(32)
	if err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}

	now := time.Now()
	oauthState := &domain.OAuthState{
		State:     state,
		AdminUID:  req.AdminUID,
		AppID:     req.AppID,
		IsSignup:  req.IsSignup,
		CreatedAt: now,
		ExpiresAt: now.Add(stateTTL),
	}
	if err := s.states.Save(ctx, oauthState); err != nil {
		return "", fmt.Errorf("save oauth state: %w", err)
	}

	return s.broker.AuthCodeURL(state, req.IsSignup), nil
}

// HandleCallback completes the OAuth round trip.
// It validates state, exchanges the code, verifies the ID token, applies the
// email-domain allowlist and branches on signup vs. login.
func (s *oauthService) HandleCallback(ctx context.Context, req driving.CallbackRequest) (*driving.CallbackResult, error) {
	// Check for error from provider
	if req.Error != "" {
		if req.Error == "access_denied" {
			return nil, fmt.Errorf("%w: user declined consent", domain.ErrAccessDenied)
		}
		return nil, fmt.Errorf("oauth provider error %q: %s", req.Error, req.ErrorDescription)
	}
	if req.Code == "" || req.State == "" {
		return nil, fmt.Errorf("%w: code and state are required", domain.ErrInvalidInput)
	}

	// Validate and consume state (single-use)
	state, err := s.states.GetAndDelete(ctx, req.State)
	if err != nil {
		return nil, fmt.Errorf("get oauth state: %w", err)
	}
	if state == nil || state.IsExpired() {
		return nil, domain.ErrInvalidState
	}

	// Exchange code for tokens
	token, err := s.broker.Exchange(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	// Verify the ID token rather than trusting the redirect parameters
	identity, err := s.broker.VerifyIDToken(ctx, token.RawIDToken)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}

	// Allowlist check happens before anything is persisted
	if !s.emailAllowed(identity.Email) {
		return nil, fmt.Errorf("%w: email domain not allowed", domain.ErrAccessDenied)
	}

	society, err := s.societies.Get(ctx, identity.Subject)
	switch {
	case err == nil:
		return s.completeLogin(ctx, state, identity, token, society)
	case errors.Is(err, domain.ErrNotFound):
		if !state.IsSignup {
			return nil, fmt.Errorf("%w: no society for account", domain.ErrNotRegistered)
		}
		return s.startPendingSetup(ctx, state, identity, token)
	default:
		return nil, fmt.Errorf("get society: %w", err)
	}
}

// completeLogin handles the existing-admin branch of the callback.
func (s *oauthService) completeLogin(ctx context.Context, state *domain.OAuthState, identity *driven.OAuthIdentity, token *driven.OAuthToken, society *domain.Society) (*driving.CallbackResult, error) {
	// Google only returns a refresh token on consent; rotate the stored one
	// when it does.
	if token.RefreshToken != "" {
		err := s.secureTokens.Save(ctx, &domain.SecureToken{
			AdminUID:     identity.Subject,
			RefreshToken: token.RefreshToken,
			Email:        identity.Email,
			UpdatedAt:    time.Now(),
		})
		if err != nil {
			return nil, fmt.Errorf("save refresh token: %w", err)
		}
	}

	if err := s.societies.UpdateAccessToken(ctx, society.ID, token.AccessToken); err != nil {
		s.logger.Warn("failed to cache access token on society",
			"admin_uid", society.ID, "error", err)
	}

	sessionToken, err := s.mintSessionToken(identity.Subject, identity.Email, state.AppID)
	if err != nil {
		return nil, err
	}

	return &driving.CallbackResult{
		Status:      driving.StatusAuthenticated,
		Token:       sessionToken,
		AccessToken: token.AccessToken,
		AdminUID:    identity.Subject,
		Email:       identity.Email,
	}, nil
}

// startPendingSetup handles the new-signup branch of the callback. No account
// or society exists yet; the tokens park under a session id until finalize.
func (s *oauthService) startPendingSetup(ctx context.Context, state *domain.OAuthState, identity *driven.OAuthIdentity, token *driven.OAuthToken) (*driving.CallbackResult, error) {
	sessionID, err := generateSetupSessionID()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	pending := &domain.PendingSetup{
		SessionID:    sessionID,
		Email:        identity.Email,
		GoogleUID:    identity.Subject,
		RefreshToken: token.RefreshToken,
		AccessToken:  token.AccessToken,
		AppID:        state.AppID,
		CreatedAt:    time.Now(),
	}
	if err := s.pending.Save(ctx, pending); err != nil {
		return nil, fmt.Errorf("save pending setup: %w", err)
	}

	s.logger.Info("pending setup created",
		"session_id", sessionID, "email", identity.Email, "app_id", state.AppID)

	return &driving.CallbackResult{
		Status:         driving.StatusPendingSetup,
		SetupSessionID: sessionID,
		AdminUID:       identity.Subject,
		Email:          identity.Email,
	}, nil
}

// RefreshAccessToken mints a fresh Drive access token from the stored
// refresh token and caches it on the society record.
func (s *oauthService) RefreshAccessToken(ctx context.Context, adminUID string) (string, error) {
	if adminUID == "" {
		return "", fmt.Errorf("%w: adminUID is required", domain.ErrInvalidInput)
	}

	secureToken, err := s.secureTokens.Get(ctx, adminUID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrDriveNotLinked
		}
		return "", fmt.Errorf("get refresh token: %w", err)
	}

	token, err := s.broker.AccessTokenFromRefresh(ctx, secureToken.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("refresh access token: %w", err)
	}

	if err := s.societies.UpdateAccessToken(ctx, adminUID, token.AccessToken); err != nil {
		s.logger.Warn("failed to cache access token on society",
			"admin_uid", adminUID, "error", err)
	}

	return token.AccessToken, nil
}

func (s *oauthService) emailAllowed(email string) bool {
	if s.allowedDomain == "" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(email), "@"+s.allowedDomain)
}

func (s *oauthService) mintSessionToken(adminUID, email, appID string) (string, error) {
	now := time.Now()
	token, err := s.auth.GenerateToken(&domain.TokenClaims{
		AdminUID:  adminUID,
		Email:     email,
		AppID:     appID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(sessionTokenTTL).Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return token, nil
}

// generateRandomString generates a hex-encoded random string of n bytes.
func generateRandomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// generateSetupSessionID generates a prefixed session id for pending setups.
func generateSetupSessionID() (string, error) {
	suffix, err := generateRandomString(16)
	if err != nil {
		return "", err
	}
	return "setup_" + suffix, nil
}
