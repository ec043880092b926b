package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driven"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driven/mocks"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driving"
)

type oauthTestEnv struct {
	states       *mocks.MockOAuthStateStore
	pending      *mocks.MockPendingSetupStore
	societies    *mocks.MockSocietyStore
	secureTokens *mocks.MockSecureTokenStore
	broker       *mocks.MockOAuthBroker
	svc          driving.OAuthService
}

func newTestOAuthService() *oauthTestEnv {
	env := &oauthTestEnv{
		states:       mocks.NewMockOAuthStateStore(),
		pending:      mocks.NewMockPendingSetupStore(),
		societies:    mocks.NewMockSocietyStore(),
		secureTokens: mocks.NewMockSecureTokenStore(),
		broker:       mocks.NewMockOAuthBroker(),
	}
	env.broker.Token = &driven.OAuthToken{
		AccessToken:  "ya29.access",
		RefreshToken: "1//refresh",
		RawIDToken:   "raw-id-token",
	}
	env.broker.Identity = &driven.OAuthIdentity{
		Subject: "google-uid-1",
		Email:   "admin@gmail.com",
		Name:    "Admin",
	}
	env.svc = NewOAuthService(OAuthServiceConfig{
		OAuthStateStore:    env.states,
		PendingSetupStore:  env.pending,
		SocietyStore:       env.societies,
		SecureTokenStore:   env.secureTokens,
		Broker:             env.broker,
		Auth:               mocks.NewMockAuthAdapter(),
		AllowedEmailDomain: "gmail.com",
	})
	return env
}

func (e *oauthTestEnv) seedState(t *testing.T, signup bool) string {
	t.Helper()
	state := &domain.OAuthState{
		State:     "state-abc",
		AdminUID:  "client-uid",
		AppID:     "app-1",
		IsSignup:  signup,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	if err := e.states.Save(context.Background(), state); err != nil {
		t.Fatalf("seed state: %v", err)
	}
	return state.State
}

func TestBuildAuthURL_StoresStateAndPicksPrompt(t *testing.T) {
	env := newTestOAuthService()

	url, err := env.svc.BuildAuthURL(context.Background(), driving.BuildAuthURLRequest{
		AdminUID: "client-uid",
		AppID:    "app-1",
		IsSignup: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(url, "prompt=consent") {
		t.Errorf("signup URL should force consent, got %s", url)
	}
	if env.states.Count() != 1 {
		t.Errorf("expected 1 stored state, got %d", env.states.Count())
	}

	url, err = env.svc.BuildAuthURL(context.Background(), driving.BuildAuthURLRequest{
		AppID: "app-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(url, "prompt=select_account") {
		t.Errorf("login URL should only pick an account, got %s", url)
	}
}

func TestBuildAuthURL_RequiresAppID(t *testing.T) {
	env := newTestOAuthService()
	_, err := env.svc.BuildAuthURL(context.Background(), driving.BuildAuthURLRequest{})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestHandleCallback_SignupCreatesPendingSetup(t *testing.T) {
	env := newTestOAuthService()
	state := env.seedState(t, true)

	result, err := env.svc.HandleCallback(context.Background(), driving.CallbackRequest{
		Code:  "auth-code",
		State: state,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != driving.StatusPendingSetup {
		t.Errorf("expected pending_setup, got %s", result.Status)
	}
	if result.SetupSessionID == "" {
		t.Error("expected setup session id")
	}
	if result.Token != "" {
		t.Error("no session token should be issued before finalize")
	}

	pending, err := env.pending.Get(context.Background(), result.SetupSessionID)
	if err != nil || pending == nil {
		t.Fatalf("expected pending setup stored, got %v, %v", pending, err)
	}
	if pending.GoogleUID != "google-uid-1" || pending.RefreshToken != "1//refresh" {
		t.Errorf("pending setup missing handshake tokens: %+v", pending)
	}
	if env.societies.Count() != 0 {
		t.Error("signup must not create a society before finalize")
	}
}

func TestHandleCallback_LoginWithoutSocietyFails(t *testing.T) {
	env := newTestOAuthService()
	state := env.seedState(t, false)

	_, err := env.svc.HandleCallback(context.Background(), driving.CallbackRequest{
		Code:  "auth-code",
		State: state,
	})
	if !errors.Is(err, domain.ErrNotRegistered) {
		t.Errorf("expected ErrNotRegistered, got %v", err)
	}
	if env.pending.Count() != 0 {
		t.Error("login must not create pending setups")
	}
}

func TestHandleCallback_ExistingSocietyAuthenticates(t *testing.T) {
	env := newTestOAuthService()
	state := env.seedState(t, false)
	_ = env.societies.Save(context.Background(), &domain.Society{
		ID:          "google-uid-1",
		SocietyName: "Oak Towers",
		AdminEmail:  "admin@gmail.com",
	})

	result, err := env.svc.HandleCallback(context.Background(), driving.CallbackRequest{
		Code:  "auth-code",
		State: state,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != driving.StatusAuthenticated {
		t.Errorf("expected authenticated, got %s", result.Status)
	}
	if result.Token == "" {
		t.Error("expected session token")
	}
	if result.AccessToken != "ya29.access" {
		t.Errorf("expected access token passthrough, got %s", result.AccessToken)
	}

	// Fresh refresh token from the consent screen must be rotated in.
	stored, err := env.secureTokens.Get(context.Background(), "google-uid-1")
	if err != nil {
		t.Fatalf("expected stored refresh token: %v", err)
	}
	if stored.RefreshToken != "1//refresh" {
		t.Errorf("expected rotated refresh token, got %s", stored.RefreshToken)
	}
}

func TestHandleCallback_DisallowedDomainPersistsNothing(t *testing.T) {
	env := newTestOAuthService()
	state := env.seedState(t, true)
	env.broker.Identity = &driven.OAuthIdentity{
		Subject: "google-uid-2",
		Email:   "admin@corp.example.com",
	}

	_, err := env.svc.HandleCallback(context.Background(), driving.CallbackRequest{
		Code:  "auth-code",
		State: state,
	})
	if !errors.Is(err, domain.ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied, got %v", err)
	}
	if env.pending.Count() != 0 || env.societies.Count() != 0 || env.secureTokens.Count() != 0 {
		t.Error("rejected callback must not persist anything")
	}
}

func TestHandleCallback_StateIsSingleUse(t *testing.T) {
	env := newTestOAuthService()
	state := env.seedState(t, true)

	if _, err := env.svc.HandleCallback(context.Background(), driving.CallbackRequest{
		Code:  "auth-code",
		State: state,
	}); err != nil {
		t.Fatalf("first callback failed: %v", err)
	}

	_, err := env.svc.HandleCallback(context.Background(), driving.CallbackRequest{
		Code:  "auth-code",
		State: state,
	})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState on replay, got %v", err)
	}
}

func TestHandleCallback_ExpiredStateRejected(t *testing.T) {
	env := newTestOAuthService()
	_ = env.states.Save(context.Background(), &domain.OAuthState{
		State:     "stale",
		AppID:     "app-1",
		IsSignup:  true,
		CreatedAt: time.Now().Add(-20 * time.Minute),
		ExpiresAt: time.Now().Add(-10 * time.Minute),
	})

	_, err := env.svc.HandleCallback(context.Background(), driving.CallbackRequest{
		Code:  "auth-code",
		State: "stale",
	})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestHandleCallback_ProviderDenied(t *testing.T) {
	env := newTestOAuthService()

	_, err := env.svc.HandleCallback(context.Background(), driving.CallbackRequest{
		Error: "access_denied",
	})
	if !errors.Is(err, domain.ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied, got %v", err)
	}
}

func TestRefreshAccessToken(t *testing.T) {
	env := newTestOAuthService()

	_, err := env.svc.RefreshAccessToken(context.Background(), "google-uid-1")
	if !errors.Is(err, domain.ErrDriveNotLinked) {
		t.Errorf("expected ErrDriveNotLinked without stored token, got %v", err)
	}

	_ = env.societies.Save(context.Background(), &domain.Society{ID: "google-uid-1"})
	_ = env.secureTokens.Save(context.Background(), &domain.SecureToken{
		AdminUID:     "google-uid-1",
		RefreshToken: "1//refresh",
	})
	env.broker.RefreshedToken = &driven.OAuthToken{AccessToken: "ya29.fresh"}

	token, err := env.svc.RefreshAccessToken(context.Background(), "google-uid-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "ya29.fresh" {
		t.Errorf("expected fresh access token, got %s", token)
	}
	if env.broker.LastRefreshToken != "1//refresh" {
		t.Errorf("expected stored refresh token to be used, got %s", env.broker.LastRefreshToken)
	}

	society, _ := env.societies.Get(context.Background(), "google-uid-1")
	if society.DriveAccessToken != "ya29.fresh" {
		t.Error("fresh access token should be cached on the society record")
	}
}
