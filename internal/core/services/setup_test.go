package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driven/mocks"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driving"
)

type setupTestEnv struct {
	pending      *mocks.MockPendingSetupStore
	societies    *mocks.MockSocietyStore
	secureTokens *mocks.MockSecureTokenStore
	identity     *mocks.MockIdentityProvider
	driveFactory *mocks.MockDriveClientFactory
	svc          driving.SetupService
}

func newTestSetupService() *setupTestEnv {
	env := &setupTestEnv{
		pending:      mocks.NewMockPendingSetupStore(),
		societies:    mocks.NewMockSocietyStore(),
		secureTokens: mocks.NewMockSecureTokenStore(),
		identity:     mocks.NewMockIdentityProvider(),
		driveFactory: mocks.NewMockDriveClientFactory(),
	}
	env.svc = NewSetupService(SetupServiceConfig{
		PendingSetupStore: env.pending,
		SocietyStore:      env.societies,
		SecureTokenStore:  env.secureTokens,
		Identity:          env.identity,
		DriveFactory:      env.driveFactory,
		Auth:              mocks.NewMockAuthAdapter(),
	})
	return env
}

func (e *setupTestEnv) seedPending(t *testing.T) {
	t.Helper()
	err := e.pending.Save(context.Background(), &domain.PendingSetup{
		SessionID:    "setup_abc",
		Email:        "admin@gmail.com",
		GoogleUID:    "google-uid-1",
		RefreshToken: "1//refresh",
		AccessToken:  "ya29.access",
		AppID:        "app-1",
		CreatedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("seed pending: %v", err)
	}
}

func TestFinalize_HappyPath(t *testing.T) {
	env := newTestSetupService()
	env.seedPending(t)

	resp, err := env.svc.Finalize(context.Background(), driving.FinalizeRequest{
		SetupSessionID: "setup_abc",
		FormData: driving.FinalizeFormData{
			SocietyName: "Oak Towers",
			AdminName:   "Asha",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success || resp.Token == "" {
		t.Errorf("expected success with session token, got %+v", resp)
	}
	if resp.AdminUID != "google-uid-1" {
		t.Errorf("admin uid must be the provider subject, got %s", resp.AdminUID)
	}
	if resp.DriveFolderID == "" {
		t.Error("expected root folder id")
	}

	if env.identity.AccountCount() != 1 {
		t.Errorf("expected 1 account, got %d", env.identity.AccountCount())
	}

	society, err := env.societies.Get(context.Background(), "google-uid-1")
	if err != nil {
		t.Fatalf("expected society record: %v", err)
	}
	if society.SocietyName != "Oak Towers" || !society.IsDriveLinked {
		t.Errorf("society record incomplete: %+v", society)
	}
	if society.AppID != "app-1" {
		t.Errorf("appId should fall back to the handshake value, got %s", society.AppID)
	}

	token, err := env.secureTokens.Get(context.Background(), "google-uid-1")
	if err != nil {
		t.Fatalf("expected stored refresh token: %v", err)
	}
	if token.RefreshToken != "1//refresh" {
		t.Errorf("wrong refresh token stored: %s", token.RefreshToken)
	}

	if env.pending.Count() != 0 {
		t.Error("pending setup must be deleted after finalize")
	}
	if env.driveFactory.LastAccessToken != "ya29.access" {
		t.Error("root folder must be created with the handshake access token")
	}
}

func TestFinalize_AcceptsFlatFieldsAsFallback(t *testing.T) {
	env := newTestSetupService()
	env.seedPending(t)

	resp, err := env.svc.Finalize(context.Background(), driving.FinalizeRequest{
		SetupSessionID: "setup_abc",
		SocietyName:    "Maple Court",
		AdminName:      "Asha",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success {
		t.Errorf("expected success, got %+v", resp)
	}

	society, err := env.societies.Get(context.Background(), "google-uid-1")
	if err != nil {
		t.Fatalf("expected society record: %v", err)
	}
	if society.SocietyName != "Maple Court" || society.AdminName != "Asha" {
		t.Errorf("flat fields must still be honored: %+v", society)
	}
}

func TestFinalize_NestedFormFieldsWin(t *testing.T) {
	env := newTestSetupService()
	env.seedPending(t)

	_, err := env.svc.Finalize(context.Background(), driving.FinalizeRequest{
		SetupSessionID: "setup_abc",
		FormData: driving.FinalizeFormData{
			SocietyName: "Oak Towers",
			AdminName:   "Jane",
		},
		SocietyName: "Stale Name",
		AdminName:   "Stale Admin",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	society, err := env.societies.Get(context.Background(), "google-uid-1")
	if err != nil {
		t.Fatalf("expected society record: %v", err)
	}
	if society.SocietyName != "Oak Towers" || society.AdminName != "Jane" {
		t.Errorf("nested form fields must take precedence: %+v", society)
	}
}

func TestFinalize_UnknownSessionCreatesNothing(t *testing.T) {
	env := newTestSetupService()

	_, err := env.svc.Finalize(context.Background(), driving.FinalizeRequest{
		SetupSessionID: "setup_unknown",
		SocietyName:    "Oak Towers",
	})
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
	if env.identity.AccountCount() != 0 {
		t.Error("no account may be created for an unknown session")
	}
	if env.societies.Count() != 0 {
		t.Error("no society may be created for an unknown session")
	}
}

func TestFinalize_RetryAfterPartialFailure(t *testing.T) {
	env := newTestSetupService()
	env.seedPending(t)

	// First attempt dies between account creation and the society write.
	env.societies.SaveErr = errors.New("firestore unavailable")
	_, err := env.svc.Finalize(context.Background(), driving.FinalizeRequest{
		SetupSessionID: "setup_abc",
		SocietyName:    "Oak Towers",
	})
	if err == nil {
		t.Fatal("expected first attempt to fail")
	}
	if env.pending.Count() != 1 {
		t.Fatal("pending setup must survive a partial failure")
	}

	// Retry with the same session: the existing account must not break it.
	env.societies.SaveErr = nil
	resp, err := env.svc.Finalize(context.Background(), driving.FinalizeRequest{
		SetupSessionID: "setup_abc",
		SocietyName:    "Oak Towers",
	})
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if !resp.Success {
		t.Error("expected retry to succeed")
	}
	if env.identity.EnsureCalls != 2 {
		t.Errorf("expected 2 ensure calls, got %d", env.identity.EnsureCalls)
	}
	if env.identity.AccountCount() != 1 {
		t.Errorf("expected exactly 1 account after retry, got %d", env.identity.AccountCount())
	}
}

func TestFinalize_ValidatesInput(t *testing.T) {
	env := newTestSetupService()

	tests := []struct {
		name string
		req  driving.FinalizeRequest
	}{
		{"missing session id", driving.FinalizeRequest{SocietyName: "Oak Towers"}},
		{"missing society name", driving.FinalizeRequest{SetupSessionID: "setup_abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Finalize(context.Background(), tt.req)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
