package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driven"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driving"
)

// Ensure setupService implements SetupService
var _ driving.SetupService = (*setupService)(nil)

// SetupServiceConfig holds configuration for the setup service.
type SetupServiceConfig struct {
	// PendingSetupStore holds the provisional tokens parked by the callback.
	PendingSetupStore driven.PendingSetupStore

	// SocietyStore persists the permanent society record.
	SocietyStore driven.SocietyStore

	// SecureTokenStore persists the refresh token.
	SecureTokenStore driven.SecureTokenStore

	// Identity creates the admin account at the identity provider.
	Identity driven.IdentityProvider

	// DriveFactory builds the client that creates the root storage folder.
	DriveFactory driven.DriveClientFactory

	// Auth mints the session credential returned to the client.
	Auth driven.AuthAdapter

	Logger *slog.Logger
}

// setupService implements the SetupService interface.
type setupService struct {
	pending      driven.PendingSetupStore
	societies    driven.SocietyStore
	secureTokens driven.SecureTokenStore
	identity     driven.IdentityProvider
	driveFactory driven.DriveClientFactory
	auth         driven.AuthAdapter
	logger       *slog.Logger
}

// NewSetupService creates a new setup service.
func NewSetupService(cfg SetupServiceConfig) driving.SetupService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &setupService{
		pending:      cfg.PendingSetupStore,
		societies:    cfg.SocietyStore,
		secureTokens: cfg.SecureTokenStore,
		identity:     cfg.Identity,
		driveFactory: cfg.DriveFactory,
		auth:         cfg.Auth,
		logger:       logger,
	}
}

// Finalize converts a pending setup into a permanent admin account, root
// storage folder and society record.
//
// The steps run in a fixed order and each failure aborts the remainder
// without compensation. The pending session is deleted only at the end, so a
// client retry after a partial failure re-enters the sequence; the identity
// step is idempotent and a re-created society record is a harmless overwrite.
func (s *setupService) Finalize(ctx context.Context, req driving.FinalizeRequest) (*driving.FinalizeResponse, error) {
	if req.SetupSessionID == "" {
		return nil, fmt.Errorf("%w: setupSessionId is required", domain.ErrInvalidInput)
	}
	societyName := firstNonEmpty(req.FormData.SocietyName, req.SocietyName)
	adminName := firstNonEmpty(req.FormData.AdminName, req.AdminName)
	if societyName == "" {
		return nil, fmt.Errorf("%w: societyName is required", domain.ErrInvalidInput)
	}

	pending, err := s.pending.Get(ctx, req.SetupSessionID)
	if err != nil {
		return nil, fmt.Errorf("get pending setup: %w", err)
	}
	if pending == nil {
		return nil, domain.ErrSessionExpired
	}

	adminUID := pending.GoogleUID
	log := s.logger.With("admin_uid", adminUID, "session_id", req.SetupSessionID)

	// Step 1: identity account, keyed by the Google subject id. Idempotent,
	// so a retry of a half-finished finalize does not trip over it.
	if err := s.identity.EnsureAccount(ctx, adminUID, pending.Email, adminName); err != nil {
		log.Error("finalize aborted: create account", "error", err)
		return nil, fmt.Errorf("create account: %w", err)
	}

	// Step 2: root storage folder, using the short-lived access token from
	// the handshake. The refresh token is not persisted yet.
	drive, err := s.driveFactory.ForAccessToken(ctx, pending.AccessToken)
	if err != nil {
		log.Error("finalize aborted: drive client", "error", err)
		return nil, fmt.Errorf("drive client: %w", err)
	}
	folderID, err := drive.CreateFolder(ctx, societyName, "")
	if err != nil {
		log.Error("finalize aborted: create root folder", "error", err)
		return nil, fmt.Errorf("create root folder: %w", err)
	}

	// Step 3: permanent society record.
	now := time.Now()
	society := &domain.Society{
		ID:               adminUID,
		SocietyName:      societyName,
		AdminName:        adminName,
		AdminEmail:       pending.Email,
		AppID:            firstNonEmpty(req.AppID, pending.AppID),
		DriveFolderID:    folderID,
		DriveAccessToken: pending.AccessToken,
		IsDriveLinked:    pending.RefreshToken != "",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.societies.Save(ctx, society); err != nil {
		log.Error("finalize aborted: save society", "error", err)
		return nil, fmt.Errorf("save society: %w", err)
	}

	// Step 4: refresh token, stored separately from the society record.
	if pending.RefreshToken != "" {
		err := s.secureTokens.Save(ctx, &domain.SecureToken{
			AdminUID:     adminUID,
			RefreshToken: pending.RefreshToken,
			Email:        pending.Email,
			UpdatedAt:    now,
		})
		if err != nil {
			log.Error("finalize aborted: save refresh token", "error", err)
			return nil, fmt.Errorf("save refresh token: %w", err)
		}
	}

	// Step 5: the session is spent once the permanent records exist.
	if err := s.pending.Delete(ctx, req.SetupSessionID); err != nil {
		log.Warn("failed to delete pending setup", "error", err)
	}

	token, err := s.auth.GenerateToken(&domain.TokenClaims{
		AdminUID:  adminUID,
		Email:     pending.Email,
		AppID:     society.AppID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(sessionTokenTTL).Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	log.Info("setup finalized", "society", societyName, "folder_id", folderID)

	return &driving.FinalizeResponse{
		Success:       true,
		Token:         token,
		AdminUID:      adminUID,
		DriveFolderID: folderID,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
