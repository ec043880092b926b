package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driven"
)

// Ensure SocietyStore implements the interface.
var _ driven.SocietyStore = (*SocietyStore)(nil)

// SocietyStore implements driven.SocietyStore using PostgreSQL.
type SocietyStore struct {
	db *DB
}

// NewSocietyStore creates a new PostgreSQL-backed society store.
func NewSocietyStore(db *DB) *SocietyStore {
	return &SocietyStore{db: db}
}

// Save stores a new society or overwrites an existing one.
func (s *SocietyStore) Save(ctx context.Context, society *domain.Society) error {
	now := time.Now()
	if society.CreatedAt.IsZero() {
		society.CreatedAt = now
	}
	society.UpdatedAt = now

	query := `
		INSERT INTO societies (admin_uid, society_name, admin_name, admin_email, app_id,
			drive_folder_id, drive_access_token, is_drive_linked, unit_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (admin_uid) DO UPDATE SET
			society_name = EXCLUDED.society_name,
			admin_name = EXCLUDED.admin_name,
			admin_email = EXCLUDED.admin_email,
			app_id = EXCLUDED.app_id,
			drive_folder_id = EXCLUDED.drive_folder_id,
			drive_access_token = EXCLUDED.drive_access_token,
			is_drive_linked = EXCLUDED.is_drive_linked,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		society.ID,
		society.SocietyName,
		society.AdminName,
		society.AdminEmail,
		society.AppID,
		society.DriveFolderID,
		society.DriveAccessToken,
		society.IsDriveLinked,
		society.UnitCount,
		society.CreatedAt,
		society.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save society: %w", err)
	}

	return nil
}

// Get retrieves a society by admin UID.
func (s *SocietyStore) Get(ctx context.Context, adminUID string) (*domain.Society, error) {
	society, err := s.scanOne(ctx, `WHERE admin_uid = $1`, adminUID)
	if err != nil {
		return nil, err
	}
	if society == nil {
		return nil, domain.ErrNotFound
	}
	return society, nil
}

// GetByEmail retrieves a society by admin email.
// Returns (nil, nil) when no society exists for the email.
func (s *SocietyStore) GetByEmail(ctx context.Context, email string) (*domain.Society, error) {
	return s.scanOne(ctx, `WHERE LOWER(admin_email) = LOWER($1)`, email)
}

// UpdateAccessToken overwrites the cached short-lived Drive access token.
func (s *SocietyStore) UpdateAccessToken(ctx context.Context, adminUID, accessToken string) error {
	query := `
		UPDATE societies
		SET drive_access_token = $2, updated_at = NOW()
		WHERE admin_uid = $1
	`
	result, err := s.db.ExecContext(ctx, query, adminUID, accessToken)
	if err != nil {
		return fmt.Errorf("update access token: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update access token: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *SocietyStore) scanOne(ctx context.Context, where string, arg any) (*domain.Society, error) {
	query := `
		SELECT admin_uid, society_name, admin_name, admin_email, app_id,
			drive_folder_id, drive_access_token, is_drive_linked, unit_count, created_at, updated_at
		FROM societies ` + where

	var society domain.Society
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&society.ID,
		&society.SocietyName,
		&society.AdminName,
		&society.AdminEmail,
		&society.AppID,
		&society.DriveFolderID,
		&society.DriveAccessToken,
		&society.IsDriveLinked,
		&society.UnitCount,
		&society.CreatedAt,
		&society.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get society: %w", err)
	}
	return &society, nil
}
