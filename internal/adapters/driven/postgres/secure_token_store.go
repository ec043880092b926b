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

// Ensure SecureTokenStore implements the interface.
var _ driven.SecureTokenStore = (*SecureTokenStore)(nil)

// SecureTokenStore implements driven.SecureTokenStore using PostgreSQL.
// Refresh tokens never touch the table in plaintext; every row holds an
// AES-256-GCM blob produced by TokenCipher.
type SecureTokenStore struct {
	db     *DB
	cipher *TokenCipher
}

// NewSecureTokenStore creates a new PostgreSQL-backed secure token store.
func NewSecureTokenStore(db *DB, cipher *TokenCipher) *SecureTokenStore {
	return &SecureTokenStore{db: db, cipher: cipher}
}

// Save creates or overwrites the token record for an admin.
func (s *SecureTokenStore) Save(ctx context.Context, token *domain.SecureToken) error {
	blob, err := s.cipher.Encrypt(token.RefreshToken)
	if err != nil {
		return fmt.Errorf("encrypt refresh token: %w", err)
	}

	updatedAt := token.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	query := `
		INSERT INTO secure_tokens (admin_uid, token_blob, email, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (admin_uid) DO UPDATE SET
			token_blob = EXCLUDED.token_blob,
			email = EXCLUDED.email,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, token.AdminUID, blob, token.Email, updatedAt); err != nil {
		return fmt.Errorf("save secure token: %w", err)
	}
	return nil
}

// Get retrieves and decrypts the token record for an admin.
func (s *SecureTokenStore) Get(ctx context.Context, adminUID string) (*domain.SecureToken, error) {
	query := `
		SELECT admin_uid, token_blob, email, updated_at
		FROM secure_tokens
		WHERE admin_uid = $1
	`

	var (
		token domain.SecureToken
		blob  []byte
	)
	err := s.db.QueryRowContext(ctx, query, adminUID).Scan(
		&token.AdminUID,
		&blob,
		&token.Email,
		&token.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get secure token: %w", err)
	}

	token.RefreshToken, err = s.cipher.Decrypt(blob)
	if err != nil {
		return nil, fmt.Errorf("decrypt refresh token: %w", err)
	}
	return &token, nil
}

// Delete removes the token record. Missing records are not an error.
func (s *SecureTokenStore) Delete(ctx context.Context, adminUID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM secure_tokens WHERE admin_uid = $1`, adminUID); err != nil {
		return fmt.Errorf("delete secure token: %w", err)
	}
	return nil
}
