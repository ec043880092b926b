package driven

import "github.com/harshal-solutionplanets/society-core/internal/core/domain"

// AuthAdapter handles session credentials and password hashing.
type AuthAdapter interface {
	// HashPassword generates a hash from a plaintext password.
	HashPassword(password string) (string, error)

	// VerifyPassword checks if a password matches a hash.
	VerifyPassword(password, hash string) bool

	// GenerateToken creates a signed session credential from domain claims.
	GenerateToken(claims *domain.TokenClaims) (string, error)

	// ParseToken validates a session credential and extracts domain claims.
	ParseToken(token string) (*domain.TokenClaims, error)
}
