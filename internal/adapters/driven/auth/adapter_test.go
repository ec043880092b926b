package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
)

func testClaims() *domain.TokenClaims {
	return &domain.TokenClaims{
		AdminUID:  "google-uid-1",
		Email:     "admin@gmail.com",
		AppID:     "app-1",
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	adapter := NewAdapter("test-secret")

	token, err := adapter.GenerateToken(testClaims())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := adapter.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.AdminUID != "google-uid-1" || claims.Email != "admin@gmail.com" || claims.AppID != "app-1" {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	adapter := NewAdapter("test-secret")
	other := NewAdapter("other-secret")

	token, _ := adapter.GenerateToken(testClaims())
	if _, err := other.ParseToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_Expired(t *testing.T) {
	adapter := NewAdapter("test-secret")

	claims := testClaims()
	claims.IssuedAt = time.Now().Add(-2 * time.Hour).Unix()
	claims.ExpiresAt = time.Now().Add(-time.Hour).Unix()
	token, _ := adapter.GenerateToken(claims)

	if _, err := adapter.ParseToken(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_RejectsUnsignedAlg(t *testing.T) {
	adapter := NewAdapter("test-secret")

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	if _, err := adapter.ParseToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("alg=none must be rejected, got %v", err)
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	adapter := NewAdapterWithCost("test-secret", bcrypt.MinCost)

	hash, err := adapter.HashPassword("resident-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "resident-pass" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !adapter.VerifyPassword("resident-pass", hash) {
		t.Error("correct password must verify")
	}
	if adapter.VerifyPassword("wrong", hash) {
		t.Error("wrong password must not verify")
	}
}
