package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.OTPStore = (*OTPStore)(nil)

const (
	otpPrefix         = "otp:code:"
	otpAttemptsPrefix = "otp:attempts:"
)

// otpRecord is the wire form of a reset code. The domain type hides the code
// from JSON; inside Redis it must round-trip.
type otpRecord struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// OTPStore implements driven.OTPStore using Redis.
// The code and its attempt counter live under separate keys with the same
// TTL: INCR keeps the counter atomic under concurrent guesses.
type OTPStore struct {
	client *redis.Client
}

// NewOTPStore creates a new Redis-backed OTPStore
func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{client: client}
}

// Save stores a code record, replacing any previous one for the email.
// The attempt counter resets with it.
func (s *OTPStore) Save(ctx context.Context, record *domain.OTPRecord) error {
	ttl := time.Until(record.ExpiresAt)
	if ttl <= 0 {
		// Already expired, don't save
		return nil
	}

	data, err := json.Marshal(otpRecord{
		Email:     record.Email,
		Code:      record.Code,
		CreatedAt: record.CreatedAt,
		ExpiresAt: record.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal otp: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, otpPrefix+record.Email, data, ttl)
	pipe.Del(ctx, otpAttemptsPrefix+record.Email)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save otp: %w", err)
	}
	return nil
}

// Get retrieves the code record for an email.
// Returns (nil, nil) when no code has been issued or it expired.
func (s *OTPStore) Get(ctx context.Context, email string) (*domain.OTPRecord, error) {
	data, err := s.client.Get(ctx, otpPrefix+email).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get otp: %w", err)
	}

	var record otpRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal otp: %w", err)
	}

	attempts, err := s.client.Get(ctx, otpAttemptsPrefix+email).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get otp attempts: %w", err)
	}

	return &domain.OTPRecord{
		Email:     record.Email,
		Code:      record.Code,
		Attempts:  attempts,
		CreatedAt: record.CreatedAt,
		ExpiresAt: record.ExpiresAt,
	}, nil
}

// IncrementAttempts bumps the attempt counter and returns the new value.
// The counter inherits the code's remaining lifetime.
func (s *OTPStore) IncrementAttempts(ctx context.Context, email string) (int, error) {
	attempts, err := s.client.Incr(ctx, otpAttemptsPrefix+email).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment otp attempts: %w", err)
	}

	if ttl, err := s.client.TTL(ctx, otpPrefix+email).Result(); err == nil && ttl > 0 {
		s.client.Expire(ctx, otpAttemptsPrefix+email, ttl)
	}
	return int(attempts), nil
}

// Delete removes the code record and its attempt counter.
func (s *OTPStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, otpPrefix+email, otpAttemptsPrefix+email).Err(); err != nil {
		return fmt.Errorf("failed to delete otp: %w", err)
	}
	return nil
}
