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
var _ driven.PendingSetupStore = (*PendingSetupStore)(nil)

const pendingSetupPrefix = "setup:pending:"

// DefaultPendingSetupTTL bounds how long a signup may sit between the OAuth
// callback and finalize. After that the tokens evaporate and the user starts
// over; nothing permanent exists yet.
const DefaultPendingSetupTTL = 30 * time.Minute

// pendingSetupRecord is the wire form of a pending setup. The domain type
// hides the tokens from JSON; inside Redis they must round-trip.
type pendingSetupRecord struct {
	SessionID    string    `json:"sessionId"`
	Email        string    `json:"email"`
	GoogleUID    string    `json:"googleUid"`
	RefreshToken string    `json:"refreshToken"`
	AccessToken  string    `json:"accessToken"`
	AppID        string    `json:"appId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PendingSetupStore implements driven.PendingSetupStore using Redis
type PendingSetupStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPendingSetupStore creates a new Redis-backed PendingSetupStore
func NewPendingSetupStore(client *redis.Client) *PendingSetupStore {
	return &PendingSetupStore{client: client, ttl: DefaultPendingSetupTTL}
}

// NewPendingSetupStoreWithTTL creates a PendingSetupStore with custom TTL
func NewPendingSetupStoreWithTTL(client *redis.Client, ttl time.Duration) *PendingSetupStore {
	return &PendingSetupStore{client: client, ttl: ttl}
}

// Save stores a pending setup under its session id
func (s *PendingSetupStore) Save(ctx context.Context, pending *domain.PendingSetup) error {
	data, err := json.Marshal(pendingSetupRecord{
		SessionID:    pending.SessionID,
		Email:        pending.Email,
		GoogleUID:    pending.GoogleUID,
		RefreshToken: pending.RefreshToken,
		AccessToken:  pending.AccessToken,
		AppID:        pending.AppID,
		CreatedAt:    pending.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal pending setup: %w", err)
	}

	if err := s.client.Set(ctx, pendingSetupPrefix+pending.SessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save pending setup: %w", err)
	}
	return nil
}

// Get retrieves a pending setup by session id.
// Returns (nil, nil) when the session id is unknown or expired.
func (s *PendingSetupStore) Get(ctx context.Context, sessionID string) (*domain.PendingSetup, error) {
	data, err := s.client.Get(ctx, pendingSetupPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending setup: %w", err)
	}

	var record pendingSetupRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending setup: %w", err)
	}
	return &domain.PendingSetup{
		SessionID:    record.SessionID,
		Email:        record.Email,
		GoogleUID:    record.GoogleUID,
		RefreshToken: record.RefreshToken,
		AccessToken:  record.AccessToken,
		AppID:        record.AppID,
		CreatedAt:    record.CreatedAt,
	}, nil
}

// Delete removes a pending setup. Missing records are not an error.
func (s *PendingSetupStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, pendingSetupPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete pending setup: %w", err)
	}
	return nil
}
