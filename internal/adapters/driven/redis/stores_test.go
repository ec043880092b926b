package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
)

// setupTestRedis creates a miniredis-backed client
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr, func() {
		client.Close()
		mr.Close()
	}
}

func TestOAuthStateStore_SingleUse(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewOAuthStateStore(client)
	ctx := context.Background()

	state := &domain.OAuthState{
		State:     "state-123",
		AdminUID:  "admin-1",
		AppID:     "app-1",
		IsSignup:  true,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.GetAndDelete(ctx, "state-123")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.AdminUID != "admin-1" || !got.IsSignup {
		t.Errorf("wrong record: %+v", got)
	}

	// Second read: gone.
	got, err = store.GetAndDelete(ctx, "state-123")
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if got != nil {
		t.Error("state must be single-use")
	}
}

func TestOAuthStateStore_ExpiresViaTTL(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewOAuthStateStore(client)
	ctx := context.Background()

	_ = store.Save(ctx, &domain.OAuthState{
		State:     "state-123",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	})

	mr.FastForward(11 * time.Minute)

	got, err := store.GetAndDelete(ctx, "state-123")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("expired state must be unreadable")
	}
}

func TestOAuthStateStore_SkipsExpiredSave(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewOAuthStateStore(client)
	ctx := context.Background()

	err := store.Save(ctx, &domain.OAuthState{
		State:     "stale",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, _ := store.GetAndDelete(ctx, "stale"); got != nil {
		t.Error("expired state must not be stored")
	}
}

func TestPendingSetupStore_RoundTripKeepsTokens(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewPendingSetupStore(client)
	ctx := context.Background()

	pending := &domain.PendingSetup{
		SessionID:    "setup_abc",
		Email:        "admin@gmail.com",
		GoogleUID:    "google-uid-1",
		RefreshToken: "1//refresh",
		AccessToken:  "ya29.access",
		AppID:        "app-1",
		CreatedAt:    time.Now(),
	}
	if err := store.Save(ctx, pending); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, "setup_abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected pending setup")
	}
	// The domain type hides the tokens from JSON; the store must keep them anyway.
	if got.RefreshToken != "1//refresh" || got.AccessToken != "ya29.access" {
		t.Errorf("tokens lost in round trip: %+v", got)
	}

	// Get does not consume.
	if again, _ := store.Get(ctx, "setup_abc"); again == nil {
		t.Error("get must not consume the record")
	}

	if err := store.Delete(ctx, "setup_abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := store.Get(ctx, "setup_abc"); got != nil {
		t.Error("deleted record must be gone")
	}

	// Deleting again is fine.
	if err := store.Delete(ctx, "setup_abc"); err != nil {
		t.Errorf("second delete must not fail: %v", err)
	}
}

func TestPendingSetupStore_ExpiresViaTTL(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewPendingSetupStoreWithTTL(client, 30*time.Minute)
	ctx := context.Background()

	_ = store.Save(ctx, &domain.PendingSetup{SessionID: "setup_abc"})

	mr.FastForward(31 * time.Minute)

	if got, _ := store.Get(ctx, "setup_abc"); got != nil {
		t.Error("pending setup must expire")
	}
}

func TestOTPStore_RoundTripAndAttempts(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewOTPStore(client)
	ctx := context.Background()

	record := &domain.OTPRecord{
		Email:     "admin@gmail.com",
		Code:      "1234",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(domain.OTPTTL),
	}
	if err := store.Save(ctx, record); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, "admin@gmail.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Code != "1234" || got.Attempts != 0 {
		t.Errorf("wrong record: %+v", got)
	}

	for want := 1; want <= 3; want++ {
		n, err := store.IncrementAttempts(ctx, "admin@gmail.com")
		if err != nil {
			t.Fatalf("increment: %v", err)
		}
		if n != want {
			t.Errorf("expected attempts %d, got %d", want, n)
		}
	}
	got, _ = store.Get(ctx, "admin@gmail.com")
	if got.Attempts != 3 {
		t.Errorf("attempts not visible on get: %d", got.Attempts)
	}

	// Reissue resets the counter.
	record.Code = "5678"
	if err := store.Save(ctx, record); err != nil {
		t.Fatalf("re-save: %v", err)
	}
	got, _ = store.Get(ctx, "admin@gmail.com")
	if got.Code != "5678" || got.Attempts != 0 {
		t.Errorf("reissue must replace code and reset attempts: %+v", got)
	}
}

func TestOTPStore_ExpiresViaTTL(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewOTPStore(client)
	ctx := context.Background()

	_ = store.Save(ctx, &domain.OTPRecord{
		Email:     "admin@gmail.com",
		Code:      "1234",
		ExpiresAt: time.Now().Add(domain.OTPTTL),
	})
	_, _ = store.IncrementAttempts(ctx, "admin@gmail.com")

	mr.FastForward(domain.OTPTTL + time.Second)

	if got, _ := store.Get(ctx, "admin@gmail.com"); got != nil {
		t.Error("otp must expire with its TTL")
	}
}

func TestOTPStore_Delete(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewOTPStore(client)
	ctx := context.Background()

	_ = store.Save(ctx, &domain.OTPRecord{
		Email:     "admin@gmail.com",
		Code:      "1234",
		ExpiresAt: time.Now().Add(domain.OTPTTL),
	})
	_, _ = store.IncrementAttempts(ctx, "admin@gmail.com")

	if err := store.Delete(ctx, "admin@gmail.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := store.Get(ctx, "admin@gmail.com"); got != nil {
		t.Error("deleted otp must be gone")
	}

	// Counter dies with the record: a fresh code starts clean.
	_ = store.Save(ctx, &domain.OTPRecord{
		Email:     "admin@gmail.com",
		Code:      "9999",
		ExpiresAt: time.Now().Add(domain.OTPTTL),
	})
	got, _ := store.Get(ctx, "admin@gmail.com")
	if got.Attempts != 0 {
		t.Errorf("expected clean counter, got %d", got.Attempts)
	}
}
