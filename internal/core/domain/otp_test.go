package domain

import (
	"testing"
	"time"
)

func TestOTPRecord_IsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{"well before expiry", time.Now().Add(4 * time.Minute), false},
		{"one second before expiry", time.Now().Add(1 * time.Second), false},
		{"one second past expiry", time.Now().Add(-1 * time.Second), true},
		{"long past expiry", time.Now().Add(-time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &OTPRecord{Email: "admin@gmail.com", Code: "1234", ExpiresAt: tt.expiresAt}
			if got := rec.IsExpired(); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOTPRecord_Matches(t *testing.T) {
	rec := &OTPRecord{Email: "admin@gmail.com", Code: "4821"}

	if !rec.Matches("4821") {
		t.Error("Matches() = false for the issued code")
	}
	if rec.Matches("0000") {
		t.Error("Matches() = true for a wrong code")
	}
	if rec.Matches("") {
		t.Error("Matches() = true for an empty code")
	}
}
