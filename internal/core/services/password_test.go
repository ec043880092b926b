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

type passwordTestEnv struct {
	societies *mocks.MockSocietyStore
	otps      *mocks.MockOTPStore
	identity  *mocks.MockIdentityProvider
	mailer    *mocks.MockMailer
	svc       driving.PasswordService
}

func newTestPasswordService(t *testing.T) *passwordTestEnv {
	t.Helper()
	env := &passwordTestEnv{
		societies: mocks.NewMockSocietyStore(),
		otps:      mocks.NewMockOTPStore(),
		identity:  mocks.NewMockIdentityProvider(),
		mailer:    mocks.NewMockMailer(),
	}
	env.svc = NewPasswordService(PasswordServiceConfig{
		SocietyStore: env.societies,
		OTPStore:     env.otps,
		Identity:     env.identity,
		Mailer:       env.mailer,
	})
	_ = env.societies.Save(context.Background(), &domain.Society{
		ID:         "google-uid-1",
		AdminEmail: "admin@gmail.com",
	})
	_ = env.identity.EnsureAccount(context.Background(), "google-uid-1", "admin@gmail.com", "Asha")
	return env
}

func (e *passwordTestEnv) issuedCode(t *testing.T) string {
	t.Helper()
	record, err := e.otps.Get(context.Background(), "admin@gmail.com")
	if err != nil || record == nil {
		t.Fatalf("expected issued code, got %v, %v", record, err)
	}
	return record.Code
}

func TestForgotPassword_IssuesAndMailsCode(t *testing.T) {
	env := newTestPasswordService(t)

	if err := env.svc.ForgotPassword(context.Background(), driving.ForgotPasswordRequest{
		Email: "admin@gmail.com",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent := env.mailer.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(sent))
	}
	if len(sent[0].Code) != 4 {
		t.Errorf("expected 4-digit code, got %q", sent[0].Code)
	}
	if sent[0].Code != env.issuedCode(t) {
		t.Error("mailed code must match the stored one")
	}
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	env := newTestPasswordService(t)

	err := env.svc.ForgotPassword(context.Background(), driving.ForgotPasswordRequest{
		Email: "stranger@gmail.com",
	})
	if !errors.Is(err, domain.ErrNotRegistered) {
		t.Errorf("expected ErrNotRegistered, got %v", err)
	}
	if len(env.mailer.Sent()) != 0 {
		t.Error("no mail may be sent for unknown emails")
	}
}

func TestForgotPassword_ReissueResetsAttempts(t *testing.T) {
	env := newTestPasswordService(t)
	_ = env.svc.ForgotPassword(context.Background(), driving.ForgotPasswordRequest{Email: "admin@gmail.com"})

	// Burn a couple of attempts, then reissue.
	for i := 0; i < 2; i++ {
		_ = env.svc.VerifyOTP(context.Background(), driving.VerifyOTPRequest{
			Email: "admin@gmail.com", OTP: "0000x",
		})
	}
	_ = env.svc.ForgotPassword(context.Background(), driving.ForgotPasswordRequest{Email: "admin@gmail.com"})

	record, _ := env.otps.Get(context.Background(), "admin@gmail.com")
	if record.Attempts != 0 {
		t.Errorf("reissue must reset the attempt counter, got %d", record.Attempts)
	}
}

func TestVerifyOTP(t *testing.T) {
	env := newTestPasswordService(t)
	_ = env.svc.ForgotPassword(context.Background(), driving.ForgotPasswordRequest{Email: "admin@gmail.com"})
	code := env.issuedCode(t)

	if err := env.svc.VerifyOTP(context.Background(), driving.VerifyOTPRequest{
		Email: "admin@gmail.com", OTP: code,
	}); err != nil {
		t.Fatalf("valid code rejected: %v", err)
	}

	// Verification does not consume the code.
	if err := env.svc.VerifyOTP(context.Background(), driving.VerifyOTPRequest{
		Email: "admin@gmail.com", OTP: code,
	}); err != nil {
		t.Errorf("code must survive verification: %v", err)
	}

	err := env.svc.VerifyOTP(context.Background(), driving.VerifyOTPRequest{
		Email: "admin@gmail.com", OTP: "wrong",
	})
	if !errors.Is(err, domain.ErrOTPInvalid) {
		t.Errorf("expected ErrOTPInvalid, got %v", err)
	}

	err = env.svc.VerifyOTP(context.Background(), driving.VerifyOTPRequest{
		Email: "other@gmail.com", OTP: code,
	})
	if !errors.Is(err, domain.ErrOTPNotFound) {
		t.Errorf("expected ErrOTPNotFound, got %v", err)
	}
}

func TestVerifyOTP_Expiry(t *testing.T) {
	env := newTestPasswordService(t)

	// 4 minutes in: still valid.
	_ = env.otps.Save(context.Background(), &domain.OTPRecord{
		Email:     "admin@gmail.com",
		Code:      "1234",
		CreatedAt: time.Now().Add(-4 * time.Minute),
		ExpiresAt: time.Now().Add(time.Minute),
	})
	if err := env.svc.VerifyOTP(context.Background(), driving.VerifyOTPRequest{
		Email: "admin@gmail.com", OTP: "1234",
	}); err != nil {
		t.Errorf("code at 4 minutes must still verify: %v", err)
	}

	// Just past 5 minutes: expired, even with the right code.
	_ = env.otps.Save(context.Background(), &domain.OTPRecord{
		Email:     "admin@gmail.com",
		Code:      "1234",
		CreatedAt: time.Now().Add(-domain.OTPTTL - time.Second),
		ExpiresAt: time.Now().Add(-time.Second),
	})
	err := env.svc.VerifyOTP(context.Background(), driving.VerifyOTPRequest{
		Email: "admin@gmail.com", OTP: "1234",
	})
	if !errors.Is(err, domain.ErrOTPExpired) {
		t.Errorf("expected ErrOTPExpired, got %v", err)
	}
}

func TestVerifyOTP_AttemptBudget(t *testing.T) {
	env := newTestPasswordService(t)
	_ = env.svc.ForgotPassword(context.Background(), driving.ForgotPasswordRequest{Email: "admin@gmail.com"})
	code := env.issuedCode(t)

	var err error
	for i := 0; i < domain.OTPMaxAttempts; i++ {
		err = env.svc.VerifyOTP(context.Background(), driving.VerifyOTPRequest{
			Email: "admin@gmail.com", OTP: code + "x",
		})
	}
	if !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Errorf("expected ErrTooManyAttempts on attempt %d, got %v", domain.OTPMaxAttempts, err)
	}

	// Budget exhaustion invalidates the code outright.
	err = env.svc.VerifyOTP(context.Background(), driving.VerifyOTPRequest{
		Email: "admin@gmail.com", OTP: code,
	})
	if !errors.Is(err, domain.ErrOTPNotFound) {
		t.Errorf("correct code must be dead after exhaustion, got %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	env := newTestPasswordService(t)
	_ = env.svc.ForgotPassword(context.Background(), driving.ForgotPasswordRequest{Email: "admin@gmail.com"})
	code := env.issuedCode(t)

	err := env.svc.ResetPassword(context.Background(), driving.ResetPasswordRequest{
		Email: "admin@gmail.com", OTP: code, NewPassword: "short",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for weak password, got %v", err)
	}

	if err := env.svc.ResetPassword(context.Background(), driving.ResetPasswordRequest{
		Email: "admin@gmail.com", OTP: code, NewPassword: "s3cret-pass",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := env.identity.Password("google-uid-1"); got != "s3cret-pass" {
		t.Errorf("password not updated at identity provider: %q", got)
	}

	// The code is single-use for resets.
	err = env.svc.ResetPassword(context.Background(), driving.ResetPasswordRequest{
		Email: "admin@gmail.com", OTP: code, NewPassword: "another-pass",
	})
	if !errors.Is(err, domain.ErrOTPNotFound) {
		t.Errorf("expected ErrOTPNotFound on reuse, got %v", err)
	}
}
