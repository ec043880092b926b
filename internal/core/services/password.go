package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/harshal-solutionplanets/society-core/internal/core/domain"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driven"
	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driving"
)

// Ensure passwordService implements PasswordService
var _ driving.PasswordService = (*passwordService)(nil)

// PasswordServiceConfig holds configuration for the password service.
type PasswordServiceConfig struct {
	// SocietyStore resolves emails to admin accounts.
	SocietyStore driven.SocietyStore

	// OTPStore persists issued reset codes.
	OTPStore driven.OTPStore

	// Identity sets the new password on the account.
	Identity driven.IdentityProvider

	// Mailer delivers the code.
	Mailer driven.Mailer

	Logger *slog.Logger
}

// passwordService implements the PasswordService interface.
type passwordService struct {
	societies driven.SocietyStore
	otps      driven.OTPStore
	identity  driven.IdentityProvider
	mailer    driven.Mailer
	logger    *slog.Logger
}

// NewPasswordService creates a new password service.
func NewPasswordService(cfg PasswordServiceConfig) driving.PasswordService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &passwordService{
		societies: cfg.SocietyStore,
		otps:      cfg.OTPStore,
		identity:  cfg.Identity,
		mailer:    cfg.Mailer,
		logger:    logger,
	}
}

// ForgotPassword issues a fresh reset code for a registered admin and emails
// it. Reissuing replaces any previous code for the email and resets its
// attempt counter.
func (s *passwordService) ForgotPassword(ctx context.Context, req driving.ForgotPasswordRequest) error {
	if req.Email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	society, err := s.societies.GetByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("lookup society: %w", err)
	}
	if society == nil {
		return domain.ErrNotRegistered
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	now := time.Now()
	record := &domain.OTPRecord{
		Email:     req.Email,
		Code:      code,
		Attempts:  0,
		CreatedAt: now,
		ExpiresAt: now.Add(domain.OTPTTL),
	}
	if err := s.otps.Save(ctx, record); err != nil {
		return fmt.Errorf("save otp: %w", err)
	}

	if err := s.mailer.SendOTP(ctx, req.Email, code); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}

	s.logger.Info("password reset code issued", "email", req.Email)
	return nil
}

// VerifyOTP checks a code without consuming it, so the client can validate
// before collecting the new password. Wrong guesses burn attempts from a
// fixed budget; exhausting it invalidates the code.
func (s *passwordService) VerifyOTP(ctx context.Context, req driving.VerifyOTPRequest) error {
	if req.Email == "" || req.OTP == "" {
		return fmt.Errorf("%w: email and otp are required", domain.ErrInvalidInput)
	}
	_, err := s.checkOTP(ctx, req.Email, req.OTP)
	return err
}

// ResetPassword consumes a valid code and sets the new password at the
// identity provider.
func (s *passwordService) ResetPassword(ctx context.Context, req driving.ResetPasswordRequest) error {
	if req.Email == "" || req.OTP == "" {
		return fmt.Errorf("%w: email and otp are required", domain.ErrInvalidInput)
	}
	if len(req.NewPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidInput)
	}

	society, err := s.checkOTP(ctx, req.Email, req.OTP)
	if err != nil {
		return err
	}

	if err := s.identity.UpdatePassword(ctx, society.ID, req.NewPassword); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	// Single-use: the code is spent on a successful reset.
	if err := s.otps.Delete(ctx, req.Email); err != nil {
		s.logger.Warn("failed to delete consumed otp", "email", req.Email, "error", err)
	}

	s.logger.Info("password reset completed", "admin_uid", society.ID)
	return nil
}

// checkOTP validates the code for the email and returns the owning society.
func (s *passwordService) checkOTP(ctx context.Context, email, code string) (*domain.Society, error) {
	record, err := s.otps.Get(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get otp: %w", err)
	}
	if record == nil {
		return nil, domain.ErrOTPNotFound
	}
	if record.IsExpired() {
		return nil, domain.ErrOTPExpired
	}
	if record.Attempts >= domain.OTPMaxAttempts {
		return nil, domain.ErrTooManyAttempts
	}

	if !record.Matches(code) {
		attempts, err := s.otps.IncrementAttempts(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("increment otp attempts: %w", err)
		}
		if attempts >= domain.OTPMaxAttempts {
			if err := s.otps.Delete(ctx, email); err != nil {
				s.logger.Warn("failed to delete exhausted otp", "email", email, "error", err)
			}
			return nil, domain.ErrTooManyAttempts
		}
		return nil, domain.ErrOTPInvalid
	}

	society, err := s.societies.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup society: %w", err)
	}
	if society == nil {
		return nil, domain.ErrNotRegistered
	}
	return society, nil
}

// generateOTP produces a 4-digit numeric code with crypto randomness.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
