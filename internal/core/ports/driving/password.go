package driving

import "context"

// ForgotPasswordRequest starts a password reset for a registered admin.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
	AppID string `json:"appId"`
}

// VerifyOTPRequest checks a reset code without consuming it.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResetPasswordRequest consumes a valid reset code and sets a new password.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// PasswordService runs the email-OTP password-reset workflow.
// Per email the state machine is: none -> issued -> (verified | expired).
type PasswordService interface {
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}
