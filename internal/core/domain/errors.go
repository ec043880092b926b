package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAccessDenied indicates the email domain is outside the allowlist
	ErrAccessDenied = errors.New("access denied")

	// ErrNotRegistered indicates a login attempt for an account with no society
	ErrNotRegistered = errors.New("not registered")

	// ErrInvalidState indicates the OAuth state is unknown, reused or expired
	ErrInvalidState = errors.New("invalid oauth state")

	// ErrSessionExpired indicates the setup session id is unknown or expired
	ErrSessionExpired = errors.New("setup session expired")

	// ErrDriveNotLinked indicates no Drive refresh token is stored for the admin
	ErrDriveNotLinked = errors.New("drive not linked")

	// ErrTokenExpired indicates the session token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the session token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrOTPNotFound indicates no OTP has been issued for the email
	ErrOTPNotFound = errors.New("otp not found")

	// ErrOTPExpired indicates the OTP is past its absolute expiry
	ErrOTPExpired = errors.New("otp expired")

	// ErrOTPInvalid indicates the supplied code does not match
	ErrOTPInvalid = errors.New("otp invalid")

	// ErrTooManyAttempts indicates the OTP attempt budget is exhausted
	ErrTooManyAttempts = errors.New("too many otp attempts")
)
