package driven

import "context"

// Mailer delivers transactional email.
type Mailer interface {
	// SendOTP emails a password-reset code to the given address.
	SendOTP(ctx context.Context, toEmail, code string) error
}
