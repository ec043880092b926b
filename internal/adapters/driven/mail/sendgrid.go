// Package mail delivers transactional email through SendGrid.
package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driven"
)

// Ensure SendGridMailer implements the interface.
var _ driven.Mailer = (*SendGridMailer)(nil)

const otpEmailHTML = `<div style="font-family:sans-serif;max-width:480px;margin:0 auto">
<h2>%s</h2>
<p>Use the following code to reset your password. It expires in 5 minutes.</p>
<p style="font-size:32px;letter-spacing:8px;font-weight:bold">%s</p>
<p>If you did not request a reset, you can ignore this email.</p>
</div>`

// SendGridMailerConfig holds SendGrid delivery configuration.
type SendGridMailerConfig struct {
	APIKey    string
	FromName  string
	FromEmail string
}

// SendGridMailer implements driven.Mailer using the SendGrid v3 API.
type SendGridMailer struct {
	client *sendgrid.Client
	cfg    SendGridMailerConfig
}

// NewSendGridMailer creates a new SendGrid-backed mailer.
func NewSendGridMailer(cfg SendGridMailerConfig) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(cfg.APIKey),
		cfg:    cfg,
	}
}

// SendOTP emails a password-reset code to the given address.
func (m *SendGridMailer) SendOTP(ctx context.Context, toEmail, code string) error {
	from := mail.NewEmail(m.cfg.FromName, m.cfg.FromEmail)
	to := mail.NewEmail("", toEmail)
	subject := m.cfg.FromName + " - Password Reset Code"
	plain := fmt.Sprintf("Your password reset code is %s. It expires in 5 minutes.", code)
	html := fmt.Sprintf(otpEmailHTML, subject, code)
	message := mail.NewSingleEmail(from, subject, to, plain, html)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("send otp email: sendgrid returned %d", resp.StatusCode)
	}
	return nil
}
