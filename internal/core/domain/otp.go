package domain

import "time"

// OTPTTL is the absolute lifetime of a password-reset code.
const OTPTTL = 5 * time.Minute

// OTPMaxAttempts bounds verification attempts per issued code.
const OTPMaxAttempts = 5

// OTPRecord is a short-lived password-reset code issued per admin email.
type OTPRecord struct {
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpired reports whether the code is past its absolute expiry
func (o *OTPRecord) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}

// Matches reports whether the supplied code matches the issued one
func (o *OTPRecord) Matches(code string) bool {
	return code != "" && o.Code == code
}
