package domain

import "time"

// OAuthState is the single-use record behind the opaque state parameter of an
// OAuth round trip. It carries the initiator's identity through the redirect.
type OAuthState struct {
	State     string    `json:"state"`
	AdminUID  string    `json:"adminUid"`
	AppID     string    `json:"appId"`
	IsSignup  bool      `json:"isSignup"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpired reports whether the state is past its expiry
func (s *OAuthState) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// PendingSetup holds provisional OAuth tokens for a signup whose admin
// account does not formally exist yet. Keyed by a random session id and
// consumed by the finalize workflow.
type PendingSetup struct {
	SessionID    string    `json:"sessionId"`
	Email        string    `json:"email"`
	GoogleUID    string    `json:"googleUid"`
	RefreshToken string    `json:"-"`
	AccessToken  string    `json:"-"`
	AppID        string    `json:"appId"`
	CreatedAt    time.Time `json:"createdAt"`
}
