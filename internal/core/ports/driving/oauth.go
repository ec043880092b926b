package driving

import "context"

// CallbackStatus describes the outcome signalled back to the opener window.
type CallbackStatus string

const (
	// StatusAuthenticated means an existing admin signed in; Token is set.
	StatusAuthenticated CallbackStatus = "authenticated"

	// StatusPendingSetup means a new signup handshake completed; the account
	// is not created yet and SetupSessionID is set.
	StatusPendingSetup CallbackStatus = "pending_setup"
)

// BuildAuthURLRequest starts an OAuth flow for an admin.
type BuildAuthURLRequest struct {
	AdminUID string
	AppID    string
	IsSignup bool
}

// CallbackRequest carries the provider redirect parameters.
type CallbackRequest struct {
	Code             string
	State            string
	Error            string
	ErrorDescription string
}

// CallbackResult is posted to the opener window by the callback page.
type CallbackResult struct {
	Status         CallbackStatus `json:"status"`
	Token          string         `json:"token,omitempty"`
	AccessToken    string         `json:"accessToken,omitempty"`
	SetupSessionID string         `json:"setupSessionId,omitempty"`
	AdminUID       string         `json:"adminUid,omitempty"`
	Email          string         `json:"email"`
}

// OAuthService brokers the Google account-linking flow.
type OAuthService interface {
	// BuildAuthURL returns the consent-screen redirect URL for the request.
	BuildAuthURL(ctx context.Context, req BuildAuthURLRequest) (string, error)

	// HandleCallback exchanges the authorization code, verifies identity and
	// branches on signup vs. login.
	HandleCallback(ctx context.Context, req CallbackRequest) (*CallbackResult, error)

	// RefreshAccessToken mints a fresh Drive access token from the admin's
	// stored refresh token and persists it on the society record.
	RefreshAccessToken(ctx context.Context, adminUID string) (string, error)
}
