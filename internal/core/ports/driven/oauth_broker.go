package driven

import "context"

// OAuthToken holds tokens returned by the identity provider's token endpoint.
type OAuthToken struct {
	AccessToken  string
	RefreshToken string
	RawIDToken   string
	TokenType    string
	ExpiresIn    int
}

// OAuthIdentity is the verified identity extracted from an ID token.
type OAuthIdentity struct {
	Subject string
	Email   string
	Name    string
}

// OAuthBroker wraps the Google OAuth endpoints.
// Implementations must construct a fresh client/config per call: a shared
// credential object mutated per request cross-contaminates concurrent flows.
type OAuthBroker interface {
	// AuthCodeURL builds the consent-screen URL for the given opaque state.
	// Signup flows force the consent prompt so a refresh token is issued;
	// login flows only ask the user to pick an account.
	AuthCodeURL(state string, signup bool) string

	// Exchange trades an authorization code for tokens.
	Exchange(ctx context.Context, code string) (*OAuthToken, error)

	// VerifyIDToken validates a raw ID token against the configured audience
	// and extracts the subject and email.
	VerifyIDToken(ctx context.Context, rawIDToken string) (*OAuthIdentity, error)

	// AccessTokenFromRefresh obtains a fresh access token for a stored
	// refresh token.
	AccessTokenFromRefresh(ctx context.Context, refreshToken string) (*OAuthToken, error)
}
