package google

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/idtoken"

	"github.com/harshal-solutionplanets/society-core/internal/core/ports/driven"
)

// Ensure OAuthBroker implements the interface.
var _ driven.OAuthBroker = (*OAuthBroker)(nil)

// scopes requested on every flow. drive.file keeps access limited to
// content the app itself creates.
var scopes = []string{
	"openid",
	"email",
	"profile",
	drive.DriveFileScope,
}

// OAuthBrokerConfig holds the Google OAuth app credentials.
type OAuthBrokerConfig struct {
	ClientID     string
	ClientSecret string

	// RedirectURL is the absolute callback URL registered with Google.
	RedirectURL string
}

// OAuthBroker wraps the Google OAuth endpoints using golang.org/x/oauth2.
// Each call builds its own oauth2.Config: nothing credential-shaped is
// shared or mutated between concurrent flows.
type OAuthBroker struct {
	cfg OAuthBrokerConfig
}

// NewOAuthBroker creates a new Google OAuth broker.
func NewOAuthBroker(cfg OAuthBrokerConfig) *OAuthBroker {
	return &OAuthBroker{cfg: cfg}
}

func (b *OAuthBroker) config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     b.cfg.ClientID,
		ClientSecret: b.cfg.ClientSecret,
		RedirectURL:  b.cfg.RedirectURL,
		Scopes:       scopes,
		Endpoint:     google.Endpoint,
	}
}

// AuthCodeURL builds the consent-screen URL.
// Signup forces the consent prompt so Google issues a refresh token; login
// only asks the user to pick an account.
func (b *OAuthBroker) AuthCodeURL(state string, signup bool) string {
	prompt := "select_account"
	if signup {
		prompt = "consent"
	}
	return b.config().AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", prompt),
	)
}

// Exchange trades an authorization code for tokens.
func (b *OAuthBroker) Exchange(ctx context.Context, code string) (*driven.OAuthToken, error) {
	token, err := b.config().Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	expiresIn := 0
	if !token.Expiry.IsZero() {
		expiresIn = int(time.Until(token.Expiry).Seconds())
	}

	rawIDToken, _ := token.Extra("id_token").(string)
	return &driven.OAuthToken{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		RawIDToken:   rawIDToken,
		TokenType:    token.TokenType,
		ExpiresIn:    expiresIn,
	}, nil
}

// VerifyIDToken validates the raw ID token signature and audience and
// extracts the verified identity.
func (b *OAuthBroker) VerifyIDToken(ctx context.Context, rawIDToken string) (*driven.OAuthIdentity, error) {
	if rawIDToken == "" {
		return nil, fmt.Errorf("no id token in exchange response")
	}

	payload, err := idtoken.Validate(ctx, rawIDToken, b.cfg.ClientID)
	if err != nil {
		return nil, fmt.Errorf("validate id token: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	return &driven.OAuthIdentity{
		Subject: payload.Subject,
		Email:   email,
		Name:    name,
	}, nil
}

// AccessTokenFromRefresh obtains a fresh access token for a stored refresh
// token via the config's token source.
func (b *OAuthBroker) AccessTokenFromRefresh(ctx context.Context, refreshToken string) (*driven.OAuthToken, error) {
	source := b.config().TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("refresh access token: %w", err)
	}
	return &driven.OAuthToken{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
	}, nil
}
