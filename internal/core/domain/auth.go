package domain

// TokenClaims are the session-credential claims minted after a successful
// OAuth login or finalize
type TokenClaims struct {
	AdminUID  string
	Email     string
	AppID     string
	IssuedAt  int64
	ExpiresAt int64
}

// AuthContext carries the authenticated admin through request handling
type AuthContext struct {
	AdminUID string
	Email    string
	AppID    string
}
